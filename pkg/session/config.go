package session

import (
	"encoding/binary"
	"time"

	"github.com/BurntSushi/toml"
)

// ServerConfig is the server engine's configuration surface.
type ServerConfig struct {
	BindAddr           string        `toml:"bind_addr"`
	MaxConnections     int           `toml:"max_connections"`
	InboundBufferSize  int           `toml:"inbound_buffer_size"`
	OutboundChannelCap int           `toml:"outbound_channel_capacity"`
	MaxFrameLen        uint32        `toml:"max_frame_len"`
	ShutdownGrace      time.Duration `toml:"shutdown_grace"`

	// ByteOrder decodes the SBE message header prefixing every dispatched
	// frame. It must match the schema the connected clients encode with;
	// not loadable from TOML, set via ServerBuilder.ByteOrder.
	ByteOrder binary.ByteOrder `toml:"-"`
}

// DefaultServerConfig returns the engine's built-in defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		BindAddr:           "0.0.0.0:0",
		MaxConnections:     1024,
		InboundBufferSize:  64 * 1024,
		OutboundChannelCap: 1024,
		MaxFrameLen:        DefaultMaxFrameLen,
		ShutdownGrace:      5 * time.Second,
		ByteOrder:          binary.LittleEndian,
	}
}

// LoadServerConfig reads a TOML file and overlays it onto
// DefaultServerConfig, so a config file only needs to declare the fields it
// wants to override.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ServerConfig{}, err
	}
	_ = meta
	return cfg, nil
}

// ClientConfig is the client engine's configuration surface.
type ClientConfig struct {
	ConnectAddr          string        `toml:"connect_addr"`
	ConnectTimeout       time.Duration `toml:"connect_timeout"`
	MaxFrameLen          uint32        `toml:"max_frame_len"`
	OutboundChannelCap   int           `toml:"outbound_channel_capacity"`
	MaxReconnectAttempts uint32        `toml:"max_reconnect_attempts"` // 0 disables reconnection
	Backoff              BackoffConfig
}

// Unbounded is the sentinel MaxReconnectAttempts value meaning "reconnect
// forever".
const Unbounded uint32 = ^uint32(0)

// DefaultClientConfig returns the engine's built-in client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectTimeout:       5 * time.Second,
		MaxFrameLen:          DefaultMaxFrameLen,
		OutboundChannelCap:   1024,
		MaxReconnectAttempts: 3,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
		},
	}
}

// LoadClientConfig reads a TOML file and overlays it onto
// DefaultClientConfig.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}
