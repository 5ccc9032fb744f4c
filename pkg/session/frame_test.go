package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameDecoder_SingleFrame(t *testing.T) {
	dec := NewFrameDecoder(0)
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("hello")))

	frames, err := dec.Push(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, []byte("hello"), frames[0])
}

func TestFrameDecoder_SplitAcrossArbitraryChunks(t *testing.T) {
	dec := NewFrameDecoder(0)
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("aaa")))
	require.NoError(t, WriteFrame(&buf, []byte("bbbbb")))
	require.NoError(t, WriteFrame(&buf, []byte("c")))
	whole := buf.Bytes()

	var got [][]byte
	for i := 0; i < len(whole); i++ {
		frames, err := dec.Push(whole[i : i+1])
		require.NoError(t, err)
		for _, f := range frames {
			cp := make([]byte, len(f))
			copy(cp, f)
			got = append(got, cp)
		}
	}
	require.Equal(t, [][]byte{[]byte("aaa"), []byte("bbbbb"), []byte("c")}, got)
}

func TestFrameDecoder_RejectsOversizedFrame(t *testing.T) {
	dec := NewFrameDecoder(4)
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("toolong")))

	_, err := dec.Push(buf.Bytes())
	require.Error(t, err)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, FrameTooLarge, terr.Kind)
}

func TestFrameDecoder_EmptyPayload(t *testing.T) {
	dec := NewFrameDecoder(0)
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))

	frames, err := dec.Push(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.Empty(t, frames[0])
}
