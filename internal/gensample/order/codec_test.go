package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOrderRoundTrip exercises the Order message with the values from
// spec.md's worked example: a 56-byte frame (8-byte header + 48-byte
// block), little-endian blockLength and templateId in the first four
// bytes, and decoded fields equal to what was encoded.
func TestOrderRoundTrip(t *testing.T) {
	buf := make([]byte, 64)

	enc, err := WrapOrderEncoder(buf, 0)
	require.NoError(t, err)
	enc.SetClOrdId([]byte("ORDER-001")).
		SetSymbol([]byte("AAPL")).
		SetSide(Side_Buy).
		SetPrice(15050).
		SetQuantity(100)

	require.Equal(t, 56, enc.EncodedLength())
	require.Equal(t, []byte{48, 0}, buf[0:2])
	require.Equal(t, []byte{1, 0}, buf[2:4])

	dec, err := WrapOrderDecoder(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "ORDER-001", string(dec.ClOrdId()))
	require.Equal(t, "AAPL", string(dec.Symbol()))
	require.Equal(t, Side_Buy, dec.Side())
	require.Equal(t, int64(15050), dec.Price())
	require.Equal(t, uint64(100), dec.Quantity())
}

// TestOrderRoundTrip_UnknownTemplate checks that decoding a buffer whose
// header carries a different templateId is rejected rather than silently
// reinterpreted.
func TestOrderRoundTrip_UnknownTemplate(t *testing.T) {
	buf := make([]byte, 64)
	_, err := WrapSnapshotEncoder(buf, 0)
	require.NoError(t, err)

	_, err = WrapOrderDecoder(buf, 0)
	require.Error(t, err)
}

// TestSnapshotRoundTrip exercises the nested case the flat substring tests
// could not: a repeating group whose own entries carry a nested group and
// a var-data field, followed by the message's own var-data. Every level
// shares the same forward cursor, so entries are written and read strictly
// in order: fixed block, then nested group, then var-data, then the next
// entry.
func TestSnapshotRoundTrip(t *testing.T) {
	buf := make([]byte, 256)

	enc, err := WrapSnapshotEncoder(buf, 0)
	require.NoError(t, err)

	entries := enc.EntriesCount(2)

	e0 := entries.Next()
	e0.SetPrice(100)
	tags0 := e0.TagsCount(1)
	tags0.Next().SetFlag(7)
	_, err = e0.SetLabel([]byte("lvl0"))
	require.NoError(t, err)

	e1 := entries.Next()
	e1.SetPrice(200)
	_ = e1.TagsCount(0)
	_, err = e1.SetLabel([]byte("lvl1"))
	require.NoError(t, err)

	_, err = enc.SetNotes([]byte("snapshot-notes"))
	require.NoError(t, err)

	frameLen := enc.EncodedLength()

	dec, err := WrapSnapshotDecoder(buf, 0)
	require.NoError(t, err)

	eg, err := dec.EntriesGroup()
	require.NoError(t, err)
	require.Equal(t, 2, eg.Count())

	require.True(t, eg.HasNext())
	d0 := eg.Next()
	require.Equal(t, uint32(100), d0.Price())
	tg0, err := d0.TagsGroup()
	require.NoError(t, err)
	require.Equal(t, 1, tg0.Count())
	require.True(t, tg0.HasNext())
	require.Equal(t, uint32(7), tg0.Next().Flag())
	require.False(t, tg0.HasNext())
	label0, err := d0.Label()
	require.NoError(t, err)
	require.Equal(t, "lvl0", string(label0))

	require.True(t, eg.HasNext())
	d1 := eg.Next()
	require.Equal(t, uint32(200), d1.Price())
	tg1, err := d1.TagsGroup()
	require.NoError(t, err)
	require.Equal(t, 0, tg1.Count())
	require.False(t, tg1.HasNext())
	label1, err := d1.Label()
	require.NoError(t, err)
	require.Equal(t, "lvl1", string(label1))

	require.False(t, eg.HasNext())

	notes, err := dec.Notes()
	require.NoError(t, err)
	require.Equal(t, "snapshot-notes", string(notes))
	require.Greater(t, frameLen, 8)
}
