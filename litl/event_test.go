package litl

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRegular(t *testing.T) {
	buf := make([]byte, 256)
	n := encodeRegular(buf, 42, 7, []uint64{1, 2, 3})

	require.Equal(t, regularEventSize(3), n)
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(buf[0:8]))
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, byte(TypeRegular), buf[12])
	assert.Equal(t, byte(3), buf[13])
	assert.Equal(t, uint64(1), binary.LittleEndian.Uint64(buf[14:22]))
	assert.Equal(t, uint64(2), binary.LittleEndian.Uint64(buf[22:30]))
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(buf[30:38]))
}

func TestEncodeRegular_NoParams(t *testing.T) {
	buf := make([]byte, 64)
	n := encodeRegular(buf, 1, 99, nil)
	assert.Equal(t, BaseSize, n)
	assert.Equal(t, byte(0), buf[13])
}

func TestEncodeRaw_SetsHighBitAndLength(t *testing.T) {
	buf := make([]byte, 64)
	data := []byte("hello")
	n := encodeRaw(buf, 5, 3, data)

	require.Equal(t, rawEventSize(len(data)), n)
	code := binary.LittleEndian.Uint32(buf[8:12])
	assert.True(t, IsRaw(code))
	assert.Equal(t, uint32(3), StripRawBit(code))
	assert.Equal(t, byte(TypeRaw), buf[12])
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(buf[13:17]))
	assert.Equal(t, data, buf[17:17+len(data)])
}

func TestEncodePacked(t *testing.T) {
	buf := make([]byte, 64)
	data := []byte{0xAA, 0xBB, 0xCC}
	n := encodePacked(buf, 9, 11, data)

	require.Equal(t, packedEventSize(len(data)), n)
	assert.Equal(t, byte(TypePacked), buf[12])
	assert.Equal(t, byte(len(data)), buf[13])
	assert.Equal(t, data, buf[BaseSize:BaseSize+len(data)])
}

func TestEncodeOffset(t *testing.T) {
	buf := make([]byte, 64)
	n := encodeOffset(buf, 1234)

	require.Equal(t, offsetEventSize, n)
	assert.Equal(t, uint32(OffsetCode), binary.LittleEndian.Uint32(buf[8:12]))
	assert.Equal(t, byte(TypeOffset), buf[12])
	assert.Equal(t, byte(1), buf[13])
	assert.Equal(t, uint64(1234), binary.LittleEndian.Uint64(buf[BaseSize:BaseSize+8]))
}
