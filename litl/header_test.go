package litl

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHeader_Marshal(t *testing.T) {
	h := FileHeader{
		NbThreads:       3,
		IsTraceArchive:  0,
		BufferSize:      1 << 16,
		HeaderNbThreads: headerThreadSlots,
	}
	copy(h.Version[:], "litl1")
	copy(h.SysInfo[:], "Linux myhost 6.1 x86_64")

	buf := h.Marshal()
	require.Len(t, buf, HeaderSize)
	assert.Equal(t, uint16(3), binary.LittleEndian.Uint16(buf[0:2]))
	assert.Equal(t, byte(0), buf[2])
	assert.Equal(t, uint32(1<<16), binary.LittleEndian.Uint32(buf[3:7]))
	assert.Equal(t, uint16(headerThreadSlots), binary.LittleEndian.Uint16(buf[7:9]))
	assert.Equal(t, "litl1", cStringOf(buf[9:9+verFieldSize]))
}

func TestMarshalThreadEntry(t *testing.T) {
	buf := marshalThreadEntry(ThreadTableEntry{Tid: 77, Offset: 4096})
	require.Len(t, buf, threadEntrySize)
	assert.Equal(t, uint64(77), binary.LittleEndian.Uint64(buf[0:8]))
	assert.Equal(t, uint64(4096), binary.LittleEndian.Uint64(buf[8:16]))
}

func cStringOf(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
