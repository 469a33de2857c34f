package litl

import "encoding/binary"

// traceVersion is stamped into every header's Version field.
const traceVersion = "litl-go1"

const (
	verFieldSize     = 8
	sysinfoFieldSize = 128

	// HeaderSize is the total size, in bytes, of the fixed-position part
	// of FileHeader (everything before the thread table). It matches the
	// packed layout of litl_header_t.
	HeaderSize = 2 + 1 + 4 + 2 + verFieldSize + sysinfoFieldSize

	// threadEntrySize is the encoded size of one ThreadTableEntry.
	threadEntrySize = 8 + 8
)

// FileHeader is the fixed-position prefix of a trace file, shared between
// the writer in this package and any external reader of the format. It is
// exported as a stable contract even though no reader ships in this
// module: the writer and a hypothetical reader both need the exact same
// byte layout, the same role litl_types.h plays for both litl_write.c and
// the (out of scope here) merge/split tools.
type FileHeader struct {
	NbThreads       uint16
	IsTraceArchive  uint8
	BufferSize      uint32
	HeaderNbThreads uint16
	Version         [verFieldSize]byte
	SysInfo         [sysinfoFieldSize]byte
}

// ThreadTableEntry is one (tid, offset) pair in the header's thread table.
// Offset is the file position of the first chunk written by that thread;
// it is 0 until the thread's first flush.
type ThreadTableEntry struct {
	Tid    uint64
	Offset uint64
}

// Marshal encodes the fixed-position header fields in the on-disk
// little-endian layout.
func (h *FileHeader) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.NbThreads)
	buf[2] = h.IsTraceArchive
	binary.LittleEndian.PutUint32(buf[3:7], h.BufferSize)
	binary.LittleEndian.PutUint16(buf[7:9], h.HeaderNbThreads)
	copy(buf[9:9+verFieldSize], h.Version[:])
	copy(buf[9+verFieldSize:9+verFieldSize+sysinfoFieldSize], h.SysInfo[:])
	return buf
}

// nbThreadsOffset is the byte offset of the NbThreads field, used by the
// flusher to rewrite it in place as threads register after the header has
// already been flushed.
const nbThreadsOffset = 0

// marshalThreadEntry encodes one (tid, offset) pair.
func marshalThreadEntry(e ThreadTableEntry) []byte {
	buf := make([]byte, threadEntrySize)
	binary.LittleEndian.PutUint64(buf[0:8], e.Tid)
	binary.LittleEndian.PutUint64(buf[8:16], e.Offset)
	return buf
}

// UnmarshalFileHeader decodes the fixed-position header fields from the
// front of a trace file. It is the inverse of Marshal, provided for the
// same reason Marshal is exported: an external reader of this format
// needs it, even though no reader ships in this module.
func UnmarshalFileHeader(buf []byte) FileHeader {
	var h FileHeader
	h.NbThreads = binary.LittleEndian.Uint16(buf[0:2])
	h.IsTraceArchive = buf[2]
	h.BufferSize = binary.LittleEndian.Uint32(buf[3:7])
	h.HeaderNbThreads = binary.LittleEndian.Uint16(buf[7:9])
	copy(h.Version[:], buf[9:9+verFieldSize])
	copy(h.SysInfo[:], buf[9+verFieldSize:9+verFieldSize+sysinfoFieldSize])
	return h
}

// UnmarshalThreadEntry decodes one (tid, offset) pair.
func UnmarshalThreadEntry(buf []byte) ThreadTableEntry {
	return ThreadTableEntry{
		Tid:    binary.LittleEndian.Uint64(buf[0:8]),
		Offset: binary.LittleEndian.Uint64(buf[8:16]),
	}
}
