package litl

import "encoding/binary"

// EventType tags the payload shape of a record. It mirrors the union
// discriminator of the original on-disk format: every record shares a
// (time, code, type) prefix and then diverges based on EventType.
type EventType uint8

const (
	// TypeRegular carries up to MaxParams uint64 parameters.
	TypeRegular EventType = iota
	// TypeRaw carries an arbitrary byte payload up to MaxData bytes, with
	// the high bit of the event code set to mark the record as raw.
	TypeRaw
	// TypePacked carries a byte payload up to MaxData bytes, addressed by
	// a single length byte rather than the 4-byte length RAW events use.
	TypePacked
	// TypeOffset links one chunk in a thread's chunk chain to the next.
	// It is written once per flush, as the last record in the buffer.
	TypeOffset
)

const (
	// MaxParams is the largest parameter count a Regular event can carry.
	MaxParams = 10
	// MaxData is the largest byte payload a Raw or Packed event can carry.
	MaxData = MaxParams * 8
	// OffsetCode is the reserved event code for chunk-link records.
	OffsetCode = 13

	timeSize   = 8 // uint64
	codeSize   = 4 // uint32
	typeSize   = 1 // uint8
	paramSize  = 8 // uint64
	prefixSize = timeSize + codeSize + typeSize

	// BaseSize is the offset from the start of a record to the first
	// payload byte, for a Regular event (prefix + 1-byte nb_params).
	BaseSize = prefixSize + 1

	// rawHeaderSize is the offset to a Raw event's data: the shared
	// prefix followed by a 4-byte length field (litl_size_t), wider than
	// the 1-byte length Regular/Packed events use at the same position.
	rawHeaderSize = prefixSize + 4

	// packedHeaderSize is the offset to a Packed event's data: the shared
	// prefix followed by a 1-byte length field, same width and position
	// as Regular's nb_params byte.
	packedHeaderSize = BaseSize

	// offsetEventSize is the fixed size of an Offset chunk-link record:
	// prefix + nb_params(1) + offset(8).
	offsetEventSize = BaseSize + paramSize

	// highBit marks a code as belonging to a Raw event, the same
	// convention litl_raw_probe uses to distinguish Raw from Regular
	// records sharing the same code space.
	highBit uint32 = 1 << 31
)

// regularEventSize returns the on-disk size of a Regular event carrying
// nbParams parameters.
func regularEventSize(nbParams int) int {
	return BaseSize + nbParams*paramSize
}

// rawEventSize returns the on-disk size of a Raw event carrying size bytes.
func rawEventSize(size int) int {
	return rawHeaderSize + size
}

// packedEventSize returns the on-disk size of a Packed event carrying size
// bytes.
func packedEventSize(size int) int {
	return packedHeaderSize + size
}

func setRawBit(code uint32) uint32 {
	return code | highBit
}

// IsRaw reports whether a code read back off disk was written by a Raw
// probe, i.e. whether its high bit is set.
func IsRaw(code uint32) bool {
	return code&highBit != 0
}

// StripRawBit clears the high bit set by a Raw probe, recovering the
// original event code.
func StripRawBit(code uint32) uint32 {
	return code &^ highBit
}

func putPrefix(dst []byte, t uint64, code uint32, typ EventType) {
	binary.LittleEndian.PutUint64(dst[0:8], t)
	binary.LittleEndian.PutUint32(dst[8:12], code)
	dst[12] = byte(typ)
}

// encodeRegular writes a Regular event at dst[0:] and returns its size.
func encodeRegular(dst []byte, t uint64, code uint32, params []uint64) int {
	putPrefix(dst, t, code, TypeRegular)
	dst[prefixSize] = byte(len(params))
	off := BaseSize
	for _, p := range params {
		binary.LittleEndian.PutUint64(dst[off:off+8], p)
		off += 8
	}
	return off
}

// encodeRaw writes a Raw event at dst[0:], setting the high bit on code,
// and returns its size.
func encodeRaw(dst []byte, t uint64, code uint32, data []byte) int {
	putPrefix(dst, t, setRawBit(code), TypeRaw)
	binary.LittleEndian.PutUint32(dst[prefixSize:prefixSize+4], uint32(len(data)))
	copy(dst[rawHeaderSize:], data)
	return rawHeaderSize + len(data)
}

// encodePacked writes a Packed event at dst[0:] and returns its size.
func encodePacked(dst []byte, t uint64, code uint32, data []byte) int {
	putPrefix(dst, t, code, TypePacked)
	dst[prefixSize] = byte(len(data))
	copy(dst[packedHeaderSize:], data)
	return packedHeaderSize + len(data)
}

// encodeOffset writes the chunk-link terminator record at dst[0:] and
// returns its size. offset is 0 until a later flush overwrites it in
// place with the file position of the next chunk.
func encodeOffset(dst []byte, offset uint64) int {
	putPrefix(dst, 0, OffsetCode, TypeOffset)
	dst[prefixSize] = 1
	binary.LittleEndian.PutUint64(dst[BaseSize:BaseSize+8], offset)
	return offsetEventSize
}
