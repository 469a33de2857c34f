package litl

import (
	"encoding/binary"
	"math"
)

// ProbePacked records an event whose packed byte payload is built from a
// list of typed parameters rather than a caller-prepared []byte, the
// "packed family accepting typed parameters" alongside ProbePack's
// already-packed-bytes form. Supported value types are bool, the signed
// and unsigned integer kinds, float32/float64, and string; each is
// serialized in order, little-endian the same way encodeRegular packs its
// parameters, into one packed event capped at MaxData bytes.
func (h *Handle) ProbePacked(code uint32, values ...interface{}) error {
	data, err := packValues(values)
	if err != nil {
		return err
	}
	return h.ProbePack(code, data)
}

func packValues(values []interface{}) ([]byte, error) {
	data := make([]byte, 0, MaxData)
	for _, v := range values {
		var err error
		data, err = appendPackedValue(data, v)
		if err != nil {
			return nil, err
		}
		if len(data) > MaxData {
			return nil, ErrPayloadTooLarge
		}
	}
	return data, nil
}

func appendPackedValue(data []byte, v interface{}) ([]byte, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return append(data, 1), nil
		}
		return append(data, 0), nil
	case int8:
		return append(data, byte(x)), nil
	case uint8:
		return append(data, x), nil
	case int16:
		return appendUint16(data, uint16(x)), nil
	case uint16:
		return appendUint16(data, x), nil
	case int32:
		return appendUint32(data, uint32(x)), nil
	case uint32:
		return appendUint32(data, x), nil
	case int64:
		return appendUint64(data, uint64(x)), nil
	case uint64:
		return appendUint64(data, x), nil
	case int:
		return appendUint64(data, uint64(x)), nil
	case uint:
		return appendUint64(data, uint64(x)), nil
	case float32:
		return appendUint32(data, math.Float32bits(x)), nil
	case float64:
		return appendUint64(data, math.Float64bits(x)), nil
	case string:
		data = appendUint32(data, uint32(len(x)))
		return append(data, x...), nil
	default:
		return nil, ErrUnsupportedPackedType
	}
}

func appendUint16(data []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(data, b[:]...)
}

func appendUint32(data []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(data, b[:]...)
}

func appendUint64(data []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(data, b[:]...)
}

// Probe0 records an event with no parameters.
func (h *Handle) Probe0(code uint32) {
	h.probeRegular(code, nil)
}

// Probe1 records an event with one parameter.
func (h *Handle) Probe1(code uint32, p1 uint64) {
	h.probeRegular(code, []uint64{p1})
}

// Probe2 records an event with two parameters.
func (h *Handle) Probe2(code uint32, p1, p2 uint64) {
	h.probeRegular(code, []uint64{p1, p2})
}

// Probe3 records an event with three parameters.
func (h *Handle) Probe3(code uint32, p1, p2, p3 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3})
}

// Probe4 records an event with four parameters.
func (h *Handle) Probe4(code uint32, p1, p2, p3, p4 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4})
}

// Probe5 records an event with five parameters.
func (h *Handle) Probe5(code uint32, p1, p2, p3, p4, p5 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5})
}

// Probe6 records an event with six parameters.
func (h *Handle) Probe6(code uint32, p1, p2, p3, p4, p5, p6 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5, p6})
}

// Probe7 records an event with seven parameters.
func (h *Handle) Probe7(code uint32, p1, p2, p3, p4, p5, p6, p7 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5, p6, p7})
}

// Probe8 records an event with eight parameters.
func (h *Handle) Probe8(code uint32, p1, p2, p3, p4, p5, p6, p7, p8 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5, p6, p7, p8})
}

// Probe9 records an event with nine parameters.
func (h *Handle) Probe9(code uint32, p1, p2, p3, p4, p5, p6, p7, p8, p9 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5, p6, p7, p8, p9})
}

// Probe10 records an event with ten parameters.
func (h *Handle) Probe10(code uint32, p1, p2, p3, p4, p5, p6, p7, p8, p9, p10 uint64) {
	h.probeRegular(code, []uint64{p1, p2, p3, p4, p5, p6, p7, p8, p9, p10})
}

// ProbeParams records an event with an arbitrary number of parameters, up
// to MaxParams, for call sites that build their parameter list
// dynamically instead of through one of the fixed-arity ProbeN methods.
func (h *Handle) ProbeParams(code uint32, params ...uint64) error {
	if len(params) > MaxParams {
		return ErrTooManyParams
	}
	h.probeRegular(code, params)
	return nil
}

func (h *Handle) probeRegular(code uint32, params []uint64) {
	if !h.ready() {
		return
	}
	if !h.reserve() {
		return
	}
	n := encodeRegular(h.buf.data[h.buf.cur:], h.trace.cfg.Clock.Now(), code, params)
	h.buf.cur += n
}

// RawProbe records an arbitrary byte payload, up to MaxData bytes, under
// code with its high bit set so a reader can tell Raw events apart from
// Regular ones sharing the same code space.
func (h *Handle) RawProbe(code uint32, data []byte) error {
	if len(data) > MaxData {
		return ErrPayloadTooLarge
	}
	if !h.ready() {
		return nil
	}
	if !h.reserve() {
		return nil
	}
	n := encodeRaw(h.buf.data[h.buf.cur:], h.trace.cfg.Clock.Now(), code, data)
	h.buf.cur += n
	return nil
}

// ProbePack records a byte payload, up to MaxData bytes, addressed by a
// single length byte instead of RawProbe's 4-byte length field — for
// payloads a caller has already packed into a compact byte encoding.
func (h *Handle) ProbePack(code uint32, data []byte) error {
	if len(data) > MaxData {
		return ErrPayloadTooLarge
	}
	if !h.ready() {
		return nil
	}
	if !h.reserve() {
		return nil
	}
	n := encodePacked(h.buf.data[h.buf.cur:], h.trace.cfg.Clock.Now(), code, data)
	h.buf.cur += n
	return nil
}

// Probe0 through Probe10 record an event against a *Trace directly,
// resolving (and, on first use, registering) a Handle for the calling
// goroutine. They reproduce the original C API surface of passing the
// trace handle straight to litl_probeN rather than threading a Handle
// through; prefer Trace.Bind and the Handle methods on a hot path, since
// each of these pays a goroutine-id lookup on every call.

// Probe0 records an event with no parameters on trace.
func Probe0(t *Trace, code uint32) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe0(code)
	return nil
}

// Probe1 records an event with one parameter on trace.
func Probe1(t *Trace, code uint32, p1 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe1(code, p1)
	return nil
}

// Probe2 records an event with two parameters on trace.
func Probe2(t *Trace, code uint32, p1, p2 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe2(code, p1, p2)
	return nil
}

// Probe3 records an event with three parameters on trace.
func Probe3(t *Trace, code uint32, p1, p2, p3 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe3(code, p1, p2, p3)
	return nil
}

// Probe4 records an event with four parameters on trace.
func Probe4(t *Trace, code uint32, p1, p2, p3, p4 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe4(code, p1, p2, p3, p4)
	return nil
}

// Probe5 records an event with five parameters on trace.
func Probe5(t *Trace, code uint32, p1, p2, p3, p4, p5 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe5(code, p1, p2, p3, p4, p5)
	return nil
}

// Probe6 records an event with six parameters on trace.
func Probe6(t *Trace, code uint32, p1, p2, p3, p4, p5, p6 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe6(code, p1, p2, p3, p4, p5, p6)
	return nil
}

// Probe7 records an event with seven parameters on trace.
func Probe7(t *Trace, code uint32, p1, p2, p3, p4, p5, p6, p7 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe7(code, p1, p2, p3, p4, p5, p6, p7)
	return nil
}

// Probe8 records an event with eight parameters on trace.
func Probe8(t *Trace, code uint32, p1, p2, p3, p4, p5, p6, p7, p8 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe8(code, p1, p2, p3, p4, p5, p6, p7, p8)
	return nil
}

// Probe9 records an event with nine parameters on trace.
func Probe9(t *Trace, code uint32, p1, p2, p3, p4, p5, p6, p7, p8, p9 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe9(code, p1, p2, p3, p4, p5, p6, p7, p8, p9)
	return nil
}

// Probe10 records an event with ten parameters on trace.
func Probe10(t *Trace, code uint32, p1, p2, p3, p4, p5, p6, p7, p8, p9, p10 uint64) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	h.Probe10(code, p1, p2, p3, p4, p5, p6, p7, p8, p9, p10)
	return nil
}

// RawProbe records a raw byte payload on trace.
func RawProbe(t *Trace, code uint32, data []byte) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	return h.RawProbe(code, data)
}

// ProbePack records a packed byte payload on trace.
func ProbePack(t *Trace, code uint32, data []byte) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	return h.ProbePack(code, data)
}

// ProbePacked records a packed event built from typed parameters on trace.
func ProbePacked(t *Trace, code uint32, values ...interface{}) error {
	h, err := t.handleForCaller()
	if err != nil {
		return err
	}
	return h.ProbePacked(code, values...)
}
