package litl

import (
	"encoding/binary"
	"os"
)

// flush writes the buffer at the given registry index to the trace file
// and resets it, opening the file and writing the header on the very
// first call for the whole trace. It is the direct translation of
// litl_flush_buffer's three phases: open-and-write-header (first call
// only), register-this-thread-in-the-header (first call for this thread
// only, if it arrives after the header was already flushed), and
// append-the-chunk (every call).
func (t *Trace) flush(index int) error {
	if !t.initialized.Load() {
		return nil
	}

	if t.allowThreadSafety.Load() {
		t.flushMu.Lock()
		defer t.flushMu.Unlock()
	}

	t.registryMu.Lock()
	b := t.buffers[index]
	threads := append([]*buffer(nil), t.buffers...)
	t.registryMu.Unlock()

	if !t.headerFlushed {
		if err := t.writeHeader(threads); err != nil {
			return err
		}
	}

	if !b.alreadyFlushed {
		if err := t.registerLateThread(b, len(threads)); err != nil {
			return err
		}
	} else {
		if err := t.relinkChunk(b); err != nil {
			return err
		}
	}

	return t.appendChunk(b)
}

// writeHeader opens the trace file and writes the fixed header plus a
// thread table reserving headerThreadSlots entries, one per currently
// registered thread plus zero-padding for the rest. This resolves the
// NBTHREADS-vs-64 inconsistency the original source carries (a 32-thread
// compile-time constant next to header-write code that reserves 64 slots)
// in favor of the value the header-write code actually uses.
func (t *Trace) writeHeader(threads []*buffer) error {
	f, err := os.OpenFile(t.filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fatalf("open trace file", err)
	}
	t.file = f

	nbThreads := len(threads)
	t.header.NbThreads = uint16(nbThreads)
	t.header.HeaderNbThreads = headerThreadSlots

	out := make([]byte, 0, HeaderSize+headerThreadSlots*threadEntrySize)
	out = append(out, t.header.Marshal()...)

	tableStart := int64(HeaderSize)
	for i, b := range threads {
		out = append(out, marshalThreadEntry(ThreadTableEntry{Tid: b.tid, Offset: 0})...)
		b.linkOffset = tableStart + int64(i)*threadEntrySize + 8
		b.alreadyFlushed = true
	}
	for i := nbThreads; i < headerThreadSlots; i++ {
		out = append(out, marshalThreadEntry(ThreadTableEntry{})...)
	}

	if err := pwrite(t.file, out, 0); err != nil {
		return fatalf("write trace header", err)
	}

	t.headerTableOffset = tableStart + int64(nbThreads)*threadEntrySize
	t.generalOffset = tableStart + headerThreadSlots*threadEntrySize
	t.headerFlushed = true
	return nil
}

// registerLateThread reserves this thread's (tid, offset) slot in the
// header's thread table, for a thread that starts after the header has
// already been written. It then rewrites NbThreads in place.
func (t *Trace) registerLateThread(b *buffer, nbThreadsNow int) error {
	entry := marshalThreadEntry(ThreadTableEntry{Tid: b.tid, Offset: uint64(t.generalOffset)})
	if err := pwrite(t.file, entry, t.headerTableOffset); err != nil {
		return fatalf("write thread table entry", err)
	}
	b.linkOffset = t.headerTableOffset + 8
	b.alreadyFlushed = true
	t.headerTableOffset += threadEntrySize

	var nbBuf [2]byte
	binary.LittleEndian.PutUint16(nbBuf[:], uint16(nbThreadsNow))
	if err := pwrite(t.file, nbBuf[:], nbThreadsOffset); err != nil {
		return fatalf("update thread count", err)
	}
	return nil
}

// relinkChunk overwrites the previous chunk's trailing link field with
// the file position this new chunk is about to be written at, extending
// the thread's chunk chain by one link.
func (t *Trace) relinkChunk(b *buffer) error {
	var off [8]byte
	binary.LittleEndian.PutUint64(off[:], uint64(t.generalOffset))
	if err := pwrite(t.file, off[:], b.linkOffset); err != nil {
		return fatalf("relink chunk", err)
	}
	return nil
}

// appendChunk appends the Offset terminator record to the buffer, writes
// the whole buffer to the file as one chunk, and updates bookkeeping so
// the next flush can link back to this chunk's terminator.
func (t *Trace) appendChunk(b *buffer) error {
	b.cur += encodeOffset(b.data[b.cur:], 0)

	n := b.cur
	if err := pwrite(t.file, b.data[:n], t.generalOffset); err != nil {
		return fatalf("write chunk", err)
	}

	t.generalOffset += int64(n)
	b.linkOffset = t.generalOffset - paramSize
	b.reset()
	return nil
}
