package litl

// buffer is a single thread's event buffer, the Go analogue of
// litl_write_buffer_t. It is owned by exactly one Handle and is never
// touched concurrently by more than one goroutine, so unlike the teacher's
// LogBuffer and Buffer types (which guard their cursor with a CAS loop or
// a mutex because multiple writers can share one shard) this cursor is a
// plain int: per-thread ownership removes the need for synchronization on
// the append path entirely.
type buffer struct {
	data []byte
	cur  int

	tid            uint64
	linkOffset     int64 // file position of this thread's (tid,offset) or chunk-link slot
	alreadyFlushed bool
}

// newBuffer allocates a buffer sized like __allocate_buffer does: enough
// room for bufferSize bytes of events plus the largest possible single
// event (a Raw record carrying MaxData bytes) plus the trailing Offset
// link record every flush appends.
func newBuffer(tid uint64, bufferSize int) *buffer {
	slack := rawEventSize(MaxData) + offsetEventSize
	return &buffer{
		data: make([]byte, bufferSize+slack),
		tid:  tid,
	}
}

// used returns the number of bytes currently occupied, mirroring
// __get_buffer_size.
func (b *buffer) used() int {
	return b.cur
}

// reset rewinds the cursor after a successful flush.
func (b *buffer) reset() {
	b.cur = 0
}
