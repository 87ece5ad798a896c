package ring_buffer

// Buffer is a bounded FIFO of PCM16 audio frames used for wake-word pre-roll
// capture. Appending past capacity evicts exactly the oldest frame.
type Buffer struct {
	frames   [][]int16
	capacity int
}

func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}

	return &Buffer{
		frames:   make([][]int16, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a copy of the frame, evicting the oldest one when full.
func (r *Buffer) Add(frame []int16) {
	saved := make([]int16, len(frame))
	copy(saved, frame)

	if len(r.frames) == r.capacity {
		copy(r.frames, r.frames[1:])
		r.frames[len(r.frames)-1] = saved

		return
	}

	r.frames = append(r.frames, saved)
}

// Frames returns copies of the buffered frames, oldest first. The returned
// slice is owned by the caller; the buffer can be cleared and reused.
func (r *Buffer) Frames() [][]int16 {
	frames := make([][]int16, len(r.frames))
	copy(frames, r.frames)

	return frames
}

func (r *Buffer) Len() int {
	return len(r.frames)
}

func (r *Buffer) Capacity() int {
	return r.capacity
}

func (r *Buffer) Clear() {
	r.frames = r.frames[:0]
}
