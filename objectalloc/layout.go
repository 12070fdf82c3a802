package objectalloc

import "fmt"

// layout captures the byte arithmetic derived from a Config. It never
// changes after construction and holds the stride, page size and slot
// offsets; the offsets of fields inside a header block are computed
// from the object address in header.go and external.go.
type layout struct {
	headerSize int
	// blockStride is the distance, in bytes, between the start of one
	// slot and the start of the next: header + left pad + object +
	// right pad.
	blockStride int
	// pageBytes is the total size of one page: one pointer-sized page
	// link plus objectsPerPage * blockStride.
	pageBytes int
	// firstSlotOffset is the offset, from the start of a page, of its
	// first slot (i.e. the size of the page-link cell).
	firstSlotOffset int
	// objectOffsetInSlot is the offset, from the start of a slot, of
	// its object region (header + left pad).
	objectOffsetInSlot int
	objectSize         int
	objectsPerPage     int
	padBytes           int
}

func newLayout(cfg Config) (layout, error) {
	if cfg.ObjectSize <= 0 {
		return layout{}, fmt.Errorf("objectalloc: ObjectSize must be > 0, got %d", cfg.ObjectSize)
	}
	if !cfg.UseSystemAlloc && cfg.ObjectsPerPage < 1 {
		return layout{}, fmt.Errorf("objectalloc: ObjectsPerPage must be >= 1, got %d", cfg.ObjectsPerPage)
	}
	if cfg.PadBytes < 0 {
		return layout{}, fmt.Errorf("objectalloc: PadBytes must be >= 0, got %d", cfg.PadBytes)
	}
	if !cfg.UseSystemAlloc && cfg.ObjectSize < pointerSize {
		return layout{}, fmt.Errorf(
			"objectalloc: ObjectSize %d is smaller than pointer size %d; free objects must be large enough to host the free-list link",
			cfg.ObjectSize, pointerSize)
	}

	headerSize := cfg.Header.Size()
	blockStride := cfg.ObjectSize + 2*cfg.PadBytes + headerSize

	l := layout{
		headerSize:         headerSize,
		blockStride:        blockStride,
		pageBytes:          pointerSize + blockStride*cfg.ObjectsPerPage,
		firstSlotOffset:    pointerSize,
		objectOffsetInSlot: headerSize + cfg.PadBytes,
		objectSize:         cfg.ObjectSize,
		objectsPerPage:     cfg.ObjectsPerPage,
		padBytes:           cfg.PadBytes,
	}
	return l, nil
}

// firstObjectOffset is the offset, from the start of a page, of the
// object region of its first slot.
func (l layout) firstObjectOffset() int {
	return l.firstSlotOffset + l.objectOffsetInSlot
}
