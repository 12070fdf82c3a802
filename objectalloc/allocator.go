package objectalloc

import "unsafe"

// ObjectAllocator is a fixed-size-block object pool allocator. Create
// one per object size with New and use Allocate/Free to cycle blocks
// through it without repeatedly calling the system allocator.
//
// ObjectAllocator is not safe for concurrent use.
type ObjectAllocator struct {
	cfg    Config
	layout layout
	stats  Stats

	free  freeList // intrusive LIFO of free slot object addresses
	pages freeList // intrusive list of page base addresses

	pageBufs [][]byte             // retains every page's backing storage
	ptBufs   map[unsafe.Pointer][]byte // passthrough: addr -> its buffer

	sysalloc SystemAllocator
	logger   Logger
}

// New constructs an ObjectAllocator for the given configuration. In
// non-passthrough mode it eagerly allocates the first page, matching
// the spec's lazy-except-at-construction page lifecycle.
func New(cfg Config) (*ObjectAllocator, error) {
	l, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}

	oa := &ObjectAllocator{
		cfg:      cfg,
		layout:   l,
		sysalloc: systemAllocatorFor(cfg.Allocator),
		logger:   noopLogger{},
	}
	oa.stats.ObjectSize = cfg.ObjectSize
	oa.stats.PageSize = l.pageBytes

	if cfg.UseSystemAlloc {
		oa.ptBufs = make(map[unsafe.Pointer][]byte)
		return oa, nil
	}

	if err := oa.allocatePage(); err != nil {
		return nil, err
	}
	return oa, nil
}

// Allocate removes one block from the free list (creating a new page
// first if necessary) and returns its address. label, if given, is
// attached to the block when the allocator uses HeaderExternal; it is
// ignored in every other configuration, including passthrough.
func (oa *ObjectAllocator) Allocate(label ...string) (unsafe.Pointer, error) {
	if oa.cfg.UseSystemAlloc {
		return oa.allocatePassthrough()
	}

	if oa.stats.FreeObjects == 0 {
		if err := oa.growForAllocate(); err != nil {
			return nil, err
		}
	}

	slot := oa.free.popFront()

	oa.stats.Allocations++
	oa.stats.FreeObjects--
	oa.stats.ObjectsInUse++
	if oa.stats.ObjectsInUse > oa.stats.MostObjects {
		oa.stats.MostObjects = oa.stats.ObjectsInUse
	}

	var lbl string
	hasLabel := len(label) > 0
	if hasLabel {
		lbl = label[0]
	}
	if err := oa.applyHeader(slot, true, lbl, hasLabel); err != nil {
		// No partial state is published: undo the counters and
		// relink the slot before surfacing the failure.
		oa.stats.Allocations--
		oa.stats.FreeObjects++
		oa.stats.ObjectsInUse--
		oa.free.pushFront(slot)
		return nil, err
	}

	if oa.cfg.Debug {
		fill(slot, PatternAllocated, oa.layout.objectSize)
	}
	return slot, nil
}

func (oa *ObjectAllocator) growForAllocate() error {
	if oa.cfg.MaxPages != 0 && oa.stats.PagesInUse >= oa.cfg.MaxPages {
		return errNoPages()
	}
	return oa.allocatePage()
}

// Free returns obj to the free list. With Debug on it first checks for
// a double free, a bad boundary, and (if PadBytes > 0) pad corruption;
// none of these checks mutate state, so a failed Free leaves the
// allocator exactly as it was.
func (oa *ObjectAllocator) Free(obj unsafe.Pointer) error {
	if oa.cfg.UseSystemAlloc {
		return oa.freePassthrough(obj)
	}

	if oa.cfg.Debug {
		if oa.free.contains(obj) {
			return errDoubleFree()
		}
		page := oa.objectPageLocation(obj)
		if page == nil {
			return errBadBoundary()
		}
		off := uintptr(obj) - uintptr(page) - uintptr(oa.layout.firstObjectOffset())
		if off%uintptr(oa.layout.blockStride) != 0 {
			return errBadBoundary()
		}
		if oa.cfg.PadBytes > 0 && corrupted(obj, oa.layout.objectSize, oa.cfg.PadBytes) {
			return errCorruption()
		}
	}

	if err := oa.applyHeader(obj, false, "", false); err != nil {
		return err
	}

	if oa.cfg.Debug {
		fill(obj, PatternFreed, oa.layout.objectSize)
	}

	oa.free.pushFront(obj)
	oa.stats.FreeObjects++
	oa.stats.Deallocations++
	oa.stats.ObjectsInUse--
	return nil
}

// FreeEmptyPages would return empty pages to the system allocator. Not
// implemented; always returns 0, per spec §4.9.
func (oa *ObjectAllocator) FreeEmptyPages() int { return 0 }

// ImplementedExtraCredit reports whether the optional extra-credit
// behaviors of the original assignment were implemented. They were
// not.
func (oa *ObjectAllocator) ImplementedExtraCredit() bool { return false }

// Close releases every external header record still in use, then
// returns every page (or, in passthrough mode, every outstanding
// allocation) to the system allocator. The allocator must not be used
// after Close returns.
func (oa *ObjectAllocator) Close() {
	if oa.cfg.UseSystemAlloc {
		for addr, buf := range oa.ptBufs {
			oa.sysalloc.Release(buf)
			delete(oa.ptBufs, addr)
		}
		return
	}

	if oa.cfg.Header.Type == HeaderExternal {
		oa.walkSlots(func(obj unsafe.Pointer) {
			if oa.free.contains(obj) {
				return
			}
			releaseExternalHeader(unsafe.Add(obj, -oa.cfg.PadBytes-oa.layout.headerSize))
		})
	}

	for _, buf := range oa.pageBufs {
		oa.sysalloc.Release(buf)
	}
	oa.pageBufs = nil
	oa.pages = freeList{}
	oa.free = freeList{}
}

func corrupted(obj unsafe.Pointer, objectSize, padBytes int) bool {
	left := unsafe.Slice((*byte)(unsafe.Add(obj, -padBytes)), padBytes)
	right := unsafe.Slice((*byte)(unsafe.Add(obj, objectSize)), padBytes)
	for _, b := range left {
		if b != PatternPad {
			return true
		}
	}
	for _, b := range right {
		if b != PatternPad {
			return true
		}
	}
	return false
}
