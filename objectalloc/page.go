package objectalloc

import "unsafe"

// allocatePage obtains one new page from the system allocator, carves
// it into slots in ascending address order, chains every slot onto the
// free list (highest address ends up at the free-list head, since
// pushes are LIFO), and links the page onto the page list. See spec
// §4.3.
func (oa *ObjectAllocator) allocatePage() error {
	if oa.cfg.MaxPages != 0 && oa.stats.PagesInUse == oa.cfg.MaxPages {
		return errNoPages()
	}

	buf, err := oa.sysalloc.Obtain(oa.layout.pageBytes)
	if err != nil {
		return errNoMemory("allocatePage")
	}
	base := baseAddr(buf)

	// Zero the page-link cell, then push this page onto the page list.
	zero(base, pointerSize)
	oa.pageBufs = append(oa.pageBufs, buf)
	oa.pages.pushFront(base)

	for i := 0; i < oa.layout.objectsPerPage; i++ {
		slot := unsafe.Add(base, oa.layout.firstSlotOffset+i*oa.layout.blockStride)
		oa.initSlot(slot)
	}
	for i := 0; i < oa.layout.objectsPerPage; i++ {
		slot := unsafe.Add(base, oa.layout.firstSlotOffset+i*oa.layout.blockStride)
		oa.free.pushFront(unsafe.Add(slot, oa.layout.objectOffsetInSlot))
	}

	oa.stats.PagesInUse++
	oa.stats.FreeObjects += oa.layout.objectsPerPage
	return nil
}

// initSlot zeroes a fresh slot's header region and imprints its pad
// bytes. Pads are always written, debug or not, so ValidatePages stays
// meaningful independent of the Debug flag; the object region is only
// imprinted with PatternUnallocated when Debug is on.
func (oa *ObjectAllocator) initSlot(slot unsafe.Pointer) {
	zero(slot, oa.layout.headerSize)

	leftPad := unsafe.Add(slot, oa.layout.headerSize)
	object := unsafe.Add(leftPad, oa.cfg.PadBytes)
	rightPad := unsafe.Add(object, oa.layout.objectSize)

	fill(leftPad, PatternPad, oa.cfg.PadBytes)
	fill(rightPad, PatternPad, oa.cfg.PadBytes)
	if oa.cfg.Debug {
		fill(object, PatternUnallocated, oa.layout.objectSize)
	}
}

// objectPageLocation walks the page list and returns the base address
// of the page containing obj, or nil if no page contains it.
// Containment is strict: obj must fall before page+pageBytes, so the
// page's last byte is inside and the byte just past it is not.
func (oa *ObjectAllocator) objectPageLocation(obj unsafe.Pointer) unsafe.Pointer {
	for p := oa.pages.head; p != nil; {
		if withinPage(p, obj, oa.layout.pageBytes) {
			return p
		}
		p = (*linkNode)(p).next
	}
	return nil
}

func withinPage(page, addr unsafe.Pointer, pageBytes int) bool {
	start := uintptr(page)
	end := start + uintptr(pageBytes)
	a := uintptr(addr)
	return a >= start && a < end
}

func zero(p unsafe.Pointer, n int) {
	if n == 0 {
		return
	}
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = 0
	}
}

func fill(p unsafe.Pointer, v byte, n int) {
	if n == 0 {
		return
	}
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = v
	}
}
