package objectalloc

import "unsafe"

// walkSlots visits every slot's object address of every page, in
// page-list order and ascending-address order within each page, per
// spec §4.6.
func (oa *ObjectAllocator) walkSlots(visit func(obj unsafe.Pointer)) {
	for p := oa.pages.head; p != nil; {
		end := uintptr(p) + uintptr(oa.layout.pageBytes)
		addr := unsafe.Add(p, oa.layout.firstObjectOffset())
		for uintptr(addr) < end {
			visit(addr)
			addr = unsafe.Add(addr, oa.layout.blockStride)
		}
		p = (*linkNode)(p).next
	}
}

// DumpMemoryInUse invokes cb(objectAddress, objectSize) for every slot
// that is not on the free list, and returns the number of objects
// currently in use. Not meaningful in passthrough mode, where it
// always returns 0.
func (oa *ObjectAllocator) DumpMemoryInUse(cb func(obj unsafe.Pointer, size int)) int {
	if oa.cfg.UseSystemAlloc {
		return 0
	}
	oa.walkSlots(func(obj unsafe.Pointer) {
		if oa.free.contains(obj) {
			return
		}
		cb(obj, oa.layout.objectSize)
	})
	return oa.stats.ObjectsInUse
}

// ValidatePages invokes cb(objectAddress, objectSize) for every slot
// (in use or free) whose pad bytes contain any byte other than
// PatternPad, and returns how many such slots were found. Requires
// PadBytes > 0 to be meaningful; returns 0 otherwise, and in
// passthrough mode.
func (oa *ObjectAllocator) ValidatePages(cb func(obj unsafe.Pointer, size int)) int {
	if oa.cfg.UseSystemAlloc || oa.cfg.PadBytes == 0 {
		return 0
	}
	count := 0
	oa.walkSlots(func(obj unsafe.Pointer) {
		if corrupted(obj, oa.layout.objectSize, oa.cfg.PadBytes) {
			count++
			oa.logger.Debugf("objectalloc: corrupted pad bytes at %p", obj)
			cb(obj, oa.layout.objectSize)
		}
	})
	return count
}
