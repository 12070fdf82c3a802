package objectalloc

import "unsafe"

// allocatePassthrough and freePassthrough implement UseSystemAlloc
// mode: every call is forwarded straight to the SystemAllocator and no
// page is ever created, while Allocations, Deallocations,
// ObjectsInUse, MostObjects and ObjectSize continue to be maintained
// so a client can still observe usage. Per Design Notes §9 this is the
// only place passthrough-specific logic lives; Allocate and Free
// otherwise dispatch to it with a single field check rather than a
// second code path threaded through the rest of the package.

func (oa *ObjectAllocator) allocatePassthrough() (unsafe.Pointer, error) {
	buf, err := oa.sysalloc.Obtain(oa.cfg.ObjectSize)
	if err != nil {
		return nil, errNoMemory("Allocate")
	}
	addr := baseAddr(buf)
	oa.ptBufs[addr] = buf

	oa.stats.Allocations++
	oa.stats.ObjectsInUse++
	if oa.stats.ObjectsInUse > oa.stats.MostObjects {
		oa.stats.MostObjects = oa.stats.ObjectsInUse
	}
	return addr, nil
}

func (oa *ObjectAllocator) freePassthrough(obj unsafe.Pointer) error {
	if buf, ok := oa.ptBufs[obj]; ok {
		oa.sysalloc.Release(buf)
		delete(oa.ptBufs, obj)
	}
	oa.stats.Deallocations++
	oa.stats.ObjectsInUse--
	return nil
}
