package objectalloc

import "unsafe"

// Stats is a read-only snapshot of an ObjectAllocator's bookkeeping.
// All fields are instantaneous except Allocations and Deallocations,
// which are cumulative totals, and MostObjects, which is the peak
// ObjectsInUse has ever reached.
type Stats struct {
	ObjectSize    int
	PageSize      int
	PagesInUse    int
	ObjectsInUse  int
	FreeObjects   int
	Allocations   int
	Deallocations int
	MostObjects   int
}

// GetStats returns a snapshot of the allocator's current statistics.
func (oa *ObjectAllocator) GetStats() Stats {
	return oa.stats
}

// GetConfig returns the allocator's configuration. Every field is
// immutable after construction except Debug, which reflects the most
// recent call to SetDebugState.
func (oa *ObjectAllocator) GetConfig() Config {
	return oa.cfg
}

// GetFreeList returns the address of the head of the free list, or
// nil if the free list is empty. Intended for test introspection.
func (oa *ObjectAllocator) GetFreeList() unsafe.Pointer {
	return oa.free.head
}

// GetPageList returns the base address of the head of the page list,
// or nil if no page has been allocated. Intended for test
// introspection.
func (oa *ObjectAllocator) GetPageList() unsafe.Pointer {
	return oa.pages.head
}

// SetDebugState flips the Debug flag. Every other Config field is
// immutable post-construction.
func (oa *ObjectAllocator) SetDebugState(on bool) {
	oa.cfg.Debug = on
}
