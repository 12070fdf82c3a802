//go:build !unix

package objectalloc

// newMmapAllocator falls back to the heap allocator on platforms
// without unix.Mmap; AllocatorMmap is a portability hint, not a
// guarantee.
func newMmapAllocator() SystemAllocator { return heapAllocator{} }
