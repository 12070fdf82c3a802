package objectalloc

import "unsafe"

// SystemAllocator is the external collaborator the page manager and
// passthrough mode call out to for raw memory. It models "obtain N
// contiguous bytes" / "release N contiguous bytes"; the allocator never
// assumes anything about where the bytes came from beyond that they
// are contiguous and at least N bytes long.
type SystemAllocator interface {
	// Obtain returns a buffer of exactly n bytes, or an error if the
	// system declined the request.
	Obtain(n int) ([]byte, error)
	// Release returns a buffer previously returned by Obtain. Callers
	// must not touch buf after calling Release.
	Release(buf []byte)
}

// heapAllocator backs pages with ordinary Go-heap slices. It is the
// default SystemAllocator and the only one available on platforms
// without unix.Mmap.
type heapAllocator struct{}

func (heapAllocator) Obtain(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// Release is a no-op: the Go garbage collector reclaims the slice once
// nothing references it.
func (heapAllocator) Release([]byte) {}

func systemAllocatorFor(kind AllocatorKind) SystemAllocator {
	switch kind {
	case AllocatorMmap:
		return newMmapAllocator()
	default:
		return heapAllocator{}
	}
}

// baseAddr returns the address of the first byte of buf, for callers
// that need it as an unsafe.Pointer rather than a slice header.
func baseAddr(buf []byte) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}
