//go:build unix

package objectalloc

import "golang.org/x/sys/unix"

// mmapAllocator backs pages with anonymous, private mmap regions. It
// gives the page manager a real system-allocator collaborator instead
// of relying on the Go heap, at the cost of page-granularity rounding
// and platform portability.
type mmapAllocator struct{}

func newMmapAllocator() SystemAllocator { return mmapAllocator{} }

func (mmapAllocator) Obtain(n int) ([]byte, error) {
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errNoMemory("mmapAllocator.Obtain")
	}
	return buf, nil
}

func (mmapAllocator) Release(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Munmap(buf)
}
