package objectalloc

import "unsafe"

// pointerSize is the width, in bytes, of the intrusive link cell placed
// at the head of every page and reused as the free-list "next" pointer
// inside every free slot.
const pointerSize = int(unsafe.Sizeof(uintptr(0)))

// HeaderType selects which header block variant, if any, is placed
// immediately before the pad/object region of every slot.
type HeaderType int

const (
	// HeaderNone places no header block before a slot.
	HeaderNone HeaderType = iota
	// HeaderBasic places an 8-byte in-place header: a 4-byte
	// allocation number, 3 reserved bytes, and a 1-byte in-use flag.
	HeaderBasic
	// HeaderExtended places a user-sized region, a 2-byte reuse
	// counter, a 4-byte allocation number and a 1-byte in-use flag.
	HeaderExtended
	// HeaderExternal places a single pointer-sized cell that, when
	// in-use, owns an out-of-line record carrying the allocation
	// number, in-use flag and an optional label.
	HeaderExternal
)

// HeaderInfo describes the selected header variant and, for
// HeaderExtended, the size of its caller-defined leading region.
type HeaderInfo struct {
	Type HeaderType
	// UserDefinedSize is the number of bytes of caller-owned storage
	// at the front of an Extended header. Ignored by other variants.
	UserDefinedSize int
}

// Size returns the number of bytes this header variant occupies in
// every slot.
func (h HeaderInfo) Size() int {
	switch h.Type {
	case HeaderNone:
		return 0
	case HeaderBasic:
		return 8 // 4-byte alloc#, 3 reserved, 1 flag
	case HeaderExtended:
		return h.UserDefinedSize + 2 + 4 + 1 // user + reuse# + alloc# + flag
	case HeaderExternal:
		return pointerSize
	default:
		return 0
	}
}

// AllocatorKind selects which SystemAllocator backs page acquisition.
type AllocatorKind int

const (
	// AllocatorHeap obtains pages from the Go heap via make([]byte, n).
	// This is the default and is portable across every platform.
	AllocatorHeap AllocatorKind = iota
	// AllocatorMmap obtains pages via an anonymous unix.Mmap region.
	// Only available on unix-like platforms; see sysalloc.go.
	AllocatorMmap
)

// Config holds the construction-time, (mostly) immutable configuration
// of an ObjectAllocator. Only Debug may be changed after construction,
// via ObjectAllocator.SetDebugState.
type Config struct {
	// ObjectSize is the number of bytes per user object. Must be > 0,
	// and must be at least pointerSize unless UseSystemAlloc is set,
	// since a free object's own bytes double as the free-list link.
	ObjectSize int
	// ObjectsPerPage is the number of slots carved out of each page.
	// Must be >= 1 unless UseSystemAlloc is set.
	ObjectsPerPage int
	// MaxPages bounds the number of pages the allocator will create;
	// 0 means unlimited.
	MaxPages int
	// PadBytes is the number of guard bytes written on each side of
	// every slot's object region. May be 0.
	PadBytes int
	// Header selects the header block variant placed before every
	// slot.
	Header HeaderInfo
	// UseSystemAlloc switches the allocator into passthrough mode:
	// every Allocate/Free is forwarded to the system allocator and no
	// page is ever created.
	UseSystemAlloc bool
	// Debug toggles double-free, bad-boundary and corruption checks in
	// Free, and pattern writes in Allocate/Free.
	Debug bool
	// Allocator selects which SystemAllocator backs page acquisition,
	// or, when UseSystemAlloc is set, every passthrough Allocate.
	Allocator AllocatorKind
}
