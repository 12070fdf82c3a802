package objectalloc

import (
	"runtime/cgo"
	"unsafe"
)

// externalRecord is the out-of-line header a HeaderExternal slot's
// pointer-sized cell refers to when the slot is in use.
type externalRecord struct {
	AllocationNumber uint32
	InUse            bool
	// Label holds a copy of the caller-supplied label, or nil if none
	// was provided. Stored without a trailing NUL: the record is an
	// out-of-line Go value, not a fixed-width byte region, so there is
	// no terminator convention to preserve.
	Label []byte
}

// applyExternalHeader allocates or releases the out-of-line record a
// HeaderExternal slot's cell refers to.
//
// The cell stores a runtime/cgo.Handle (encoded as a uintptr) rather
// than a raw Go pointer: the cell lives inside a []byte page buffer,
// and the garbage collector does not scan raw byte memory for
// pointers, so a bare *externalRecord stashed there could be collected
// out from under the allocator. cgo.Handle exists precisely to hand
// out an opaque, GC-safe reference to a Go value for storage in memory
// the collector can't see into.
//
// Unlike the C++ original, Go's allocator does not return recoverable
// out-of-memory errors from ordinary allocation, so the NoMemory path
// specified for this step is structurally present (the error return)
// but is not something this implementation can trigger in practice.
func (oa *ObjectAllocator) applyExternalHeader(obj unsafe.Pointer, allocating bool, label string, hasLabel bool) error {
	cell := unsafe.Add(obj, -oa.cfg.PadBytes-oa.layout.headerSize)

	if !allocating {
		releaseExternalHeader(cell)
		return nil
	}

	rec := &externalRecord{
		AllocationNumber: uint32(oa.stats.Allocations),
		InUse:            true,
	}
	if hasLabel {
		rec.Label = []byte(label)
	}
	writeHandle(cell, uintptr(cgo.NewHandle(rec)))
	return nil
}

// externalRecordAt returns the record referenced by a HeaderExternal
// slot's cell, or nil if the slot is free.
func externalRecordAt(obj unsafe.Pointer, padBytes, headerSize int) *externalRecord {
	cell := unsafe.Add(obj, -padBytes-headerSize)
	h := readHandle(cell)
	if h == 0 {
		return nil
	}
	rec, _ := cgo.Handle(h).Value().(*externalRecord)
	return rec
}

// releaseExternalHeader deletes the handle held in cell, if any, and
// zeroes the cell. Used by ObjectAllocator.Close to walk every
// in-use slot and release its external record before the owning page
// is returned to the system allocator.
func releaseExternalHeader(cell unsafe.Pointer) {
	if h := readHandle(cell); h != 0 {
		cgo.Handle(h).Delete()
	}
	writeHandle(cell, 0)
}

func readHandle(cell unsafe.Pointer) uintptr {
	return *(*uintptr)(cell)
}

func writeHandle(cell unsafe.Pointer, v uintptr) {
	*(*uintptr)(cell) = v
}
