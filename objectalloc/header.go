package objectalloc

import (
	"encoding/binary"
	"unsafe"
)

const (
	basicFlagSize   = 1
	basicAllocSize  = 4
	basicReservedSz = 3
	extendedReuseSz = 2
)

// applyHeader writes or clears the header block immediately preceding
// obj's object region, per the selected HeaderInfo.Type. allocating
// selects Allocate semantics (set in-use, stamp the allocation number,
// bump the reuse counter) versus Free semantics (clear in-use, zero
// the allocation number). label is only consulted for HeaderExternal.
func (oa *ObjectAllocator) applyHeader(obj unsafe.Pointer, allocating bool, label string, hasLabel bool) error {
	switch oa.cfg.Header.Type {
	case HeaderNone:
		return nil
	case HeaderBasic, HeaderExtended:
		oa.applyInPlaceHeader(obj, allocating)
		return nil
	case HeaderExternal:
		return oa.applyExternalHeader(obj, allocating, label, hasLabel)
	default:
		return nil
	}
}

// applyInPlaceHeader handles HeaderBasic and HeaderExtended, which
// differ only in whether a 2-byte reuse counter sits just before the
// allocation number.
func (oa *ObjectAllocator) applyInPlaceHeader(obj unsafe.Pointer, allocating bool) {
	flag := flagByte(obj, oa.cfg.PadBytes)
	if allocating {
		*flag |= 1
	} else {
		*flag &^= 1
	}

	allocNum := unsafe.Add(unsafe.Pointer(flag), -basicAllocSize)
	allocNumBytes := unsafe.Slice((*byte)(allocNum), basicAllocSize)
	if allocating {
		binary.LittleEndian.PutUint32(allocNumBytes, uint32(oa.stats.Allocations))
	} else {
		binary.LittleEndian.PutUint32(allocNumBytes, 0)
	}

	if oa.cfg.Header.Type == HeaderExtended && allocating {
		reuseNum := unsafe.Add(allocNum, -extendedReuseSz)
		reuseBytes := unsafe.Slice((*byte)(reuseNum), extendedReuseSz)
		cur := binary.LittleEndian.Uint16(reuseBytes)
		binary.LittleEndian.PutUint16(reuseBytes, cur+1)
	}
}

// flagByte returns a pointer to the single in-use flag byte of a
// Basic/Extended header, located just before the left pad.
func flagByte(obj unsafe.Pointer, padBytes int) *byte {
	return (*byte)(unsafe.Add(obj, -padBytes-basicFlagSize))
}
