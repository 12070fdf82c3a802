package objectalloc

import "unsafe"

// linkNode is the intrusive "next" cell free objects and pages are
// reinterpreted as. It is never a real Go value living on its own: it
// is a view onto the first pointerSize bytes of memory that is
// otherwise raw, uninitialized-to-Go-types storage owned by a page
// buffer kept alive elsewhere (see page.go). Because that owning buffer
// is always retained by the allocator, chaining these cells through
// unsafe.Pointer never risks a collected backing array.
type linkNode struct {
	next unsafe.Pointer
}

// freeList is a singly-linked LIFO of addresses, threaded through the
// first pointerSize bytes of whatever it links. It backs both the
// allocator's free list (slot addresses) and its page list (page base
// addresses): both are "push new node to front, walk via next" over
// the same raw-memory link cell, so one implementation serves both.
type freeList struct {
	head unsafe.Pointer
}

// pushFront prepends addr to the list. addr must point at the start
// of a slot's object region or a page's link cell, with at least
// pointerSize bytes of backing storage.
func (fl *freeList) pushFront(addr unsafe.Pointer) {
	node := (*linkNode)(addr)
	node.next = fl.head
	fl.head = addr
}

// popFront removes and returns the head of the free list, or nil if
// the list is empty.
func (fl *freeList) popFront() unsafe.Pointer {
	addr := fl.head
	if addr == nil {
		return nil
	}
	node := (*linkNode)(addr)
	fl.head = node.next
	return addr
}

// contains reports whether addr is currently linked into the free
// list. This is O(n) in the free list's length and is only called
// from double-free detection, DumpMemoryInUse and the Close traversal.
func (fl *freeList) contains(addr unsafe.Pointer) bool {
	for p := fl.head; p != nil; {
		if p == addr {
			return true
		}
		p = (*linkNode)(p).next
	}
	return false
}
