package objectalloc

// Pattern bytes written into slots and pads to support debug checks.
// Values are bit-exact with the original assignment this allocator is
// modeled on and must not be changed without updating every test that
// pins an offset against one of them.
const (
	// PatternAllocated marks the object region of a slot that has been
	// handed to the client.
	PatternAllocated byte = 0xAA
	// PatternFreed marks the object region of a slot that has been
	// freed at least once.
	PatternFreed byte = 0xBB
	// PatternUnallocated marks the object region of a slot that has
	// never been allocated.
	PatternUnallocated byte = 0xCC
	// PatternPad marks the guard bytes bracketing every slot's object
	// region.
	PatternPad byte = 0xDD
	// PatternAlign is reserved for alignment padding; not used by this
	// allocator today.
	PatternAlign byte = 0xEE
)
