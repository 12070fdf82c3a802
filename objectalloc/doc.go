// Package objectalloc provides a fixed-size-block object pool allocator.
//
// A client constructs one ObjectAllocator per object size and then
// rapidly allocates and frees blocks of that size without repeatedly
// invoking the underlying system allocator. Memory is reserved in
// pages, each page subdivided into a fixed number of equal-sized
// slots; free slots are threaded onto an intrusive free list.
//
// Optional padding bytes and a header block (Basic, Extended or
// External) can be placed around every slot to support double-free
// detection, bad-boundary detection, corruption detection, allocation
// labelling, allocation numbering and reuse counting. A passthrough
// mode delegates every call to the underlying system allocator while
// still maintaining the allocation, deallocation and objects-in-use
// counters; it creates no pages and keeps no free objects.
//
// ObjectAllocator is not safe for concurrent use: it performs no
// internal locking and callers that need concurrent access must
// provide their own synchronization.
package objectalloc
