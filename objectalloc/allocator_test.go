package objectalloc

import (
	"unsafe"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ObjectAllocator", func() {

	Describe("construction", func() {
		It("eagerly allocates the first page outside passthrough mode", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 4})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			Expect(oa.GetPageList()).NotTo(BeNil())
			Expect(oa.GetStats().PagesInUse).To(Equal(1))
			Expect(oa.GetStats().FreeObjects).To(Equal(4))
		})

		It("never allocates a page in passthrough mode", func() {
			oa, err := New(Config{ObjectSize: 16, UseSystemAlloc: true})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			Expect(oa.GetPageList()).To(BeNil())
			Expect(oa.GetStats().PagesInUse).To(Equal(0))
		})

		It("rejects an ObjectSize smaller than a pointer outside passthrough mode", func() {
			_, err := New(Config{ObjectSize: 1, ObjectsPerPage: 1})
			Expect(err).To(HaveOccurred())
		})

		It("rejects ObjectsPerPage below 1", func() {
			_, err := New(Config{ObjectSize: 16, ObjectsPerPage: 0})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Allocate", func() {
		var oa *ObjectAllocator

		BeforeEach(func() {
			var err error
			oa, err = New(Config{ObjectSize: 16, ObjectsPerPage: 2, MaxPages: 2})
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			oa.Close()
		})

		It("grows a new page once the current page is exhausted", func() {
			first, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			second, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(first).NotTo(Equal(second))
			Expect(oa.GetStats().PagesInUse).To(Equal(1))

			third, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(third).NotTo(BeNil())
			Expect(oa.GetStats().PagesInUse).To(Equal(2))
		})

		It("returns NoPages once MaxPages is exhausted", func() {
			for i := 0; i < 4; i++ {
				_, err := oa.Allocate()
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := oa.Allocate()
			Expect(err).To(HaveOccurred())
			Expect(As(err, NoPages)).To(BeTrue())
		})

		It("tracks MostObjects as the high-water mark of ObjectsInUse, not cumulative allocations", func() {
			a, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			b, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(oa.GetStats().MostObjects).To(Equal(2))

			Expect(oa.Free(a)).NotTo(HaveOccurred())
			Expect(oa.GetStats().MostObjects).To(Equal(2))

			_, err = oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(oa.GetStats().MostObjects).To(Equal(2), "reusing a freed slot must not push the peak past its prior high")
			_ = b
		})
	})

	Describe("Free", func() {
		var oa *ObjectAllocator

		BeforeEach(func() {
			var err error
			oa, err = New(Config{ObjectSize: 16, ObjectsPerPage: 4, Debug: true})
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			oa.Close()
		})

		It("returns a freed slot to the free list for reuse", func() {
			addr, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(oa.Free(addr)).NotTo(HaveOccurred())
			Expect(oa.GetStats().ObjectsInUse).To(Equal(0))
			Expect(oa.GetStats().FreeObjects).To(Equal(4))

			reused, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(reused).To(Equal(addr), "the most recently freed slot must be reused first (LIFO)")
		})

		It("rejects a double free without mutating any state", func() {
			addr, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())
			Expect(oa.Free(addr)).NotTo(HaveOccurred())

			statsBefore := oa.GetStats()
			err = oa.Free(addr)
			Expect(err).To(HaveOccurred())
			Expect(As(err, DoubleFree)).To(BeTrue())
			Expect(oa.GetStats()).To(Equal(statsBefore))
		})

		It("rejects an address that does not land on a block boundary", func() {
			addr, err := oa.Allocate()
			Expect(err).NotTo(HaveOccurred())

			misaligned := unsafe.Add(addr, 1)
			err = oa.Free(misaligned)
			Expect(err).To(HaveOccurred())
			Expect(As(err, BadBoundary)).To(BeTrue())
		})

		It("rejects an address from outside any page it owns", func() {
			foreign := make([]byte, 16)
			err := oa.Free(unsafe.Pointer(&foreign[0]))
			Expect(err).To(HaveOccurred())
			Expect(As(err, BadBoundary)).To(BeTrue())
		})

		It("detects pad corruption on Free when PadBytes > 0", func() {
			padded, err := New(Config{ObjectSize: 16, ObjectsPerPage: 1, MaxPages: 1, PadBytes: 4, Debug: true})
			Expect(err).NotTo(HaveOccurred())
			defer padded.Close()

			addr, err := padded.Allocate()
			Expect(err).NotTo(HaveOccurred())

			rightPad := (*byte)(unsafe.Add(addr, 16))
			*rightPad = 0x00

			err = padded.Free(addr)
			Expect(err).To(HaveOccurred())
			Expect(As(err, Corruption)).To(BeTrue())
		})

		It("does not run debug checks when Debug is off", func() {
			plain, err := New(Config{ObjectSize: 16, ObjectsPerPage: 1, MaxPages: 1, PadBytes: 4})
			Expect(err).NotTo(HaveOccurred())
			defer plain.Close()

			addr, err := plain.Allocate()
			Expect(err).NotTo(HaveOccurred())
			*(*byte)(unsafe.Add(addr, 16)) = 0x00

			Expect(plain.Free(addr)).NotTo(HaveOccurred())
		})
	})

	Describe("traversal", func() {
		It("DumpMemoryInUse visits exactly the slots currently allocated", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 4})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			a, _ := oa.Allocate()
			b, _ := oa.Allocate()
			Expect(oa.Free(a)).NotTo(HaveOccurred())

			var seen []unsafe.Pointer
			n := oa.DumpMemoryInUse(func(p unsafe.Pointer, size int) {
				seen = append(seen, p)
				Expect(size).To(Equal(16))
			})
			Expect(n).To(Equal(1))
			Expect(seen).To(ConsistOf(b))
		})

		It("ValidatePages reports zero corrupted slots when every pad is intact", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 2, MaxPages: 2, PadBytes: 4})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			for i := 0; i < 3; i++ {
				_, err := oa.Allocate()
				Expect(err).NotTo(HaveOccurred())
			}

			n := oa.ValidatePages(func(unsafe.Pointer, int) {})
			Expect(n).To(Equal(0))
		})

		It("ValidatePages finds every slot whose pad bytes were stomped on", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 2, MaxPages: 2, PadBytes: 4})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			var addrs []unsafe.Pointer
			for i := 0; i < 3; i++ {
				addr, err := oa.Allocate()
				Expect(err).NotTo(HaveOccurred())
				addrs = append(addrs, addr)
			}

			// Stomp the right pad of the first two slots; leave the third intact.
			*(*byte)(unsafe.Add(addrs[0], 16)) = 0x00
			*(*byte)(unsafe.Add(addrs[1], 16)) = 0x00

			var reported []unsafe.Pointer
			n := oa.ValidatePages(func(p unsafe.Pointer, size int) {
				reported = append(reported, p)
				Expect(size).To(Equal(16))
			})
			Expect(n).To(Equal(2))
			Expect(reported).To(ConsistOf(addrs[0], addrs[1]))
		})

		It("ValidatePages returns zero when PadBytes is 0", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 2, MaxPages: 2})
			Expect(err).NotTo(HaveOccurred())
			defer oa.Close()

			_, err = oa.Allocate()
			Expect(err).NotTo(HaveOccurred())

			n := oa.ValidatePages(func(unsafe.Pointer, int) {})
			Expect(n).To(Equal(0))
		})
	})

	Describe("Close", func() {
		It("releases every page and leaves the allocator's lists empty", func() {
			oa, err := New(Config{ObjectSize: 16, ObjectsPerPage: 4})
			Expect(err).NotTo(HaveOccurred())

			_, err = oa.Allocate()
			Expect(err).NotTo(HaveOccurred())

			oa.Close()
			Expect(oa.GetPageList()).To(BeNil())
			Expect(oa.GetFreeList()).To(BeNil())
		})
	})
})
