package objectalloc

import "github.com/pkg/errors"

// Error is the common shape of every error the allocator returns: a
// short, human-readable diagnostic plus a stable Kind a caller can
// switch on without string matching.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrorKind enumerates the allocator's error taxonomy. None of these
// ever surface after a partial mutation: on NoMemory during page or
// external-record creation, no new page/record is linked; on NoPages,
// BadBoundary, DoubleFree or Corruption, detection happens before any
// state is mutated.
type ErrorKind int

const (
	// NoMemory indicates the system allocator refused a request for a
	// page, an external header record, or a label.
	NoMemory ErrorKind = iota
	// NoPages indicates Allocate found the free list empty with
	// pages already at MaxPages.
	NoPages
	// BadBoundary indicates Free received an address that is not
	// slot-aligned within any known page.
	BadBoundary
	// DoubleFree indicates Free received an address already on the
	// free list.
	DoubleFree
	// Corruption indicates Free or ValidatePages found a pad byte
	// whose value is not PatternPad.
	Corruption
)

func newErr(kind ErrorKind, message string) error {
	return errors.WithStack(&Error{Kind: kind, Message: message})
}

func errNoMemory(where string) error {
	return newErr(NoMemory, where+": no system memory available")
}

func errNoPages() error {
	return newErr(NoPages, "Allocate: memory manager out of logical memory (max pages has been reached)")
}

func errBadBoundary() error {
	return newErr(BadBoundary, "Free: object address is not on a block boundary")
}

func errDoubleFree() error {
	return newErr(DoubleFree, "Free: object has already been freed")
}

func errCorruption() error {
	return newErr(Corruption, "Free: object's pad bytes have been corrupted")
}

// As reports whether err (or one of the errors it wraps) is an
// *Error of the given kind, mirroring the stdlib errors.As contract.
func As(err error, kind ErrorKind) bool {
	var oaErr *Error
	if errors.As(err, &oaErr) {
		return oaErr.Kind == kind
	}
	return false
}
