// Package errs defines the typed error categories shared across go-tinyhtm.
//
// Every exported operation that can fail returns an error that either is,
// or wraps, an *errs.Error so callers can branch on Kind rather than on
// error text.
package errs

import "fmt"

// Kind classifies an error the way the original C ABI's error codes did
// (ENULLPTR, EINV, EIO, ENOMEM, EMMAN, EID, ELEVEL, ELEN, EDEGEN, EHEMIS,
// ETREE), so a caller porting from that ABI has a direct mapping.
type Kind int

const (
	KindNullPtr     Kind = iota // ENULLPTR: required input was nil/zero
	KindInvalid                 // EINV: argument out of its valid domain
	KindIO                      // EIO: read/write/open/rename/unlink/madvise failure
	KindNoMem                   // ENOMEM: allocation or mmap failure
	KindMMap                    // EMMAN: mmap/munmap/madvise management failure
	KindBadID                   // EID: malformed HTM id
	KindBadLevel                // ELEVEL: level outside [0, HTM_MAX_LEVEL]
	KindBadLen                  // ELEN: length/size precondition violated
	KindDegenerate              // EDEGEN: degenerate geometry (repeated vertices, zero vector, ...)
	KindNotHemi                 // EHEMIS: point set is not hemispherical
	KindTree                    // ETREE: tree file corruption or inconsistency
)

func (k Kind) String() string {
	switch k {
	case KindNullPtr:
		return "ENULLPTR"
	case KindInvalid:
		return "EINV"
	case KindIO:
		return "EIO"
	case KindNoMem:
		return "ENOMEM"
	case KindMMap:
		return "EMMAN"
	case KindBadID:
		return "EID"
	case KindBadLevel:
		return "ELEVEL"
	case KindBadLen:
		return "ELEN"
	case KindDegenerate:
		return "EDEGEN"
	case KindNotHemi:
		return "EHEMIS"
	case KindTree:
		return "ETREE"
	default:
		return fmt.Sprintf("EUNKNOWN(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no underlying cause.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

// Wrap builds an *Error carrying cause as its Unwrap target.
func Wrap(k Kind, msg string, cause error) *Error {
	return &Error{Kind: k, Msg: msg, Err: cause}
}

// Is reports whether err is an *Error of the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if err == nil {
		return false
	}
	for {
		if ae, ok := err.(*Error); ok { //nolint:errorlint // Kind comparison wants the concrete type
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
		if err == nil {
			return false
		}
	}
	return e.Kind == k
}

// Sentinels for conditions that never carry extra context.
var (
	ErrNilVector    = New(KindNullPtr, "nil or zero-length unit vector")
	ErrOutOfBudget  = New(KindInvalid, "range cover budget too small (need >= 4 at level 0)")
	ErrNoTree       = New(KindTree, "no tree blob present")
	ErrTreeCorrupt  = New(KindTree, "tree file structurally inconsistent")
	ErrHashNotEmpty = New(KindTree, "compression hash table non-empty at EOF")
)
