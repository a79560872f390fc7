package encio

import (
	"errors"
	"fmt"
	"runtime"
)

// Errors are a small set of kinds, wrapped with extra information where it helps.
// Decoding malformed data always returns an error; panics are reserved for codec bookkeeping
// that cannot go wrong unless an Encodable is implemented incorrectly.
//
// Errors can be checked with
//
//	if errors.Is(err, encio.ErrUnknownUnionTag) {
//		// handle unknown variant
//	}
//
// and the padding error's location retrieved with
//
//	var padErr encio.NonZeroPaddingError
//	if errors.As(err, &padErr) {
//		// padErr.PaddingStart, padErr.NonZeroPos
//	}
var (
	// ErrOutOfRange is returned when a read would run past the end of the buffer or handle list.
	ErrOutOfRange = errors.New("out of range")

	// ErrExtraBytes is returned when bytes remain after the whole message was decoded.
	ErrExtraBytes = errors.New("extra bytes")

	// ErrExtraHandles is returned when handles remain after the whole message was decoded.
	ErrExtraHandles = errors.New("extra handles")

	// ErrNonZeroPadding is matched by NonZeroPaddingError.
	ErrNonZeroPadding = errors.New("non-zero padding")

	// ErrInvalid is returned for malformed presence markers, envelope counts, bits, enums and bools.
	ErrInvalid = errors.New("invalid")

	// ErrNotNullable is returned when an absent marker is found where a value is required.
	ErrNotNullable = errors.New("not nullable")

	// ErrUnexpectedNullRef is returned when an absent object claims a nonzero size.
	ErrUnexpectedNullRef = errors.New("unexpected null reference")

	// ErrUnknownUnionTag is returned when a strict union or a result carries an ordinal it does not declare.
	ErrUnknownUnionTag = errors.New("unknown union tag")

	// ErrMaxRecursionDepth is returned when out-of-line nesting exceeds MaxRecursion.
	ErrMaxRecursionDepth = errors.New("max recursion depth exceeded")

	// ErrUTF8 is returned when a decoded string is not valid UTF-8.
	ErrUTF8 = errors.New("invalid utf-8")

	// ErrBadConfig is returned when a value cannot be used the way the caller asked,
	// i.e. encoding handles into a persistent message.
	ErrBadConfig = errors.New("bad config")
)

// NonZeroPaddingError is returned when a padding byte is not zero.
type NonZeroPaddingError struct {
	// PaddingStart is the offset where the padding run begins.
	PaddingStart int
	// NonZeroPos is the offset of the first nonzero byte in it.
	NonZeroPos int
}

// Error implements error
func (e NonZeroPaddingError) Error() string {
	return fmt.Sprintf("non-zero padding: padding starting at %v has non-zero byte at %v", e.PaddingStart, e.NonZeroPos)
}

// Is reports whether target is ErrNonZeroPadding.
func (e NonZeroPaddingError) Is(target error) bool {
	return target == ErrNonZeroPadding
}

// NewIOError returns an IOError wrapping err with the given message.
// err is typically the error returned from reading a file or stream holding a message.
// message has extra information about the error; if empty, it is filled with the calling function's name.
func NewIOError(err error, message string) error {
	if err == nil {
		return NewError(errors.New("unknown error"), "trying to create new IOError", "encio.NewIOError")
	}
	if message == "" {
		message = "in " + GetCaller(1)
	}

	return IOError{
		Err:     err,
		Message: message,
	}
}

// IOError is returned when message bytes could not be obtained at all.
type IOError struct {
	Err     error
	Message string
}

// Error implements error
func (e IOError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap implements errors's Unwrap()
func (e IOError) Unwrap() error {
	return e.Err
}

// NewError returns an Error wrapping err with message and caller.
// If caller is empty, it is automatically filled with the calling function's name.
func NewError(err error, message string, caller string) error {
	if caller == "" {
		caller = GetCaller(1)
	}

	return Error{
		Err:     err,
		Message: message,
		Caller:  caller,
	}
}

// Errorf is NewError with a formatted message.
func Errorf(err error, format string, args ...interface{}) error {
	return Error{
		Err:     err,
		Message: fmt.Sprintf(format, args...),
		Caller:  GetCaller(1),
	}
}

// Error is returned when encoding or decoding fails.
type Error struct {
	Err     error
	Message string
	Caller  string
}

// Error implements error
func (e Error) Error() (str string) {
	if e.Caller != "" {
		str = e.Caller + ": "
	}

	str += e.Err.Error()

	if e.Message != "" {
		str += " (" + e.Message + ")"
	}

	return str
}

// Unwrap implements errors's Unwrap()
func (e Error) Unwrap() error {
	return e.Err
}

// GetCaller returns the name of the calling function, skipping skip functions.
// i.e. 0 writes the calling function, 1 the function calling that etc...
func GetCaller(skip int) string {
	pcs := make([]uintptr, 1)
	n := runtime.Callers(2+skip, pcs)
	if n != 1 {
		return "Unknown Function"
	}

	frames := runtime.CallersFrames(pcs)
	frame, _ := frames.Next()
	return frame.Function
}
