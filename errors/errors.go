package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	// KindAssertion marks a caller contract violation: wrong kind, index out
	// of range, invalid placement. Always preventable by the caller.
	KindAssertion Kind = "assertion"

	// KindMemory marks use of a wrapper or manager outside its valid
	// lifetime or state.
	KindMemory Kind = "memory"

	// KindUseAfterFree is the lifetime violation for values and types that
	// escape a disposed context.
	KindUseAfterFree Kind = "use_after_free"

	// KindNative marks a domain failure signaled by the native library.
	KindNative Kind = "native"

	// KindParse marks a native parse failure (IR text, bitcode, binaries).
	KindParse Kind = "parse"
)

// Error is the structured error type used throughout the binding layer.
type Error struct {
	Cause  error
	Kind   Kind
	API    string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.API != "" {
		b.WriteByte(' ')
		b.WriteString(e.API)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Assertion creates a caller contract violation error.
func Assertion(api, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Kind: KindAssertion, API: api, Detail: detail}
}

// Memory creates a lifetime or manager-state violation error.
func Memory(api, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Kind: KindMemory, API: api, Detail: detail}
}

// UseAfterFree creates a use-after-free error for values and types that
// outlive their context.
func UseAfterFree(api, detail string) *Error {
	return &Error{Kind: KindUseAfterFree, API: api, Detail: detail}
}

// Native creates an error for a failure signaled by the native library,
// carrying its diagnostic text unmodified.
func Native(api, diagnostic string) *Error {
	return &Error{Kind: KindNative, API: api, Detail: diagnostic}
}

// Parse creates an error for a native parse failure.
func Parse(api, diagnostic string) *Error {
	return &Error{Kind: KindParse, API: api, Detail: diagnostic}
}

// OutOfRange creates an assertion error for an index outside [0, count).
// countName names the owner-reported count, e.g. "num_operands".
func OutOfRange(api string, index int, countName string, count int) *Error {
	return &Error{
		Kind:   KindAssertion,
		API:    api,
		Detail: fmt.Sprintf("index %d out of range (%s=%d)", index, countName, count),
	}
}

// WrongKind creates an assertion error naming the expected kind in prose,
// e.g. WrongKind("icmp_predicate", "an icmp instruction").
func WrongKind(api, expected string) *Error {
	return &Error{
		Kind:   KindAssertion,
		API:    api,
		Detail: "expected " + expected,
	}
}

// Wrap wraps an existing error with kind and API context.
func Wrap(kind Kind, api string, cause error, detail string) *Error {
	return &Error{Kind: kind, API: api, Detail: detail, Cause: cause}
}

// kindOf extracts the Kind of the first *Error in the chain.
func kindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsAssertion reports whether err is a caller contract violation.
func IsAssertion(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAssertion
}

// IsMemory reports whether err is a lifetime or state violation.
// Use-after-free errors are memory errors too.
func IsMemory(err error) bool {
	k, ok := kindOf(err)
	return ok && (k == KindMemory || k == KindUseAfterFree)
}

// IsUseAfterFree reports whether err is specifically a use-after-free.
func IsUseAfterFree(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindUseAfterFree
}

// IsNative reports whether err is a native-library domain failure.
func IsNative(err error) bool {
	k, ok := kindOf(err)
	return ok && (k == KindNative || k == KindParse)
}

// IsParse reports whether err is a native parse failure.
func IsParse(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindParse
}
