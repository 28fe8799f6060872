// Package native is the unchecked, handle-based boundary of the binding.
//
// It mirrors the shape of the underlying C API: opaque reference types and
// free functions operating on them. References carry no ownership metadata
// and no validity information. The package performs no bounds checking and
// no liveness checking; calling any function with a stale, foreign, or nil
// reference is undefined behavior, exactly like the library it stands in
// for. Dispose functions are one-shot. All safety lives one layer up, in
// package ir.
//
// The only entry points that validate their input are the parsers
// (ParseBitcode, CreateBinary): those report malformed input through a
// diagnostic string rather than crashing, because rejecting bad input is
// part of their contract.
//
// Strings cross this boundary as []byte with explicit lengths. Names and
// section contents with embedded NUL or non-UTF-8 bytes are preserved
// byte-for-byte.
package native
