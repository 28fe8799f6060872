// Package errors provides the structured error types for the ir-bindings
// safety layer.
//
// Errors are categorized by Kind: contract violations by the caller
// (KindAssertion), lifetime and manager-state violations (KindMemory,
// KindUseAfterFree), and failures signaled by the native library itself
// (KindNative, KindParse). Every error names the API that was called and
// carries a human-readable detail, so failures can be matched on literal
// substrings such as "out of range" or "different contexts".
//
// Construct errors with the convenience constructors:
//
//	err := errors.Assertion("icmp_predicate", "expected an icmp instruction")
//	err := errors.OutOfRange("get_operand", 3, "num_operands", 0)
//	err := errors.Memory("get_name", "Value used after context was disposed")
//
// All errors implement the standard error interface and support
// errors.Is/As. Kind predicates (IsAssertion, IsMemory, ...) classify any
// error in the chain.
package errors
