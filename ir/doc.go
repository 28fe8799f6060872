// Package ir is the safe, high-level API over the native IR boundary.
//
// Every wrapper minted by this package carries a validity token shared with
// the root resource it derives from (a Context, a standalone Binary).
// Disposing the root flips the token once; every descendant wrapper then
// rejects all operations with a memory error naming the API and the cause.
//
// Heavyweight native resources are held by resource managers with an
// explicit Created -> Entered -> Disposed state machine:
//
//	cm := ir.NewContext()
//	ctx, err := cm.Enter()
//	...
//	err = cm.Exit() // disposes the context and everything it owns
//
// or, scoped:
//
//	err := ir.NewContext().With(func(ctx *ir.Context) error { ... })
//
// Accessors are guarded: each one checks liveness, then the wrapper's kind
// tag against the operation's accepted kinds, then any index argument
// against the owner-reported count, and only then calls into the native
// boundary. Structural mutations (instruction moves, block splits) validate
// every precondition before touching the module, so a rejected mutation
// leaves the textual form of the module byte-identical.
package ir
