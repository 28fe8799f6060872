// Package irbindings provides a safe Go binding layer over an unchecked,
// handle-based compiler IR library.
//
// The underlying native API is opaque: references carry no ownership
// information, no bounds checking, and misuse is undefined behavior. This
// library turns those raw references into an ownership-tracked, type-checked,
// lifetime-safe object graph.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	ir-bindings/
//	├── ir/              High-level safe API: contexts, modules, values,
//	│                    builders, binaries, with guarded accessors and
//	│                    explicit resource managers
//	├── native/          The unchecked native boundary: opaque references
//	│                    and raw operations with assert-or-crash semantics
//	└── errors/          Structured error types for guard failures
//
// # Quick Start
//
// Create a context, build a module, print it:
//
//	cm := ir.NewContext()
//	err := cm.With(func(ctx *ir.Context) error {
//	    return ctx.NewModuleManager("demo").With(func(mod *ir.Module) error {
//	        i32, _ := ctx.Int32Type()
//	        fnTy, _ := ir.FunctionType(i32, nil, false)
//	        fn, _ := mod.AddFunction("main", fnTy)
//	        bb, _ := fn.AppendBasicBlock("entry")
//	        b, _ := bb.NewBuilder()
//	        zero, _ := ctx.ConstInt(i32, 0, false)
//	        _, err := b.Ret(zero)
//	        return err
//	    })
//	})
//
// # Safety Model
//
// Every wrapper shares a validity token with the root resource it derives
// from. Disposing the root invalidates every descendant wrapper in O(1);
// any later access fails with a memory error naming the API and the cause.
// Kind-tagged accessors reject wrong-kind and out-of-range operations before
// they ever reach the native library, and structural mutations (instruction
// moves, block splits) are validated up front so rejected edits leave the
// module byte-identical.
package irbindings
