package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

func TestBuilderNotPositioned(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	one, err := ctx.ConstInt(i32, 1, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}

	_, err = bld.Add(one, one, "sum")
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "builder is not positioned") {
		t.Fatalf("Add on unpositioned builder: got %v", err)
	}
	if _, err := bld.RetVoid(); !errors.IsAssertion(err) {
		t.Fatalf("RetVoid on unpositioned builder: got %v", err)
	}

	// InsertBlock is allowed; it reports the missing position as nil.
	bb, err := bld.InsertBlock()
	if err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}
	if bb != nil {
		t.Fatal("InsertBlock on unpositioned builder is not nil")
	}
}

func TestBuilderDisposeLifecycle(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := bld.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	err = bld.Dispose()
	if !errors.IsMemory(err) || !strings.Contains(err.Error(), "Builder has already been disposed") {
		t.Fatalf("double Dispose: got %v", err)
	}
	if _, err := bld.InsertBlock(); !errors.IsMemory(err) {
		t.Fatalf("use after Dispose: got %v", err)
	}
}

func TestBuilderExitLeavesContextAlive(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	bm, err := ctx.NewBuilderManager()
	if err != nil {
		t.Fatalf("NewBuilderManager: %v", err)
	}
	b, err := bm.Enter()
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := bm.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}

	// Only the builder died; the context keeps working.
	if _, err := ctx.Int32Type(); err != nil {
		t.Fatalf("context access after builder Exit: %v", err)
	}
	if _, err := ctx.NewModule("alive"); err != nil {
		t.Fatalf("NewModule after builder Exit: %v", err)
	}
	if _, err := b.InsertBlock(); !errors.IsMemory(err) {
		t.Fatalf("builder access after Exit: got %v", err)
	}
}

func TestBuilderDisposeLeavesContextAlive(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := bld.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := ctx.Int32Type(); err != nil {
		t.Fatalf("context access after builder Dispose: %v", err)
	}

	// A second builder is mintable and usable.
	other, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder after Dispose: %v", err)
	}
	if _, err := other.InsertBlock(); err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}
}

func TestBuilderDiesWithContext(t *testing.T) {
	ctx := newContext()
	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := ctx.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := bld.InsertBlock(); !errors.IsMemory(err) {
		t.Fatalf("builder access after context dispose: got %v", err)
	}
}

func TestPositionBeforeRequiresAttachedInstruction(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := d.subBig.RemoveFromParent(); err != nil {
		t.Fatalf("RemoveFromParent: %v", err)
	}
	err = bld.PositionBefore(d.subBig)
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "not attached") {
		t.Fatalf("PositionBefore on detached instruction: got %v", err)
	}
	if err := d.subBig.DeleteInstruction(); err != nil {
		t.Fatalf("DeleteInstruction: %v", err)
	}
}

func TestBuilderEmitsVerifiableFunction(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("emit")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	fnTy, err := FunctionType(i32, []*Type{i32}, false)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	fn, err := mod.AddFunction("twice_plus_one", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	entry, err := fn.AppendBasicBlock("entry")
	if err != nil {
		t.Fatalf("AppendBasicBlock: %v", err)
	}
	bld, err := entry.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	x, err := fn.Param(0)
	if err != nil {
		t.Fatalf("Param: %v", err)
	}
	one, err := ctx.ConstInt(i32, 1, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	dbl, err := bld.Add(x, x, "dbl")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	sum, err := bld.Add(dbl, one, "sum")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := bld.Ret(sum); err != nil {
		t.Fatalf("Ret: %v", err)
	}

	ok, diag, err := mod.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("module invalid: %s", diag)
	}
	text, err := mod.String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	for _, frag := range []string{"twice_plus_one", "dbl", "sum"} {
		if !strings.Contains(text, frag) {
			t.Fatalf("module text missing %q:\n%s", frag, text)
		}
	}
}

func TestInsertValueRejectsNegativeIndex(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := bld.PositionBefore(d.subBig); err != nil {
		t.Fatalf("PositionBefore: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	stTy, err := ctx.StructType([]*Type{i32, i32}, false)
	if err != nil {
		t.Fatalf("StructType: %v", err)
	}
	agg, err := ctx.Undef(stTy)
	if err != nil {
		t.Fatalf("Undef: %v", err)
	}
	one, err := ctx.ConstInt(i32, 1, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	_, err = bld.InsertValue(agg, one, -1, "bad")
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "idx >= 0") {
		t.Fatalf("InsertValue(-1): got %v", err)
	}
	if _, err := bld.ExtractValue(agg, -3, "bad"); !errors.IsAssertion(err) {
		t.Fatalf("ExtractValue(-3): got %v", err)
	}
}

func TestCallRequiresFunctionType(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	bld, err := ctx.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if err := bld.PositionBefore(d.subBig); err != nil {
		t.Fatalf("PositionBefore: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	_, err = bld.Call(i32, d.fn, nil, "bad")
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "expected a function type") {
		t.Fatalf("Call with non-function type: got %v", err)
	}
}
