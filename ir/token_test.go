package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

func buildChain(t *testing.T) (*Context, *Module, *Value, *BasicBlock, *Value) {
	t.Helper()
	ctx := newContext()
	mod, err := ctx.NewModule("chain")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	fnTy, err := FunctionType(i32, nil, false)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	fn, err := mod.AddFunction("f", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	bb, err := fn.AppendBasicBlock("entry")
	if err != nil {
		t.Fatalf("AppendBasicBlock: %v", err)
	}
	bld, err := bb.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	zero, err := ctx.ConstInt(i32, 0, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	ret, err := bld.Ret(zero)
	if err != nil {
		t.Fatalf("Ret: %v", err)
	}
	return ctx, mod, fn, bb, ret
}

func TestContextDisposeInvalidatesDescendants(t *testing.T) {
	ctx, mod, fn, bb, inst := buildChain(t)

	if err := ctx.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	if _, err := mod.Identifier(); !errors.IsMemory(err) {
		t.Fatalf("module access after context dispose: got %v", err)
	}
	if _, err := fn.Name(); !errors.IsMemory(err) {
		t.Fatalf("function access after context dispose: got %v", err)
	}
	if _, err := bb.Name(); !errors.IsMemory(err) {
		t.Fatalf("block access after context dispose: got %v", err)
	}
	if _, err := inst.Opcode(); !errors.IsMemory(err) {
		t.Fatalf("instruction access after context dispose: got %v", err)
	}

	if _, err := inst.Opcode(); !strings.Contains(err.Error(), "used after context disposed") {
		t.Fatalf("cause missing from message: %v", err)
	}
}

func TestModuleDisposeLeavesContextAlive(t *testing.T) {
	ctx, mod, fn, _, _ := buildChain(t)
	defer ctx.Dispose()

	if err := mod.Dispose(); err != nil {
		t.Fatalf("module Dispose: %v", err)
	}
	if _, err := fn.Name(); !errors.IsUseAfterFree(err) {
		t.Fatalf("function access after module dispose: got %v", err)
	}
	if _, err := fn.Name(); !strings.Contains(err.Error(), "used after module disposed") {
		t.Fatalf("cause missing from message: %v", err)
	}

	// The context is untouched and can mint new modules.
	if _, err := ctx.NewModule("fresh"); err != nil {
		t.Fatalf("NewModule after sibling dispose: %v", err)
	}
}

func TestModuleDoubleDispose(t *testing.T) {
	ctx, mod, _, _, _ := buildChain(t)
	defer ctx.Dispose()

	if err := mod.Dispose(); err != nil {
		t.Fatalf("first Dispose: %v", err)
	}
	err := mod.Dispose()
	if !errors.IsMemory(err) {
		t.Fatalf("second Dispose: got %v", err)
	}
	if !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("second Dispose message: %v", err)
	}
}

func TestGlobalContextIsNotDisposable(t *testing.T) {
	g := GlobalContext()
	if !g.IsGlobal() {
		t.Fatal("IsGlobal() = false")
	}
	err := g.Dispose()
	if !errors.IsAssertion(err) {
		t.Fatalf("Dispose on global context: got %v", err)
	}
	if GlobalContext() != g {
		t.Fatal("GlobalContext is not a singleton")
	}
}

func TestTypeOutlivesNothing(t *testing.T) {
	ctx := newContext()
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	if err := ctx.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := i32.Kind(); !errors.IsUseAfterFree(err) {
		t.Fatalf("type access after dispose: got %v", err)
	}
}
