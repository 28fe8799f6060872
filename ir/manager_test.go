package ir

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

func TestContextManagerDoubleEnter(t *testing.T) {
	cm := NewContext()
	if _, err := cm.Enter(); err != nil {
		t.Fatalf("first Enter: %v", err)
	}
	defer cm.Exit()

	_, err := cm.Enter()
	if !errors.IsMemory(err) {
		t.Fatalf("second Enter: got %v", err)
	}
	if !strings.Contains(err.Error(), "Context manager already entered") {
		t.Fatalf("second Enter message: %v", err)
	}
}

func TestContextManagerDoubleDispose(t *testing.T) {
	cm := NewContext()
	if err := cm.Dispose(); err != nil {
		t.Fatalf("first Dispose: %v", err)
	}
	err := cm.Dispose()
	if !errors.IsMemory(err) {
		t.Fatalf("second Dispose: got %v", err)
	}
	if !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("second Dispose message: %v", err)
	}

	// A disposed manager can never be entered.
	if _, err := cm.Enter(); !errors.IsMemory(err) {
		t.Fatalf("Enter after Dispose: got %v", err)
	}
}

func TestContextManagerExitTransitions(t *testing.T) {
	cm := NewContext()
	if err := cm.Exit(); !errors.IsMemory(err) || !strings.Contains(err.Error(), "Context manager not entered") {
		t.Fatalf("Exit before Enter: got %v", err)
	}
	if _, err := cm.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := cm.Exit(); err != nil {
		t.Fatalf("first Exit: %v", err)
	}
	if err := cm.Exit(); !errors.IsMemory(err) || !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("second Exit: got %v", err)
	}
}

func TestContextManagerDisposeAfterEnter(t *testing.T) {
	cm := NewContext()
	if _, err := cm.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	defer cm.Exit()

	err := cm.Dispose()
	if !errors.IsMemory(err) {
		t.Fatalf("Dispose after Enter: got %v", err)
	}
	if !strings.Contains(err.Error(), "cannot call dispose() after entered; use Exit") {
		t.Fatalf("Dispose after Enter message: %v", err)
	}
}

func TestContextManagerWith(t *testing.T) {
	var inside *Context
	cm := NewContext()
	err := cm.With(func(ctx *Context) error {
		inside = ctx
		if _, err := ctx.Int32Type(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if _, err := inside.Int32Type(); !errors.IsMemory(err) {
		t.Fatalf("context alive after With: got %v", err)
	}
}

func TestContextManagerWithCallbackErrorWins(t *testing.T) {
	cm := NewContext()
	want := fmt.Errorf("boom")
	err := cm.With(func(ctx *Context) error { return want })
	if err != want {
		t.Fatalf("With error: got %v, want %v", err, want)
	}
	// Exit still ran.
	if err := cm.Exit(); !errors.IsMemory(err) {
		t.Fatalf("Exit after With: got %v", err)
	}
}

func TestModuleManagerLifecycle(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	mm := ctx.NewModuleManager("managed")
	mod, err := mm.Enter()
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if _, err := mm.Enter(); !strings.Contains(err.Error(), "Module manager already entered") {
		t.Fatalf("double Enter: got %v", err)
	}
	if err := mm.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if _, err := mod.Identifier(); !errors.IsMemory(err) {
		t.Fatalf("module access after Exit: got %v", err)
	}
	if err := mm.Exit(); !strings.Contains(err.Error(), "Module has already been disposed") {
		t.Fatalf("double Exit: got %v", err)
	}
}

func TestBuilderManagerLifecycle(t *testing.T) {
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
	if _, err := b.InsertBlock(); err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}
	if err := bm.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if _, err := b.InsertBlock(); !errors.IsMemory(err) {
		t.Fatalf("builder access after Exit: got %v", err)
	}
	if err := bm.Exit(); !strings.Contains(err.Error(), "Builder has already been disposed") {
		t.Fatalf("double Exit: got %v", err)
	}
}

func TestDIBuilderManagerLifecycle(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("di")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}

	dm, err := mod.NewDIBuilderManager()
	if err != nil {
		t.Fatalf("NewDIBuilderManager: %v", err)
	}
	err = dm.With(func(d *DIBuilder) error {
		file, err := d.CreateFile("main.ir", "/src")
		if err != nil {
			return err
		}
		cu, err := d.CreateCompileUnit(12, file, "irdump", false)
		if err != nil {
			return err
		}
		if _, err := d.CreateFunction(cu, "main", "main", file, 1); err != nil {
			return err
		}
		return d.Finalize()
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	nmd, err := mod.NamedMetadata("llvm.dbg.cu")
	if err != nil {
		t.Fatalf("NamedMetadata: %v", err)
	}
	if nmd == nil {
		t.Fatal("llvm.dbg.cu missing after Finalize")
	}
	if _, err := dm.Enter(); !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("Enter after With: got %v", err)
	}
}

func TestDIBuilderExitLeavesModuleAlive(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("di")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}

	dm, err := mod.NewDIBuilderManager()
	if err != nil {
		t.Fatalf("NewDIBuilderManager: %v", err)
	}
	d, err := dm.Enter()
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := dm.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}

	// Only the builder died; the module and context keep working.
	if _, err := mod.Identifier(); err != nil {
		t.Fatalf("module access after DIBuilder Exit: %v", err)
	}
	if _, err := mod.AddGlobal(mustInt32(t, ctx), "g"); err != nil {
		t.Fatalf("AddGlobal after DIBuilder Exit: %v", err)
	}
	_, err = d.CreateFile("late.ir", "/src")
	if !errors.IsMemory(err) || !strings.Contains(err.Error(), "DIBuilder has already been disposed") {
		t.Fatalf("builder access after Exit: got %v", err)
	}
}

func mustInt32(t *testing.T, ctx *Context) *Type {
	t.Helper()
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	return i32
}
