package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

// declModule builds a module of declarations only, the shape the bitcode
// writer and Clone preserve in full.
func declModule(t *testing.T, ctx *Context, name string) *Module {
	t.Helper()
	mod, err := ctx.NewModule(name)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	i8, err := ctx.Int8Type()
	if err != nil {
		t.Fatalf("Int8Type: %v", err)
	}
	ptr, err := ctx.PointerType(0)
	if err != nil {
		t.Fatalf("PointerType: %v", err)
	}
	mainTy, err := FunctionType(i32, []*Type{i32, ptr}, false)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	if _, err := mod.AddFunction("main", mainTy); err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	printfTy, err := FunctionType(i32, []*Type{ptr}, true)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	if _, err := mod.AddFunction("printf", printfTy); err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	if _, err := mod.AddGlobal(i8, "flag"); err != nil {
		t.Fatalf("AddGlobal: %v", err)
	}
	return mod
}

func TestBitcodeRoundTrip(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod := declModule(t, ctx, "roundtrip")
	if err := mod.SetTarget("x86_64-unknown-linux-gnu"); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if err := mod.SetDataLayout("e-m:e-i64:64"); err != nil {
		t.Fatalf("SetDataLayout: %v", err)
	}
	want := moduleText(t, mod)

	data, err := mod.WriteBitcode()
	if err != nil {
		t.Fatalf("WriteBitcode: %v", err)
	}
	back, err := ctx.ParseBitcode(data)
	if err != nil {
		t.Fatalf("ParseBitcode: %v", err)
	}
	if got := moduleText(t, back); got != want {
		t.Fatalf("round trip changed the module:\nbefore:\n%s\nafter:\n%s", want, got)
	}
	triple, err := back.Target()
	if err != nil {
		t.Fatalf("Target: %v", err)
	}
	if triple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("Target = %q", triple)
	}
	vararg, err := back.NamedFunction("printf")
	if err != nil {
		t.Fatalf("NamedFunction: %v", err)
	}
	if vararg == nil {
		t.Fatal("printf declaration lost in round trip")
	}

	// The parsed module dies independently of its sibling.
	if err := back.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := mod.Identifier(); err != nil {
		t.Fatalf("source module affected by sibling dispose: %v", err)
	}
}

func TestParseBitcodeFailure(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	_, err := ctx.ParseBitcode([]byte("garbage"))
	if !errors.IsParse(err) {
		t.Fatalf("ParseBitcode on garbage: got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid bitcode signature") {
		t.Fatalf("diagnostic missing: %v", err)
	}
}

func TestVerifyReportsMissingTerminator(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("broken")
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
	fn, err := mod.AddFunction("open_ended", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	if _, err := fn.AppendBasicBlock("entry"); err != nil {
		t.Fatalf("AppendBasicBlock: %v", err)
	}

	ok, diag, err := mod.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("Verify accepted a block without a terminator")
	}
	if !strings.Contains(diag, "terminator") || !strings.Contains(diag, "open_ended") {
		t.Fatalf("diagnostic = %q", diag)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod := declModule(t, ctx, "source")

	clone, err := mod.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if moduleText(t, clone) != moduleText(t, mod) {
		t.Fatal("clone differs from source")
	}

	// Renaming in the source does not leak into the clone.
	fn, err := mod.NamedFunction("main")
	if err != nil {
		t.Fatalf("NamedFunction: %v", err)
	}
	if err := fn.SetName([]byte("entrypoint")); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	kept, err := clone.NamedFunction("main")
	if err != nil {
		t.Fatalf("NamedFunction on clone: %v", err)
	}
	if kept == nil {
		t.Fatal("clone lost its function after source rename")
	}

	if err := clone.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := mod.Identifier(); err != nil {
		t.Fatalf("source module affected by clone dispose: %v", err)
	}
}
