package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

// diamond is the |a-b| control flow shape used by the mutation tests:
// entry branches to bigger or smaller, both fall through to merge, and
// merge selects the result with a phi.
type diamond struct {
	mod     *Module
	fn      *Value
	entry   *BasicBlock
	bigger  *BasicBlock
	smaller *BasicBlock
	merge   *BasicBlock
	cmp     *Value
	subBig  *Value
	subSmol *Value
	phi     *Value
}

func buildDiamond(t *testing.T, ctx *Context) *diamond {
	t.Helper()
	mod, err := ctx.NewModule("absdiff")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	fnTy, err := FunctionType(i32, []*Type{i32, i32}, false)
	if err != nil {
		t.Fatalf("FunctionType: %v", err)
	}
	fn, err := mod.AddFunction("absdiff", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	d := &diamond{mod: mod, fn: fn}
	for _, blk := range []struct {
		name string
		dst  **BasicBlock
	}{
		{"entry", &d.entry},
		{"bigger", &d.bigger},
		{"smaller", &d.smaller},
		{"merge", &d.merge},
	} {
		bb, err := fn.AppendBasicBlock(blk.name)
		if err != nil {
			t.Fatalf("AppendBasicBlock(%s): %v", blk.name, err)
		}
		*blk.dst = bb
	}

	a, err := fn.Param(0)
	if err != nil {
		t.Fatalf("Param(0): %v", err)
	}
	b, err := fn.Param(1)
	if err != nil {
		t.Fatalf("Param(1): %v", err)
	}

	bld, err := d.entry.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if d.cmp, err = bld.ICmp(IntSGT, a, b, "agtb"); err != nil {
		t.Fatalf("ICmp: %v", err)
	}
	if _, err = bld.CondBr(d.cmp, d.bigger, d.smaller); err != nil {
		t.Fatalf("CondBr: %v", err)
	}

	if err = bld.PositionAtEnd(d.bigger); err != nil {
		t.Fatalf("PositionAtEnd(bigger): %v", err)
	}
	if d.subBig, err = bld.Sub(a, b, "amb"); err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if _, err = bld.Br(d.merge); err != nil {
		t.Fatalf("Br: %v", err)
	}

	if err = bld.PositionAtEnd(d.smaller); err != nil {
		t.Fatalf("PositionAtEnd(smaller): %v", err)
	}
	if d.subSmol, err = bld.Sub(b, a, "bma"); err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if _, err = bld.Br(d.merge); err != nil {
		t.Fatalf("Br: %v", err)
	}

	if err = bld.PositionAtEnd(d.merge); err != nil {
		t.Fatalf("PositionAtEnd(merge): %v", err)
	}
	if d.phi, err = bld.Phi(i32, "out"); err != nil {
		t.Fatalf("Phi: %v", err)
	}
	err = d.phi.AddIncoming([]*Value{d.subBig, d.subSmol}, []*BasicBlock{d.bigger, d.smaller})
	if err != nil {
		t.Fatalf("AddIncoming: %v", err)
	}
	if _, err = bld.Ret(d.phi); err != nil {
		t.Fatalf("Ret: %v", err)
	}
	return d
}

func moduleText(t *testing.T, mod *Module) string {
	t.Helper()
	s, err := mod.String()
	if err != nil {
		t.Fatalf("module String: %v", err)
	}
	return s
}

// rejected asserts that err is an assertion mentioning fragment and that
// the module text is byte-identical to before.
func rejected(t *testing.T, err error, fragment, before string, mod *Module) {
	t.Helper()
	if !errors.IsAssertion(err) {
		t.Fatalf("want assertion error, got %v", err)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("message missing %q: %v", fragment, err)
	}
	if after := moduleText(t, mod); after != before {
		t.Fatalf("rejected mutation changed the module:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}

func TestMoveTerminatorIntoInterior(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	term, err := d.entry.Terminator()
	if err != nil {
		t.Fatalf("Terminator: %v", err)
	}
	err = term.MoveBefore(d.subBig)
	rejected(t, err, "terminator", before, d.mod)
}

func TestMoveNonPHIBeforePHI(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	err := d.subBig.MoveBefore(d.phi)
	rejected(t, err, "non-PHI instruction before a PHI", before, d.mod)
}

func TestMovePHIAfterNonPHI(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	err := d.phi.MoveAfter(d.subBig)
	rejected(t, err, "PHI instruction after a non-PHI", before, d.mod)
}

func TestMoveAcrossContexts(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	other := newContext()
	defer other.Dispose()

	d := buildDiamond(t, ctx)
	e := buildDiamond(t, other)
	before := moduleText(t, d.mod)

	err := d.subBig.MoveBefore(e.subBig)
	rejected(t, err, "different contexts", before, d.mod)
}

func TestMoveRelativeToSelf(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	err := d.subBig.MoveAfter(d.subBig)
	rejected(t, err, "relative to itself", before, d.mod)
}

func TestMoveBetweenBlocks(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	// Legal move: the comparison can sit in front of bigger's sub.
	if err := d.cmp.MoveBefore(d.subBig); err != nil {
		t.Fatalf("MoveBefore: %v", err)
	}
	parent, err := d.cmp.InstructionParent()
	if err != nil {
		t.Fatalf("InstructionParent: %v", err)
	}
	if !parent.Equal(d.bigger) {
		t.Fatal("moved instruction not in destination block")
	}
	first, err := d.bigger.FirstInstruction()
	if err != nil {
		t.Fatalf("FirstInstruction: %v", err)
	}
	if !first.Equal(d.cmp) {
		t.Fatal("moved instruction not first in destination block")
	}
}

func TestLandingPadMustStayFirst(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("pads")
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
	fn, err := mod.AddFunction("pad", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	bb, err := fn.AppendBasicBlock("lpad")
	if err != nil {
		t.Fatalf("AppendBasicBlock: %v", err)
	}
	bld, err := bb.NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	lpTy, err := ctx.StructType([]*Type{i32, i32}, false)
	if err != nil {
		t.Fatalf("StructType: %v", err)
	}
	lp, err := bld.LandingPad(lpTy, 0, "lp")
	if err != nil {
		t.Fatalf("LandingPad: %v", err)
	}
	if err := lp.SetCleanup(true); err != nil {
		t.Fatalf("SetCleanup: %v", err)
	}
	one, err := ctx.ConstInt(i32, 1, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	add, err := bld.Add(one, one, "pad2")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := bld.Ret(add); err != nil {
		t.Fatalf("Ret: %v", err)
	}

	before := moduleText(t, mod)
	err = add.MoveBefore(lp)
	rejected(t, err, "LandingPad", before, mod)
}

func TestSplitAtPHI(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	_, err := d.merge.Split(d.phi, "tail")
	rejected(t, err, "PHI", before, d.mod)

	blocks, err := d.fn.BasicBlocks()
	if err != nil {
		t.Fatalf("BasicBlocks: %v", err)
	}
	if len(blocks) != 4 {
		t.Fatalf("block count after rejected split = %d, want 4", len(blocks))
	}
}

func TestSplitInstructionNotInBlock(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)
	before := moduleText(t, d.mod)

	_, err := d.merge.Split(d.subBig, "tail")
	rejected(t, err, "not found", before, d.mod)
}

func TestSplitAcrossContexts(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	other := newContext()
	defer other.Dispose()

	d := buildDiamond(t, ctx)
	e := buildDiamond(t, other)
	before := moduleText(t, d.mod)

	_, err := d.bigger.Split(e.subBig, "tail")
	rejected(t, err, "different contexts", before, d.mod)
}

func TestSplitMovesTail(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	tail, err := d.bigger.Split(d.subBig, "bigger.tail")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// The original block now holds only a branch to the new block.
	n, err := d.bigger.InstructionCount()
	if err != nil {
		t.Fatalf("InstructionCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("head block instruction count = %d, want 1", n)
	}
	term, err := d.bigger.Terminator()
	if err != nil {
		t.Fatalf("Terminator: %v", err)
	}
	op, err := term.Opcode()
	if err != nil {
		t.Fatalf("Opcode: %v", err)
	}
	if op != Br {
		t.Fatalf("head terminator = %v, want br", op)
	}
	succ, err := term.Successor(0)
	if err != nil {
		t.Fatalf("Successor: %v", err)
	}
	if !succ.Equal(tail) {
		t.Fatal("head does not branch to the split-off block")
	}

	// The split point and everything after it moved.
	first, err := tail.FirstInstruction()
	if err != nil {
		t.Fatalf("FirstInstruction: %v", err)
	}
	if !first.Equal(d.subBig) {
		t.Fatal("split point is not the first instruction of the new block")
	}
	parent, err := d.subBig.InstructionParent()
	if err != nil {
		t.Fatalf("InstructionParent: %v", err)
	}
	if !parent.Equal(tail) {
		t.Fatal("split point still attached to the old block")
	}

	ok, diag, err := d.mod.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("module invalid after split: %s", diag)
	}
}

func TestSplitBeforeRewiresPredecessors(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	d := buildDiamond(t, ctx)

	ret, err := d.merge.Terminator()
	if err != nil {
		t.Fatalf("Terminator: %v", err)
	}
	head, err := d.merge.SplitBefore(ret, "merge.head")
	if err != nil {
		t.Fatalf("SplitBefore: %v", err)
	}

	// Both diamond arms now branch to the new head, not to merge.
	for _, arm := range []*BasicBlock{d.bigger, d.smaller} {
		term, err := arm.Terminator()
		if err != nil {
			t.Fatalf("Terminator: %v", err)
		}
		succ, err := term.Successor(0)
		if err != nil {
			t.Fatalf("Successor: %v", err)
		}
		if !succ.Equal(head) {
			t.Fatal("predecessor was not rewired to the new block")
		}
	}

	// The phi moved with the head and kept its incoming blocks.
	parent, err := d.phi.InstructionParent()
	if err != nil {
		t.Fatalf("InstructionParent: %v", err)
	}
	if !parent.Equal(head) {
		t.Fatal("phi did not move to the new block")
	}
	n, err := d.phi.IncomingCount()
	if err != nil {
		t.Fatalf("IncomingCount: %v", err)
	}
	if n != 2 {
		t.Fatalf("phi incoming count = %d, want 2", n)
	}

	// The head falls through to the original block.
	term, err := head.Terminator()
	if err != nil {
		t.Fatalf("Terminator: %v", err)
	}
	succ, err := term.Successor(0)
	if err != nil {
		t.Fatalf("Successor: %v", err)
	}
	if !succ.Equal(d.merge) {
		t.Fatal("new block does not branch to the original block")
	}

	ok, diag, err := d.mod.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("module invalid after split: %s", diag)
	}
}
