package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
)

func TestOperandOutOfRangeOnEmptyConstant(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	arr, err := ctx.ConstArray(i32, nil)
	if err != nil {
		t.Fatalf("ConstArray: %v", err)
	}
	n, err := arr.NumOperands()
	if err != nil {
		t.Fatalf("NumOperands: %v", err)
	}
	if n != 0 {
		t.Fatalf("NumOperands = %d, want 0", n)
	}

	_, err = arr.Operand(0)
	if !errors.IsAssertion(err) {
		t.Fatalf("Operand(0): got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "out of range") {
		t.Fatalf("message missing 'out of range': %q", msg)
	}
	if !strings.Contains(msg, "num_operands=0") {
		t.Fatalf("message missing 'num_operands=0': %q", msg)
	}
	if !strings.Contains(msg, "get_operand") {
		t.Fatalf("message missing API name: %q", msg)
	}
}

func TestIndexBoundaryValues(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	one, err := ctx.ConstInt(i32, 1, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	two, err := ctx.ConstInt(i32, 2, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}
	arr, err := ctx.ConstArray(i32, []*Value{one, two})
	if err != nil {
		t.Fatalf("ConstArray: %v", err)
	}

	for _, idx := range []int{0, 1} {
		if _, err := arr.Operand(idx); err != nil {
			t.Fatalf("Operand(%d): %v", idx, err)
		}
	}
	for _, idx := range []int{2, -1, -5} {
		if _, err := arr.Operand(idx); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "out of range") {
			t.Fatalf("Operand(%d): got %v", idx, err)
		}
	}
}

func TestKindGuards(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	c, err := ctx.ConstInt(i32, 42, false)
	if err != nil {
		t.Fatalf("ConstInt: %v", err)
	}

	// A constant is not an instruction.
	if _, err := c.Opcode(); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "expected an instruction") {
		t.Fatalf("Opcode on constant: got %v", err)
	}
	// A constant is not a function.
	if _, err := c.ParamCount(); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "expected a function") {
		t.Fatalf("ParamCount on constant: got %v", err)
	}
	// A constant int is not a float constant.
	if _, err := c.DoubleValue(); !errors.IsAssertion(err) {
		t.Fatalf("DoubleValue on int constant: got %v", err)
	}
	// The accepted kind passes.
	v, err := c.IntZExtValue()
	if err != nil {
		t.Fatalf("IntZExtValue: %v", err)
	}
	if v != 42 {
		t.Fatalf("IntZExtValue = %d, want 42", v)
	}
}

func TestTypeKindGuards(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	if w, err := i32.IntWidth(); err != nil || w != 32 {
		t.Fatalf("IntWidth = %d, %v", w, err)
	}
	if _, err := i32.StructElementCount(); !errors.IsAssertion(err) {
		t.Fatalf("StructElementCount on int type: got %v", err)
	}
	if _, err := i32.ReturnType(); !errors.IsAssertion(err) {
		t.Fatalf("ReturnType on int type: got %v", err)
	}
}

func TestAttributeIndexSentinel(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("attrs")
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
	fn, err := mod.AddFunction("f", fnTy)
	if err != nil {
		t.Fatalf("AddFunction: %v", err)
	}
	kindID, err := ctx.EnumAttributeKindForName("noinline")
	if err != nil {
		t.Fatalf("EnumAttributeKindForName: %v", err)
	}
	attr, err := ctx.CreateEnumAttribute(kindID, 0)
	if err != nil {
		t.Fatalf("CreateEnumAttribute: %v", err)
	}

	// -1 targets the function itself; 0 the return; 1..n the params.
	for _, idx := range []int{AttributeFunctionIndex, 0, 1} {
		if err := fn.AddAttribute(idx, attr); err != nil {
			t.Fatalf("AddAttribute(%d): %v", idx, err)
		}
	}
	err = fn.AddAttribute(-2, attr)
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "idx >= -1") {
		t.Fatalf("AddAttribute(-2): got %v", err)
	}
	if err := fn.AddAttribute(2, attr); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("AddAttribute(2): got %v", err)
	}
}

func TestAttributeKindGuards(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()

	sa, err := ctx.CreateStringAttribute("frame-pointer", "all")
	if err != nil {
		t.Fatalf("CreateStringAttribute: %v", err)
	}
	if _, err := sa.EnumKind(); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "expected an enum attribute") {
		t.Fatalf("EnumKind on string attribute: got %v", err)
	}
	k, err := sa.StringKind()
	if err != nil {
		t.Fatalf("StringKind: %v", err)
	}
	if k != "frame-pointer" {
		t.Fatalf("StringKind = %q", k)
	}
}

func TestNonUTF8NamesPreserved(t *testing.T) {
	ctx := newContext()
	defer ctx.Dispose()
	mod, err := ctx.NewModule("names")
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		t.Fatalf("Int32Type: %v", err)
	}
	g, err := mod.AddGlobal(i32, "g")
	if err != nil {
		t.Fatalf("AddGlobal: %v", err)
	}

	raw := []byte{0xff, 0x00, 0xfe, 'x'}
	if err := g.SetName(raw); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	got, err := g.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if string(got) != string(raw) {
		t.Fatalf("Name = %x, want %x", got, raw)
	}
}
