package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestMessageFormat(t *testing.T) {
	err := Assertion("get_operand", "index %d out of range (%s=%d)", 3, "num_operands", 2)
	want := "[assertion] get_operand: index 3 out of range (num_operands=2)"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	// No API, no detail.
	bare := &Error{Kind: KindMemory}
	if bare.Error() != "[memory]" {
		t.Fatalf("Error() = %q", bare.Error())
	}
}

func TestWrapCarriesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(KindNative, "write_bitcode", cause, "emit failed")
	if !strings.Contains(err.Error(), "caused by: disk full") {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("wrapped cause not found by errors.Is")
	}
	var e *Error
	if !stderrors.As(err, &e) || e.Kind != KindNative {
		t.Fatalf("errors.As: got %+v", e)
	}
}

func TestIsMatchesByKind(t *testing.T) {
	a := Assertion("f", "bad index")
	b := Assertion("g", "different text")
	if !stderrors.Is(a, b) {
		t.Fatal("two assertion errors do not match by kind")
	}
	m := Memory("f", "gone")
	if stderrors.Is(a, m) {
		t.Fatal("assertion matched a memory error")
	}
}

func TestKindPredicates(t *testing.T) {
	cases := []struct {
		err                                    error
		assertion, memory, useAfterFree, parse bool
	}{
		{Assertion("f", "x"), true, false, false, false},
		{OutOfRange("f", 9, "num_args", 2), true, false, false, false},
		{WrongKind("f", "an instruction"), true, false, false, false},
		{Memory("f", "x"), false, true, false, false},
		{UseAfterFree("f", "x"), false, true, true, false},
		{Parse("f", "bad magic"), false, false, false, true},
		{Native("f", "target unknown"), false, false, false, false},
		{fmt.Errorf("plain"), false, false, false, false},
		{nil, false, false, false, false},
	}
	for i, c := range cases {
		if got := IsAssertion(c.err); got != c.assertion {
			t.Errorf("case %d: IsAssertion = %v, want %v", i, got, c.assertion)
		}
		if got := IsMemory(c.err); got != c.memory {
			t.Errorf("case %d: IsMemory = %v, want %v", i, got, c.memory)
		}
		if got := IsUseAfterFree(c.err); got != c.useAfterFree {
			t.Errorf("case %d: IsUseAfterFree = %v, want %v", i, got, c.useAfterFree)
		}
		if got := IsParse(c.err); got != c.parse {
			t.Errorf("case %d: IsParse = %v, want %v", i, got, c.parse)
		}
	}
}

func TestIsNativeCoversParse(t *testing.T) {
	if !IsNative(Native("f", "x")) {
		t.Fatal("IsNative(Native) = false")
	}
	if !IsNative(Parse("f", "x")) {
		t.Fatal("IsNative(Parse) = false")
	}
	if IsNative(Assertion("f", "x")) {
		t.Fatal("IsNative(Assertion) = true")
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := OutOfRange("get_param", 7, "num_params", 1)
	outer := fmt.Errorf("loading function: %w", inner)
	if !IsAssertion(outer) {
		t.Fatal("IsAssertion does not unwrap")
	}
	if !strings.Contains(outer.Error(), "num_params=1") {
		t.Fatalf("wrapped message = %q", outer.Error())
	}
}

func TestOutOfRangeText(t *testing.T) {
	err := OutOfRange("get_operand", -1, "num_operands", 0)
	for _, frag := range []string{"out of range", "num_operands=0", "index -1"} {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("message missing %q: %q", frag, err.Error())
		}
	}
}

func TestWrongKindText(t *testing.T) {
	err := WrongKind("int_width", "an integer type")
	if !strings.Contains(err.Error(), "expected an integer type") {
		t.Fatalf("message = %q", err.Error())
	}
}
