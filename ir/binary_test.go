package ir

import (
	"strings"
	"testing"

	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

func testObjectBytes() []byte {
	return native.WriteObject(native.ObjectSpec{
		Sections: []native.SectionSpec{
			{
				Name:     []byte(".text"),
				Address:  0x1000,
				Size:     32,
				Contents: []byte{0x90, 0x90, 0xc3},
				Relocations: []native.RelocationSpec{
					{Offset: 4, Type: 2, TypeName: "R_X86_64_PC32", SymbolIndex: 2, ValueString: "putchar-4"},
					{Offset: 12, Type: 1, TypeName: "R_X86_64_64", SymbolIndex: 1, ValueString: "counter"},
				},
			},
			{Name: []byte(".data"), Address: 0x2000, Size: 8, Contents: []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		},
		Symbols: []native.SymbolSpec{
			{Name: []byte("main"), Address: 0x1000, Size: 24, SectionIndex: 0},
			{Name: []byte("counter"), Address: 0x2000, Size: 8, SectionIndex: 1},
			{Name: []byte("putchar"), Address: 0, Size: 0, SectionIndex: 0},
		},
	})
}

func openBinary(t *testing.T) *Binary {
	t.Helper()
	bin, err := CreateBinary(testObjectBytes())
	if err != nil {
		t.Fatalf("CreateBinary: %v", err)
	}
	return bin
}

func TestBinaryIterationParity(t *testing.T) {
	bin := openBinary(t)
	defer bin.Dispose()

	// Manual cursor walk.
	var manual []string
	it, err := bin.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	for {
		atEnd, err := it.IsAtEnd()
		if err != nil {
			t.Fatalf("IsAtEnd: %v", err)
		}
		if atEnd {
			break
		}
		name, err := it.Name()
		if err != nil {
			t.Fatalf("Name: %v", err)
		}
		manual = append(manual, string(name))
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	// Callback walk over a fresh cursor.
	var each []string
	err = bin.EachSection(func(s *SectionIterator) error {
		name, err := s.Name()
		if err != nil {
			return err
		}
		each = append(each, string(name))
		return nil
	})
	if err != nil {
		t.Fatalf("EachSection: %v", err)
	}

	want := []string{".text", ".data"}
	for _, got := range [][]string{manual, each} {
		if len(got) != len(want) {
			t.Fatalf("section walk = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("section walk = %v, want %v", got, want)
			}
		}
	}

	var syms []string
	err = bin.EachSymbol(func(s *SymbolIterator) error {
		name, err := s.Name()
		if err != nil {
			return err
		}
		syms = append(syms, string(name))
		return nil
	})
	if err != nil {
		t.Fatalf("EachSymbol: %v", err)
	}
	if len(syms) != 3 || syms[0] != "main" || syms[1] != "counter" || syms[2] != "putchar" {
		t.Fatalf("symbol walk = %v", syms)
	}
}

func TestSectionIteratorEndGuard(t *testing.T) {
	bin := openBinary(t)
	defer bin.Dispose()

	it, err := bin.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := it.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	atEnd, err := it.IsAtEnd()
	if err != nil {
		t.Fatalf("IsAtEnd: %v", err)
	}
	if !atEnd {
		t.Fatal("cursor not at end after exhausting sections")
	}

	_, err = it.Name()
	if !errors.IsAssertion(err) || !strings.Contains(err.Error(), "not at end") {
		t.Fatalf("Name at end: got %v", err)
	}
	if _, err := it.Contents(); !errors.IsAssertion(err) {
		t.Fatalf("Contents at end: got %v", err)
	}
	if _, err := it.Relocations(); !errors.IsAssertion(err) {
		t.Fatalf("Relocations at end: got %v", err)
	}
}

func TestSymbolSectionQueries(t *testing.T) {
	bin := openBinary(t)
	defer bin.Dispose()

	sect, err := bin.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	sym, err := bin.Symbols()
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}

	// First symbol (main) lives in the first section (.text).
	in, err := sect.ContainsSymbol(sym)
	if err != nil {
		t.Fatalf("ContainsSymbol: %v", err)
	}
	if !in {
		t.Fatal("main not reported in .text")
	}

	// Second symbol (counter) lives in .data; reposition the cursor there.
	if err := sym.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := sect.MoveToContainingSection(sym); err != nil {
		t.Fatalf("MoveToContainingSection: %v", err)
	}
	name, err := sect.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if string(name) != ".data" {
		t.Fatalf("containing section = %q, want .data", name)
	}

	// An end-positioned symbol cursor is rejected by both queries.
	for i := 0; i < 5; i++ {
		if err := sym.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if _, err := sect.ContainsSymbol(sym); !errors.IsAssertion(err) || !strings.Contains(err.Error(), "not at end") {
		t.Fatalf("ContainsSymbol with ended cursor: got %v", err)
	}
	if err := sect.MoveToContainingSection(sym); !errors.IsAssertion(err) {
		t.Fatalf("MoveToContainingSection with ended cursor: got %v", err)
	}
}

func TestRelocationWalk(t *testing.T) {
	bin := openBinary(t)
	defer bin.Dispose()

	sect, err := bin.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}

	type reloc struct {
		offset   uint64
		typeName string
		value    string
	}
	var got []reloc
	err = sect.EachRelocation(func(r *RelocationIterator) error {
		off, err := r.Offset()
		if err != nil {
			return err
		}
		tn, err := r.TypeName()
		if err != nil {
			return err
		}
		vs, err := r.ValueString()
		if err != nil {
			return err
		}
		got = append(got, reloc{off, string(tn), string(vs)})
		return nil
	})
	if err != nil {
		t.Fatalf("EachRelocation: %v", err)
	}
	want := []reloc{
		{4, "R_X86_64_PC32", "putchar-4"},
		{12, "R_X86_64_64", "counter"},
	}
	if len(got) != len(want) {
		t.Fatalf("relocations = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("relocations = %+v, want %+v", got, want)
		}
	}

	// The second section has none.
	if err := sect.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	count := 0
	err = sect.EachRelocation(func(*RelocationIterator) error { count++; return nil })
	if err != nil {
		t.Fatalf("EachRelocation: %v", err)
	}
	if count != 0 {
		t.Fatalf("relocation count in .data = %d, want 0", count)
	}
}

func TestBinaryDisposeInvalidatesIterators(t *testing.T) {
	bin := openBinary(t)
	sect, err := bin.Sections()
	if err != nil {
		t.Fatalf("Sections: %v", err)
	}
	sym, err := bin.Symbols()
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}

	if err := bin.Dispose(); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if _, err := sect.Name(); !errors.IsMemory(err) || !strings.Contains(err.Error(), "used after binary disposed") {
		t.Fatalf("section access after dispose: got %v", err)
	}
	if _, err := sym.IsAtEnd(); !errors.IsMemory(err) {
		t.Fatalf("symbol access after dispose: got %v", err)
	}
	if err := bin.Dispose(); !errors.IsMemory(err) || !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("double Dispose: got %v", err)
	}
}

func TestBinaryManagerProtocol(t *testing.T) {
	bm := NewBinary(testObjectBytes())
	bin, err := bm.Enter()
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if _, err := bm.Enter(); !strings.Contains(err.Error(), "Binary manager already entered") {
		t.Fatalf("double Enter: got %v", err)
	}
	if err := bm.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if _, err := bin.Sections(); !errors.IsMemory(err) {
		t.Fatalf("binary access after Exit: got %v", err)
	}
	if err := bm.Exit(); !strings.Contains(err.Error(), "Binary has already been disposed") {
		t.Fatalf("double Exit: got %v", err)
	}
}

func TestBinaryManagerWith(t *testing.T) {
	bm := NewBinary(testObjectBytes())
	seen := 0
	err := bm.With(func(b *Binary) error {
		return b.EachSymbol(func(*SymbolIterator) error { seen++; return nil })
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if seen != 3 {
		t.Fatalf("symbols visited = %d, want 3", seen)
	}
	if _, err := bm.Enter(); !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("Enter after With: got %v", err)
	}
}

func TestBinaryParseFailure(t *testing.T) {
	_, err := CreateBinary([]byte("not an object"))
	if !errors.IsParse(err) {
		t.Fatalf("CreateBinary on garbage: got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid object file magic") {
		t.Fatalf("diagnostic missing: %v", err)
	}

	// A failed Enter consumes the manager.
	bm := NewBinary(nil)
	if _, err := bm.Enter(); !errors.IsParse(err) {
		t.Fatalf("Enter on garbage: got %v", err)
	}
	if _, err := bm.Enter(); !strings.Contains(err.Error(), "already been disposed") {
		t.Fatalf("Enter after failed Enter: got %v", err)
	}
}
