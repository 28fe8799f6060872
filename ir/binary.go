package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Binary wraps a parsed object file. Iterators derived from it share its
// token and die when it is disposed.
type Binary struct {
	tok  *token
	node *lifetimeNode
	ref  native.BinaryRef
}

// BinaryManager holds a Binary behind the Created -> Entered -> Disposed
// protocol.
type BinaryManager struct {
	m    manager
	data []byte
	bin  *Binary
}

// NewBinary creates an unentered binary manager over raw object bytes.
// Parsing happens on Enter.
func NewBinary(data []byte) *BinaryManager {
	return &BinaryManager{m: newManager("Binary"), data: data}
}

// Enter parses the object. One-shot; a parse failure consumes the manager.
func (bm *BinaryManager) Enter() (*Binary, error) {
	if err := bm.m.enter("Binary.Enter"); err != nil {
		return nil, err
	}
	bin, err := CreateBinary(bm.data)
	if err != nil {
		bm.m.state = managerDisposed
		return nil, err
	}
	bm.bin = bin
	bm.m.node = bin.node
	return bin, nil
}

// Exit disposes the binary and every iterator derived from it.
func (bm *BinaryManager) Exit() error {
	return bm.m.exit("Binary.Exit")
}

// Dispose releases an unentered manager. After Enter, use Exit.
func (bm *BinaryManager) Dispose() error {
	return bm.m.dispose("Binary.Dispose")
}

// With runs fn inside an Enter/Exit pair, exiting on every path. The
// callback error wins over the exit error.
func (bm *BinaryManager) With(fn func(*Binary) error) error {
	bin, err := bm.Enter()
	if err != nil {
		return err
	}
	err = fn(bin)
	if xerr := bm.Exit(); err == nil {
		err = xerr
	}
	return err
}

// CreateBinary parses raw object bytes into a Binary. The diagnostic from
// a failed parse is passed through unmodified.
func CreateBinary(data []byte) (*Binary, error) {
	const api = "create_binary"
	ref, diag := native.CreateBinary(data)
	if ref == nil {
		return nil, errors.Parse(api, string(diag))
	}
	tok := newToken("binary disposed", nil)
	bin := &Binary{tok: tok, ref: ref}
	bin.node = newLifetimeNode(tok, func() { native.DisposeBinary(ref) })
	return bin, nil
}

// Dispose releases the binary. One-shot.
func (b *Binary) Dispose() error {
	if b.tok.dead {
		return errors.Memory("dispose", "Binary has already been disposed")
	}
	if err := ensureOwner(b.tok, "dispose"); err != nil {
		return err
	}
	b.node.dispose()
	return nil
}

// notAtEnd is the guard shared by every property accessor below.
func notAtEnd(api string, atEnd bool) error {
	if atEnd {
		return errors.Assertion(api, "iterator is at end (must be not at end)")
	}
	return nil
}

// SectionIterator is a forward-only cursor over a binary's sections.
type SectionIterator struct {
	tok *token
	ref native.SectionIteratorRef
}

// Sections mints a section cursor positioned at the first section.
func (b *Binary) Sections() (*SectionIterator, error) {
	if err := ensureOwner(b.tok, "copy_section_iterator"); err != nil {
		return nil, err
	}
	return &SectionIterator{tok: b.tok, ref: native.CopySectionIterator(b.ref)}, nil
}

// IsAtEnd reports whether the cursor has passed the last section.
func (it *SectionIterator) IsAtEnd() (bool, error) {
	if err := ensureOwner(it.tok, "is_section_iterator_at_end"); err != nil {
		return false, err
	}
	return native.IsSectionIteratorAtEnd(it.ref), nil
}

// Next advances the cursor. A no-op past the end.
func (it *SectionIterator) Next() error {
	if err := ensureOwner(it.tok, "move_to_next_section"); err != nil {
		return err
	}
	if !native.IsSectionIteratorAtEnd(it.ref) {
		native.MoveToNextSection(it.ref)
	}
	return nil
}

func (it *SectionIterator) guard(api string) error {
	if err := ensureOwner(it.tok, api); err != nil {
		return err
	}
	return notAtEnd(api, native.IsSectionIteratorAtEnd(it.ref))
}

// Name returns the current section's name bytes.
func (it *SectionIterator) Name() ([]byte, error) {
	if err := it.guard("get_section_name"); err != nil {
		return nil, err
	}
	return native.GetSectionName(it.ref), nil
}

// Address returns the current section's address.
func (it *SectionIterator) Address() (uint64, error) {
	if err := it.guard("get_section_address"); err != nil {
		return 0, err
	}
	return native.GetSectionAddress(it.ref), nil
}

// Size returns the current section's size.
func (it *SectionIterator) Size() (uint64, error) {
	if err := it.guard("get_section_size"); err != nil {
		return 0, err
	}
	return native.GetSectionSize(it.ref), nil
}

// Contents returns the current section's bytes.
func (it *SectionIterator) Contents() ([]byte, error) {
	if err := it.guard("get_section_contents"); err != nil {
		return nil, err
	}
	return native.GetSectionContents(it.ref), nil
}

// ContainsSymbol reports whether the symbol under sym lives in the current
// section. Both cursors must be not at end.
func (it *SectionIterator) ContainsSymbol(sym *SymbolIterator) (bool, error) {
	const api = "section_contains_symbol"
	if err := it.guard(api); err != nil {
		return false, err
	}
	if err := ensureOwner(sym.tok, api); err != nil {
		return false, err
	}
	if err := notAtEnd(api, native.IsSymbolIteratorAtEnd(sym.ref)); err != nil {
		return false, err
	}
	return native.SectionContainsSymbol(it.ref, sym.ref), nil
}

// MoveToContainingSection repositions this cursor at the section holding
// the symbol under sym.
func (it *SectionIterator) MoveToContainingSection(sym *SymbolIterator) error {
	const api = "move_to_containing_section"
	if err := ensureOwner(it.tok, api); err != nil {
		return err
	}
	if err := ensureOwner(sym.tok, api); err != nil {
		return err
	}
	if err := notAtEnd(api, native.IsSymbolIteratorAtEnd(sym.ref)); err != nil {
		return err
	}
	native.MoveToContainingSection(it.ref, sym.ref)
	return nil
}

// Relocations mints a relocation cursor over the current section.
func (it *SectionIterator) Relocations() (*RelocationIterator, error) {
	if err := it.guard("get_relocations"); err != nil {
		return nil, err
	}
	return &RelocationIterator{tok: it.tok, ref: native.GetRelocations(it.ref)}, nil
}

// SymbolIterator is a forward-only cursor over a binary's symbols.
type SymbolIterator struct {
	tok *token
	ref native.SymbolIteratorRef
}

// Symbols mints a symbol cursor positioned at the first symbol.
func (b *Binary) Symbols() (*SymbolIterator, error) {
	if err := ensureOwner(b.tok, "copy_symbol_iterator"); err != nil {
		return nil, err
	}
	return &SymbolIterator{tok: b.tok, ref: native.CopySymbolIterator(b.ref)}, nil
}

// IsAtEnd reports whether the cursor has passed the last symbol.
func (it *SymbolIterator) IsAtEnd() (bool, error) {
	if err := ensureOwner(it.tok, "is_symbol_iterator_at_end"); err != nil {
		return false, err
	}
	return native.IsSymbolIteratorAtEnd(it.ref), nil
}

// Next advances the cursor. A no-op past the end.
func (it *SymbolIterator) Next() error {
	if err := ensureOwner(it.tok, "move_to_next_symbol"); err != nil {
		return err
	}
	if !native.IsSymbolIteratorAtEnd(it.ref) {
		native.MoveToNextSymbol(it.ref)
	}
	return nil
}

func (it *SymbolIterator) guard(api string) error {
	if err := ensureOwner(it.tok, api); err != nil {
		return err
	}
	return notAtEnd(api, native.IsSymbolIteratorAtEnd(it.ref))
}

// Name returns the current symbol's name bytes.
func (it *SymbolIterator) Name() ([]byte, error) {
	if err := it.guard("get_symbol_name"); err != nil {
		return nil, err
	}
	return native.GetSymbolName(it.ref), nil
}

// Address returns the current symbol's address.
func (it *SymbolIterator) Address() (uint64, error) {
	if err := it.guard("get_symbol_address"); err != nil {
		return 0, err
	}
	return native.GetSymbolAddress(it.ref), nil
}

// Size returns the current symbol's size.
func (it *SymbolIterator) Size() (uint64, error) {
	if err := it.guard("get_symbol_size"); err != nil {
		return 0, err
	}
	return native.GetSymbolSize(it.ref), nil
}

// RelocationIterator is a forward-only cursor over a section's
// relocations.
type RelocationIterator struct {
	tok *token
	ref native.RelocationIteratorRef
}

// IsAtEnd reports whether the cursor has passed the last relocation.
func (it *RelocationIterator) IsAtEnd() (bool, error) {
	if err := ensureOwner(it.tok, "is_relocation_iterator_at_end"); err != nil {
		return false, err
	}
	return native.IsRelocationIteratorAtEnd(it.ref), nil
}

// Next advances the cursor. A no-op past the end.
func (it *RelocationIterator) Next() error {
	if err := ensureOwner(it.tok, "move_to_next_relocation"); err != nil {
		return err
	}
	if !native.IsRelocationIteratorAtEnd(it.ref) {
		native.MoveToNextRelocation(it.ref)
	}
	return nil
}

func (it *RelocationIterator) guard(api string) error {
	if err := ensureOwner(it.tok, api); err != nil {
		return err
	}
	return notAtEnd(api, native.IsRelocationIteratorAtEnd(it.ref))
}

// Offset returns the current relocation's offset.
func (it *RelocationIterator) Offset() (uint64, error) {
	if err := it.guard("get_relocation_offset"); err != nil {
		return 0, err
	}
	return native.GetRelocationOffset(it.ref), nil
}

// Type returns the current relocation's type.
func (it *RelocationIterator) Type() (int, error) {
	if err := it.guard("get_relocation_type"); err != nil {
		return 0, err
	}
	return native.GetRelocationType(it.ref), nil
}

// TypeName returns the current relocation's type name.
func (it *RelocationIterator) TypeName() ([]byte, error) {
	if err := it.guard("get_relocation_type_name"); err != nil {
		return nil, err
	}
	return native.GetRelocationTypeName(it.ref), nil
}

// ValueString returns the current relocation's value string.
func (it *RelocationIterator) ValueString() ([]byte, error) {
	if err := it.guard("get_relocation_value_string"); err != nil {
		return nil, err
	}
	return native.GetRelocationValueString(it.ref), nil
}

// Each helpers. All three visit the current element before advancing, so
// the first element is never skipped and the end state is never exposed to
// the callback.

// EachSection visits every section in order.
func (b *Binary) EachSection(fn func(*SectionIterator) error) error {
	it, err := b.Sections()
	if err != nil {
		return err
	}
	for {
		atEnd, err := it.IsAtEnd()
		if err != nil {
			return err
		}
		if atEnd {
			return nil
		}
		if err := fn(it); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
}

// EachSymbol visits every symbol in order.
func (b *Binary) EachSymbol(fn func(*SymbolIterator) error) error {
	it, err := b.Symbols()
	if err != nil {
		return err
	}
	for {
		atEnd, err := it.IsAtEnd()
		if err != nil {
			return err
		}
		if atEnd {
			return nil
		}
		if err := fn(it); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
}

// EachRelocation visits every relocation of the current section in order.
func (it *SectionIterator) EachRelocation(fn func(*RelocationIterator) error) error {
	rel, err := it.Relocations()
	if err != nil {
		return err
	}
	for {
		atEnd, err := rel.IsAtEnd()
		if err != nil {
			return err
		}
		if atEnd {
			return nil
		}
		if err := fn(rel); err != nil {
			return err
		}
		if err := rel.Next(); err != nil {
			return err
		}
	}
}
