package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// BasicBlock wraps a native basic block reference.
type BasicBlock struct {
	tok *token
	ref native.BasicBlockRef
}

func wrapBlock(tok *token, ref native.BasicBlockRef) *BasicBlock {
	if ref == nil {
		return nil
	}
	return &BasicBlock{tok: tok, ref: ref}
}

// Equal reports handle identity: both wrappers name the same native block.
func (bb *BasicBlock) Equal(o *BasicBlock) bool {
	return o != nil && bb.ref == o.ref
}

// Name returns the block's name bytes.
func (bb *BasicBlock) Name() ([]byte, error) {
	if err := ensureHandle(bb.tok, "block_name"); err != nil {
		return nil, err
	}
	return native.GetBasicBlockName(bb.ref), nil
}

// Parent returns the owning function, nil when detached.
func (bb *BasicBlock) Parent() (*Value, error) {
	if err := ensureHandle(bb.tok, "block_parent"); err != nil {
		return nil, err
	}
	return wrapValue(bb.tok, native.GetBasicBlockParent(bb.ref)), nil
}

// AsValue returns the block's value identity.
func (bb *BasicBlock) AsValue() (*Value, error) {
	if err := ensureHandle(bb.tok, "block_as_value"); err != nil {
		return nil, err
	}
	return wrapValue(bb.tok, native.BasicBlockAsValue(bb.ref)), nil
}

// Terminator returns the block's terminator instruction, nil when the
// block does not end with one.
func (bb *BasicBlock) Terminator() (*Value, error) {
	if err := ensureHandle(bb.tok, "get_terminator"); err != nil {
		return nil, err
	}
	return wrapValue(bb.tok, native.GetBasicBlockTerminator(bb.ref)), nil
}

// FirstInstruction returns the first instruction, nil when empty.
func (bb *BasicBlock) FirstInstruction() (*Value, error) {
	if err := ensureHandle(bb.tok, "first_instruction"); err != nil {
		return nil, err
	}
	return wrapValue(bb.tok, native.GetFirstInstruction(bb.ref)), nil
}

// LastInstruction returns the last instruction, nil when empty.
func (bb *BasicBlock) LastInstruction() (*Value, error) {
	if err := ensureHandle(bb.tok, "last_instruction"); err != nil {
		return nil, err
	}
	return wrapValue(bb.tok, native.GetLastInstruction(bb.ref)), nil
}

// InstructionCount returns the instruction count.
func (bb *BasicBlock) InstructionCount() (int, error) {
	if err := ensureHandle(bb.tok, "count_instructions"); err != nil {
		return 0, err
	}
	return native.CountInstructions(bb.ref), nil
}

// Instructions returns the block's instructions in order.
func (bb *BasicBlock) Instructions() ([]*Value, error) {
	if err := ensureHandle(bb.tok, "get_instructions"); err != nil {
		return nil, err
	}
	refs := native.GetInstructions(bb.ref)
	out := make([]*Value, len(refs))
	for i, r := range refs {
		out[i] = wrapValue(bb.tok, r)
	}
	return out, nil
}

// NextBlock returns the block after this one in its function, nil at the
// end.
func (bb *BasicBlock) NextBlock() (*BasicBlock, error) {
	if err := ensureHandle(bb.tok, "next_block"); err != nil {
		return nil, err
	}
	return wrapBlock(bb.tok, native.GetNextBasicBlock(bb.ref)), nil
}

// PreviousBlock returns the block before this one in its function, nil at
// the start.
func (bb *BasicBlock) PreviousBlock() (*BasicBlock, error) {
	if err := ensureHandle(bb.tok, "previous_block"); err != nil {
		return nil, err
	}
	return wrapBlock(bb.tok, native.GetPreviousBasicBlock(bb.ref)), nil
}

// checkSameFunction rejects block pairs from different functions.
func (bb *BasicBlock) checkSameFunction(api string, pos *BasicBlock) error {
	if err := ensureHandle(pos.tok, api); err != nil {
		return err
	}
	if native.GetBasicBlockParent(bb.ref) != native.GetBasicBlockParent(pos.ref) {
		return errors.Assertion(api, "blocks belong to different functions")
	}
	return nil
}

// MoveBefore repositions the block before pos in their shared function.
func (bb *BasicBlock) MoveBefore(pos *BasicBlock) error {
	const api = "move_basic_block_before"
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	if err := bb.checkSameFunction(api, pos); err != nil {
		return err
	}
	native.MoveBasicBlockBefore(bb.ref, pos.ref)
	return nil
}

// MoveAfter repositions the block after pos in their shared function.
func (bb *BasicBlock) MoveAfter(pos *BasicBlock) error {
	const api = "move_basic_block_after"
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	if err := bb.checkSameFunction(api, pos); err != nil {
		return err
	}
	native.MoveBasicBlockAfter(bb.ref, pos.ref)
	return nil
}

// RemoveFromParent detaches the block without destroying it.
func (bb *BasicBlock) RemoveFromParent() error {
	if err := ensureHandle(bb.tok, "remove_basic_block_from_parent"); err != nil {
		return err
	}
	native.RemoveBasicBlockFromParent(bb.ref)
	return nil
}

// Delete detaches and destroys the block.
func (bb *BasicBlock) Delete() error {
	if err := ensureHandle(bb.tok, "delete_basic_block"); err != nil {
		return err
	}
	native.DeleteBasicBlock(bb.ref)
	return nil
}

// NewBuilder creates a builder positioned at the end of this block. The
// builder shares the block's token.
func (bb *BasicBlock) NewBuilder() (*Builder, error) {
	if err := ensureHandle(bb.tok, "new_builder"); err != nil {
		return nil, err
	}
	ctx := native.GetValueContext(native.BasicBlockAsValue(bb.ref))
	ref := native.CreateBuilderInContext(ctx)
	native.PositionBuilderAtEnd(ref, bb.ref)
	return &Builder{tok: bb.tok, ref: ref}, nil
}
