package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Structural mutation. Every precondition is checked against a snapshot of
// the native structure before anything is mutated, so a rejected call
// leaves the module byte-identical.

// validatePlacement checks a simulated instruction sequence in which the
// moved instruction sits at index vIdx.
func validatePlacement(api string, seq []native.ValueRef, vIdx int) error {
	firstNonPHI := len(seq)
	for i, in := range seq {
		if native.GetInstructionOpcode(in) != PHI {
			firstNonPHI = i
			break
		}
	}
	op := native.GetInstructionOpcode(seq[vIdx])
	if op == PHI && vIdx > firstNonPHI {
		return errors.Assertion(api, "cannot place a PHI instruction after a non-PHI instruction")
	}
	if op != PHI {
		for _, in := range seq[vIdx+1:] {
			if native.GetInstructionOpcode(in) == PHI {
				return errors.Assertion(api, "cannot place a non-PHI instruction before a PHI instruction")
			}
		}
	}
	if op.IsTerminator() && vIdx != len(seq)-1 {
		return errors.Assertion(api, "cannot move a terminator instruction into the interior of a block")
	}
	for i, in := range seq {
		if native.GetInstructionOpcode(in) == LandingPad && i != firstNonPHI {
			return errors.Assertion(api, "a LandingPad instruction must be the first non-PHI instruction in its block")
		}
	}
	return nil
}

func (v *Value) moveRelative(api string, pos *Value, after bool) error {
	if err := v.expectInstruction(api); err != nil {
		return err
	}
	if err := pos.expectInstruction(api); err != nil {
		return err
	}
	if native.GetValueContext(v.ref) != native.GetValueContext(pos.ref) {
		return errors.Assertion(api, "instructions belong to different contexts")
	}
	if v.ref == pos.ref {
		return errors.Assertion(api, "cannot move an instruction relative to itself")
	}
	if native.GetInstructionParent(v.ref) == nil {
		return errors.Assertion(api, "instruction is not attached to a block")
	}
	dest := native.GetInstructionParent(pos.ref)
	if dest == nil {
		return errors.Assertion(api, "position instruction is not attached to a block")
	}

	// Simulate the destination sequence after the move.
	var seq []native.ValueRef
	for _, in := range native.GetInstructions(dest) {
		if in != v.ref {
			seq = append(seq, in)
		}
	}
	insertAt := len(seq)
	for i, in := range seq {
		if in == pos.ref {
			insertAt = i
			if after {
				insertAt = i + 1
			}
			break
		}
	}
	seq = append(seq[:insertAt:insertAt], append([]native.ValueRef{v.ref}, seq[insertAt:]...)...)
	if err := validatePlacement(api, seq, insertAt); err != nil {
		return err
	}

	if after {
		native.InstructionMoveAfter(v.ref, pos.ref)
	} else {
		native.InstructionMoveBefore(v.ref, pos.ref)
	}
	return nil
}

// MoveBefore detaches the instruction and reinserts it before pos, which
// may live in another block of the same context.
func (v *Value) MoveBefore(pos *Value) error {
	return v.moveRelative("move_before", pos, false)
}

// MoveAfter detaches the instruction and reinserts it after pos.
func (v *Value) MoveAfter(pos *Value) error {
	return v.moveRelative("move_after", pos, true)
}

func (bb *BasicBlock) checkSplitPoint(api string, inst *Value) error {
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	if err := inst.expectInstruction(api); err != nil {
		return err
	}
	if native.GetValueContext(native.BasicBlockAsValue(bb.ref)) != native.GetValueContext(inst.ref) {
		return errors.Assertion(api, "block and instruction belong to different contexts")
	}
	if native.GetInstructionParent(inst.ref) != bb.ref {
		return errors.Assertion(api, "instruction not found in block")
	}
	if native.GetInstructionOpcode(inst.ref) == PHI {
		return errors.Assertion(api, "cannot split at a PHI instruction")
	}
	return nil
}

// Split moves inst and everything after it into a fresh successor block
// and terminates this block with a branch to it. All-or-nothing: a
// rejected split leaves the block untouched.
func (bb *BasicBlock) Split(inst *Value, name string) (*BasicBlock, error) {
	if err := bb.checkSplitPoint("split_basic_block", inst); err != nil {
		return nil, err
	}
	return wrapBlock(bb.tok, native.SplitBasicBlock(bb.ref, inst.ref, []byte(name))), nil
}

// SplitBefore moves everything before inst into a fresh predecessor block
// and rewires every edge that targeted this block, including phi incoming
// blocks, to the new predecessor.
func (bb *BasicBlock) SplitBefore(inst *Value, name string) (*BasicBlock, error) {
	if err := bb.checkSplitPoint("split_basic_block_before", inst); err != nil {
		return nil, err
	}
	return wrapBlock(bb.tok, native.SplitBasicBlockBefore(bb.ref, inst.ref, []byte(name))), nil
}
