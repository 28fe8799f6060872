package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Instruction operations. Each accessor names the opcode class it expects;
// flag reads that the native library leaves unchecked are rejected here
// before they can return garbage.

func (v *Value) expectInstruction(api string) error {
	return v.expectKind(api, "an instruction", InstructionValueKind)
}

// Opcode returns the instruction's opcode.
func (v *Value) Opcode() (Opcode, error) {
	if err := v.expectInstruction("instruction_opcode"); err != nil {
		return 0, err
	}
	return native.GetInstructionOpcode(v.ref), nil
}

// OpcodeName returns the instruction's mnemonic.
func (v *Value) OpcodeName() (string, error) {
	if err := v.expectInstruction("instruction_opcode_name"); err != nil {
		return "", err
	}
	return native.GetInstructionOpcode(v.ref).String(), nil
}

// InstructionParent returns the owning block, nil when detached.
func (v *Value) InstructionParent() (*BasicBlock, error) {
	if err := v.expectInstruction("instruction_parent"); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetInstructionParent(v.ref)), nil
}

// NextInstruction returns the instruction after this one, nil at the end.
func (v *Value) NextInstruction() (*Value, error) {
	if err := v.expectInstruction("next_instruction"); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextInstruction(v.ref)), nil
}

// PreviousInstruction returns the instruction before this one, nil at the
// start.
func (v *Value) PreviousInstruction() (*Value, error) {
	if err := v.expectInstruction("previous_instruction"); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousInstruction(v.ref)), nil
}

// EraseFromParent detaches and destroys the instruction.
func (v *Value) EraseFromParent() error {
	const api = "erase_from_parent"
	if err := v.expectInstruction(api); err != nil {
		return err
	}
	if native.GetInstructionParent(v.ref) == nil {
		return errors.Assertion(api, "instruction is not attached to a block")
	}
	native.InstructionEraseFromParent(v.ref)
	return nil
}

// RemoveFromParent detaches the instruction, keeping it alive for
// reinsertion.
func (v *Value) RemoveFromParent() error {
	const api = "remove_from_parent"
	if err := v.expectInstruction(api); err != nil {
		return err
	}
	if native.GetInstructionParent(v.ref) == nil {
		return errors.Assertion(api, "instruction is not attached to a block")
	}
	native.InstructionRemoveFromParent(v.ref)
	return nil
}

// DeleteInstruction destroys a detached instruction.
func (v *Value) DeleteInstruction() error {
	const api = "delete_instruction"
	if err := v.expectInstruction(api); err != nil {
		return err
	}
	if native.GetInstructionParent(v.ref) != nil {
		return errors.Assertion(api, "instruction is still attached to a block")
	}
	native.DeleteInstruction(v.ref)
	return nil
}

// Overflow flags.

// NSW reads the no-signed-wrap flag of add/sub/mul/shl.
func (v *Value) NSW() (bool, error) {
	if err := v.expectOpcode("get_nsw", "an add, sub, mul or shl instruction", isOverflowingBinOp); err != nil {
		return false, err
	}
	return native.GetNSW(v.ref), nil
}

// SetNSW writes the no-signed-wrap flag of add/sub/mul/shl.
func (v *Value) SetNSW(b bool) error {
	if err := v.expectOpcode("set_nsw", "an add, sub, mul or shl instruction", isOverflowingBinOp); err != nil {
		return err
	}
	native.SetNSW(v.ref, b)
	return nil
}

// NUW reads the no-unsigned-wrap flag of add/sub/mul/shl.
func (v *Value) NUW() (bool, error) {
	if err := v.expectOpcode("get_nuw", "an add, sub, mul or shl instruction", isOverflowingBinOp); err != nil {
		return false, err
	}
	return native.GetNUW(v.ref), nil
}

// SetNUW writes the no-unsigned-wrap flag of add/sub/mul/shl.
func (v *Value) SetNUW(b bool) error {
	if err := v.expectOpcode("set_nuw", "an add, sub, mul or shl instruction", isOverflowingBinOp); err != nil {
		return err
	}
	native.SetNUW(v.ref, b)
	return nil
}

// Exact reads the exact flag of udiv/sdiv/lshr/ashr.
func (v *Value) Exact() (bool, error) {
	if err := v.expectOpcode("get_exact", "a udiv, sdiv, lshr or ashr instruction", isExactBinOp); err != nil {
		return false, err
	}
	return native.GetExact(v.ref), nil
}

// SetExact writes the exact flag of udiv/sdiv/lshr/ashr.
func (v *Value) SetExact(b bool) error {
	if err := v.expectOpcode("set_exact", "a udiv, sdiv, lshr or ashr instruction", isExactBinOp); err != nil {
		return err
	}
	native.SetExact(v.ref, b)
	return nil
}

// NNeg reads the non-negative flag of zext.
func (v *Value) NNeg() (bool, error) {
	if err := v.expectOpcode("get_nneg", "a zext instruction", is(ZExt)); err != nil {
		return false, err
	}
	return native.GetNNeg(v.ref), nil
}

// SetNNeg writes the non-negative flag of zext.
func (v *Value) SetNNeg(b bool) error {
	if err := v.expectOpcode("set_nneg", "a zext instruction", is(ZExt)); err != nil {
		return err
	}
	native.SetNNeg(v.ref, b)
	return nil
}

// IsDisjoint reads the disjoint flag of or.
func (v *Value) IsDisjoint() (bool, error) {
	if err := v.expectOpcode("get_is_disjoint", "an or instruction", is(Or)); err != nil {
		return false, err
	}
	return native.GetIsDisjoint(v.ref), nil
}

// SetIsDisjoint writes the disjoint flag of or.
func (v *Value) SetIsDisjoint(b bool) error {
	if err := v.expectOpcode("set_is_disjoint", "an or instruction", is(Or)); err != nil {
		return err
	}
	native.SetIsDisjoint(v.ref, b)
	return nil
}

// Comparisons.

// ICmpPredicate returns the integer predicate of an icmp.
func (v *Value) ICmpPredicate() (IntPredicate, error) {
	if err := v.expectOpcode("icmp_predicate", "an icmp instruction", is(ICmp)); err != nil {
		return 0, err
	}
	return native.GetICmpPredicate(v.ref), nil
}

// ICmpSameSign reads the same-sign flag of an icmp.
func (v *Value) ICmpSameSign() (bool, error) {
	if err := v.expectOpcode("icmp_same_sign", "an icmp instruction", is(ICmp)); err != nil {
		return false, err
	}
	return native.GetICmpSameSign(v.ref), nil
}

// SetICmpSameSign writes the same-sign flag of an icmp.
func (v *Value) SetICmpSameSign(b bool) error {
	if err := v.expectOpcode("set_icmp_same_sign", "an icmp instruction", is(ICmp)); err != nil {
		return err
	}
	native.SetICmpSameSign(v.ref, b)
	return nil
}

// FCmpPredicate returns the real predicate of an fcmp.
func (v *Value) FCmpPredicate() (RealPredicate, error) {
	if err := v.expectOpcode("fcmp_predicate", "an fcmp instruction", is(FCmp)); err != nil {
		return 0, err
	}
	return native.GetFCmpPredicate(v.ref), nil
}

// Atomics.

func isOrderedMemOp(op Opcode) bool {
	return isAtomicMemOp(op)
}

func isSyncScoped(op Opcode) bool {
	return isAtomicMemOp(op) || op == AtomicCmpXchg
}

// Ordering reads the atomic ordering of load/store/atomicrmw/fence.
func (v *Value) Ordering() (AtomicOrdering, error) {
	if err := v.expectOpcode("get_ordering", "a load, store, atomicrmw or fence instruction", isOrderedMemOp); err != nil {
		return 0, err
	}
	return native.GetOrdering(v.ref), nil
}

// SetOrdering writes the atomic ordering of load/store/atomicrmw/fence.
func (v *Value) SetOrdering(o AtomicOrdering) error {
	if err := v.expectOpcode("set_ordering", "a load, store, atomicrmw or fence instruction", isOrderedMemOp); err != nil {
		return err
	}
	native.SetOrdering(v.ref, o)
	return nil
}

// IsAtomic reports whether the instruction carries an atomic ordering.
func (v *Value) IsAtomic() (bool, error) {
	if err := v.expectInstruction("is_atomic"); err != nil {
		return false, err
	}
	return native.IsAtomic(v.ref), nil
}

// AtomicSyncScopeID reads the synchronization scope id.
func (v *Value) AtomicSyncScopeID() (int, error) {
	if err := v.expectOpcode("atomic_sync_scope_id", "an atomic instruction", isSyncScoped); err != nil {
		return 0, err
	}
	return native.GetAtomicSyncScopeID(v.ref), nil
}

// SetAtomicSyncScopeID writes the synchronization scope id.
func (v *Value) SetAtomicSyncScopeID(id int) error {
	if err := v.expectOpcode("set_atomic_sync_scope_id", "an atomic instruction", isSyncScoped); err != nil {
		return err
	}
	native.SetAtomicSyncScopeID(v.ref, id)
	return nil
}

// AtomicRMWBinOp returns the operation of an atomicrmw.
func (v *Value) AtomicRMWBinOp() (AtomicRMWBinOp, error) {
	if err := v.expectOpcode("atomic_rmw_bin_op", "an atomicrmw instruction", is(AtomicRMW)); err != nil {
		return 0, err
	}
	return native.GetAtomicRMWBinOp(v.ref), nil
}

// CmpXchgSuccessOrdering reads the cmpxchg success ordering.
func (v *Value) CmpXchgSuccessOrdering() (AtomicOrdering, error) {
	if err := v.expectOpcode("cmpxchg_success_ordering", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return 0, err
	}
	return native.GetCmpXchgSuccessOrdering(v.ref), nil
}

// SetCmpXchgSuccessOrdering writes the cmpxchg success ordering.
func (v *Value) SetCmpXchgSuccessOrdering(o AtomicOrdering) error {
	if err := v.expectOpcode("set_cmpxchg_success_ordering", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return err
	}
	native.SetCmpXchgSuccessOrdering(v.ref, o)
	return nil
}

// CmpXchgFailureOrdering reads the cmpxchg failure ordering.
func (v *Value) CmpXchgFailureOrdering() (AtomicOrdering, error) {
	if err := v.expectOpcode("cmpxchg_failure_ordering", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return 0, err
	}
	return native.GetCmpXchgFailureOrdering(v.ref), nil
}

// SetCmpXchgFailureOrdering writes the cmpxchg failure ordering.
func (v *Value) SetCmpXchgFailureOrdering(o AtomicOrdering) error {
	if err := v.expectOpcode("set_cmpxchg_failure_ordering", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return err
	}
	native.SetCmpXchgFailureOrdering(v.ref, o)
	return nil
}

// Weak reads the cmpxchg weak flag.
func (v *Value) Weak() (bool, error) {
	if err := v.expectOpcode("get_weak", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return false, err
	}
	return native.GetWeak(v.ref), nil
}

// SetWeak writes the cmpxchg weak flag.
func (v *Value) SetWeak(b bool) error {
	if err := v.expectOpcode("set_weak", "a cmpxchg instruction", is(AtomicCmpXchg)); err != nil {
		return err
	}
	native.SetWeak(v.ref, b)
	return nil
}

// TailCall reads the tail-call kind of a call.
func (v *Value) TailCall() (TailCallKind, error) {
	if err := v.expectOpcode("get_tail_call_kind", "a call instruction", is(Call)); err != nil {
		return 0, err
	}
	return native.GetTailCallKind(v.ref), nil
}

// SetTailCall writes the tail-call kind of a call.
func (v *Value) SetTailCall(k TailCallKind) error {
	if err := v.expectOpcode("set_tail_call_kind", "a call instruction", is(Call)); err != nil {
		return err
	}
	native.SetTailCallKind(v.ref, k)
	return nil
}

// Memory instructions.

// AllocatedType returns an alloca's element type.
func (v *Value) AllocatedType() (*Type, error) {
	if err := v.expectOpcode("allocated_type", "an alloca instruction", is(Alloca)); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.GetAllocatedType(v.ref)), nil
}

// GEPSourceElementType returns a getelementptr's source element type.
func (v *Value) GEPSourceElementType() (*Type, error) {
	if err := v.expectOpcode("gep_source_element_type", "a getelementptr instruction", is(GetElementPtr)); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.GetGEPSourceElementType(v.ref)), nil
}

// GEPNumIndices returns a getelementptr's index count.
func (v *Value) GEPNumIndices() (int, error) {
	if err := v.expectOpcode("gep_num_indices", "a getelementptr instruction", is(GetElementPtr)); err != nil {
		return 0, err
	}
	return native.GetNumIndices(v.ref), nil
}

// IsInBounds reads the getelementptr inbounds flag.
func (v *Value) IsInBounds() (bool, error) {
	if err := v.expectOpcode("get_is_in_bounds", "a getelementptr instruction", is(GetElementPtr)); err != nil {
		return false, err
	}
	return native.GetIsInBounds(v.ref), nil
}

// SetIsInBounds writes the getelementptr inbounds flag.
func (v *Value) SetIsInBounds(b bool) error {
	if err := v.expectOpcode("set_is_in_bounds", "a getelementptr instruction", is(GetElementPtr)); err != nil {
		return err
	}
	native.SetIsInBounds(v.ref, b)
	return nil
}

// Terminators.

func isTerminatorOp(op Opcode) bool { return op.IsTerminator() }

// NumSuccessors returns a terminator's successor count.
func (v *Value) NumSuccessors() (int, error) {
	if err := v.expectOpcode("num_successors", "a terminator instruction", isTerminatorOp); err != nil {
		return 0, err
	}
	return native.GetNumSuccessors(v.ref), nil
}

// Successor returns successor i of a terminator.
func (v *Value) Successor(i int) (*BasicBlock, error) {
	const api = "get_successor"
	if err := v.expectOpcode(api, "a terminator instruction", isTerminatorOp); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_successors", native.GetNumSuccessors(v.ref)); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetSuccessor(v.ref, i)), nil
}

// SetSuccessor replaces successor i of a terminator.
func (v *Value) SetSuccessor(i int, bb *BasicBlock) error {
	const api = "set_successor"
	if err := v.expectOpcode(api, "a terminator instruction", isTerminatorOp); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	if err := checkIndex(api, i, "num_successors", native.GetNumSuccessors(v.ref)); err != nil {
		return err
	}
	native.SetSuccessor(v.ref, i, bb.ref)
	return nil
}

// IsConditional reports whether a br carries a condition.
func (v *Value) IsConditional() (bool, error) {
	if err := v.expectOpcode("is_conditional", "a br instruction", is(Br)); err != nil {
		return false, err
	}
	return native.IsConditional(v.ref), nil
}

// Condition returns the condition of a conditional br.
func (v *Value) Condition() (*Value, error) {
	const api = "get_condition"
	if err := v.expectOpcode(api, "a br instruction", is(Br)); err != nil {
		return nil, err
	}
	if !native.IsConditional(v.ref) {
		return nil, errors.Assertion(api, "br is unconditional")
	}
	return wrapValue(v.tok, native.GetCondition(v.ref)), nil
}

// SetCondition replaces the condition of a conditional br.
func (v *Value) SetCondition(cond *Value) error {
	const api = "set_condition"
	if err := v.expectOpcode(api, "a br instruction", is(Br)); err != nil {
		return err
	}
	if !native.IsConditional(v.ref) {
		return errors.Assertion(api, "br is unconditional")
	}
	if err := ensureHandle(cond.tok, api); err != nil {
		return err
	}
	native.SetCondition(v.ref, cond.ref)
	return nil
}

// NormalDest returns the invoke's normal destination.
func (v *Value) NormalDest() (*BasicBlock, error) {
	if err := v.expectOpcode("get_normal_dest", "an invoke instruction", is(Invoke)); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetNormalDest(v.ref)), nil
}

// SetNormalDest replaces the invoke's normal destination.
func (v *Value) SetNormalDest(bb *BasicBlock) error {
	const api = "set_normal_dest"
	if err := v.expectOpcode(api, "an invoke instruction", is(Invoke)); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	native.SetNormalDest(v.ref, bb.ref)
	return nil
}

func hasUnwindDest(op Opcode) bool {
	switch op {
	case Invoke, CleanupRet, CatchSwitch:
		return true
	}
	return false
}

// UnwindDest returns the unwind destination of invoke/cleanupret/
// catchswitch, nil when unwinding to caller.
func (v *Value) UnwindDest() (*BasicBlock, error) {
	if err := v.expectOpcode("get_unwind_dest", "an invoke, cleanupret or catchswitch instruction", hasUnwindDest); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetUnwindDest(v.ref)), nil
}

// SetUnwindDest replaces the unwind destination.
func (v *Value) SetUnwindDest(bb *BasicBlock) error {
	const api = "set_unwind_dest"
	if err := v.expectOpcode(api, "an invoke, cleanupret or catchswitch instruction", hasUnwindDest); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	native.SetUnwindDest(v.ref, bb.ref)
	return nil
}

// CallBrDefaultDest returns the callbr fallthrough block.
func (v *Value) CallBrDefaultDest() (*BasicBlock, error) {
	if err := v.expectOpcode("callbr_default_dest", "a callbr instruction", is(CallBr)); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetCallBrDefaultDest(v.ref)), nil
}

// CallBrNumIndirectDests returns the callbr indirect destination count.
func (v *Value) CallBrNumIndirectDests() (int, error) {
	if err := v.expectOpcode("callbr_num_indirect_dests", "a callbr instruction", is(CallBr)); err != nil {
		return 0, err
	}
	return native.GetCallBrNumIndirectDests(v.ref), nil
}

// CallBrIndirectDest returns callbr indirect destination i.
func (v *Value) CallBrIndirectDest(i int) (*BasicBlock, error) {
	const api = "callbr_indirect_dest"
	if err := v.expectOpcode(api, "a callbr instruction", is(CallBr)); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_indirect_dests", native.GetCallBrNumIndirectDests(v.ref)); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetCallBrIndirectDest(v.ref, i)), nil
}

// AddCase appends a case to a switch.
func (v *Value) AddCase(onVal *Value, dest *BasicBlock) error {
	const api = "add_case"
	if err := v.expectOpcode(api, "a switch instruction", is(Switch)); err != nil {
		return err
	}
	if err := onVal.expectKind(api, "an integer constant", ConstantIntValueKind); err != nil {
		return err
	}
	if err := ensureHandle(dest.tok, api); err != nil {
		return err
	}
	native.AddCase(v.ref, onVal.ref, dest.ref)
	return nil
}

// PHI nodes.

// AddIncoming appends incoming value/block pairs to a phi.
func (v *Value) AddIncoming(vals []*Value, blocks []*BasicBlock) error {
	const api = "add_incoming"
	if err := v.expectOpcode(api, "a phi instruction", is(PHI)); err != nil {
		return err
	}
	if len(vals) != len(blocks) {
		return errors.Assertion(api, "mismatched counts: %d values, %d blocks", len(vals), len(blocks))
	}
	valRefs, err := valueRefs(api, vals)
	if err != nil {
		return err
	}
	blockRefs := make([]native.BasicBlockRef, len(blocks))
	for i, bb := range blocks {
		if err := ensureHandle(bb.tok, api); err != nil {
			return err
		}
		blockRefs[i] = bb.ref
	}
	native.AddIncoming(v.ref, valRefs, blockRefs)
	return nil
}

// IncomingCount returns the phi's incoming pair count.
func (v *Value) IncomingCount() (int, error) {
	if err := v.expectOpcode("count_incoming", "a phi instruction", is(PHI)); err != nil {
		return 0, err
	}
	return native.CountIncoming(v.ref), nil
}

// IncomingValue returns incoming value i of a phi.
func (v *Value) IncomingValue(i int) (*Value, error) {
	const api = "incoming_value"
	if err := v.expectOpcode(api, "a phi instruction", is(PHI)); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_incoming", native.CountIncoming(v.ref)); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetIncomingValue(v.ref, i)), nil
}

// IncomingBlock returns incoming block i of a phi.
func (v *Value) IncomingBlock(i int) (*BasicBlock, error) {
	const api = "incoming_block"
	if err := v.expectOpcode(api, "a phi instruction", is(PHI)); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_incoming", native.CountIncoming(v.ref)); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetIncomingBlock(v.ref, i)), nil
}

// SetIncomingBlock replaces incoming block i of a phi.
func (v *Value) SetIncomingBlock(i int, bb *BasicBlock) error {
	const api = "set_incoming_block"
	if err := v.expectOpcode(api, "a phi instruction", is(PHI)); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	if err := checkIndex(api, i, "num_incoming", native.CountIncoming(v.ref)); err != nil {
		return err
	}
	native.SetIncomingBlock(v.ref, i, bb.ref)
	return nil
}

// Landing pads.

// AddClause appends a clause to a landingpad.
func (v *Value) AddClause(clause *Value) error {
	const api = "add_clause"
	if err := v.expectOpcode(api, "a landingpad instruction", is(LandingPad)); err != nil {
		return err
	}
	if err := ensureHandle(clause.tok, api); err != nil {
		return err
	}
	native.AddClause(v.ref, clause.ref)
	return nil
}

// NumClauses returns the landingpad's clause count.
func (v *Value) NumClauses() (int, error) {
	if err := v.expectOpcode("num_clauses", "a landingpad instruction", is(LandingPad)); err != nil {
		return 0, err
	}
	return native.GetNumClauses(v.ref), nil
}

// Clause returns clause i of a landingpad.
func (v *Value) Clause(i int) (*Value, error) {
	const api = "get_clause"
	if err := v.expectOpcode(api, "a landingpad instruction", is(LandingPad)); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_clauses", native.GetNumClauses(v.ref)); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetClause(v.ref, i)), nil
}

// IsCleanup reads the landingpad cleanup flag.
func (v *Value) IsCleanup() (bool, error) {
	if err := v.expectOpcode("is_cleanup", "a landingpad instruction", is(LandingPad)); err != nil {
		return false, err
	}
	return native.IsCleanup(v.ref), nil
}

// SetCleanup writes the landingpad cleanup flag.
func (v *Value) SetCleanup(b bool) error {
	if err := v.expectOpcode("set_cleanup", "a landingpad instruction", is(LandingPad)); err != nil {
		return err
	}
	native.SetCleanup(v.ref, b)
	return nil
}

// Catch switches.

// AddHandler appends a handler block to a catchswitch.
func (v *Value) AddHandler(bb *BasicBlock) error {
	const api = "add_handler"
	if err := v.expectOpcode(api, "a catchswitch instruction", is(CatchSwitch)); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	native.AddHandler(v.ref, bb.ref)
	return nil
}

// NumHandlers returns the catchswitch's handler count.
func (v *Value) NumHandlers() (int, error) {
	if err := v.expectOpcode("num_handlers", "a catchswitch instruction", is(CatchSwitch)); err != nil {
		return 0, err
	}
	return native.GetNumHandlers(v.ref), nil
}

// Handlers returns the catchswitch's handler blocks in order.
func (v *Value) Handlers() ([]*BasicBlock, error) {
	if err := v.expectOpcode("get_handlers", "a catchswitch instruction", is(CatchSwitch)); err != nil {
		return nil, err
	}
	refs := native.GetHandlers(v.ref)
	out := make([]*BasicBlock, len(refs))
	for i, r := range refs {
		out[i] = wrapBlock(v.tok, r)
	}
	return out, nil
}

// Shuffles.

// NumMaskElements returns the shufflevector mask length.
func (v *Value) NumMaskElements() (int, error) {
	if err := v.expectOpcode("num_mask_elements", "a shufflevector instruction", is(ShuffleVector)); err != nil {
		return 0, err
	}
	return native.GetNumMaskElements(v.ref), nil
}

// MaskValue returns mask element i of a shufflevector.
func (v *Value) MaskValue(i int) (int, error) {
	const api = "get_mask_value"
	if err := v.expectOpcode(api, "a shufflevector instruction", is(ShuffleVector)); err != nil {
		return 0, err
	}
	if err := checkIndex(api, i, "num_mask_elements", native.GetNumMaskElements(v.ref)); err != nil {
		return 0, err
	}
	return native.GetMaskValue(v.ref, i), nil
}

// Call sites. Arguments come first; the callee is the final operand.

// checkCallSiteAttrIndex validates a call-site attribute index against the
// argument count, with the same -1 function sentinel.
func (v *Value) checkCallSiteAttrIndex(api string, idx int) error {
	if idx < AttributeFunctionIndex {
		return errors.Assertion(api, "attribute index %d invalid (idx >= -1)", idx)
	}
	if n := native.GetNumArgOperands(v.ref); idx > n {
		return errors.OutOfRange(api, idx, "num_args", n)
	}
	return nil
}

// NumArgOperands returns a call site's argument count.
func (v *Value) NumArgOperands() (int, error) {
	if err := v.expectOpcode("num_arg_operands", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return 0, err
	}
	return native.GetNumArgOperands(v.ref), nil
}

// ArgOperand returns call-site argument i.
func (v *Value) ArgOperand(i int) (*Value, error) {
	const api = "get_arg_operand"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_args", native.GetNumArgOperands(v.ref)); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetArgOperand(v.ref, i)), nil
}

// CalledValue returns the call site's callee.
func (v *Value) CalledValue() (*Value, error) {
	if err := v.expectOpcode("called_value", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetCalledValue(v.ref)), nil
}

// CalledFunctionType returns the call site's callee signature.
func (v *Value) CalledFunctionType() (*Type, error) {
	if err := v.expectOpcode("called_function_type", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.GetCalledFunctionType(v.ref)), nil
}

// CallSiteCallConv returns a call site's calling convention id.
func (v *Value) CallSiteCallConv() (int, error) {
	if err := v.expectOpcode("call_site_call_conv", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return 0, err
	}
	return native.GetInstructionCallConv(v.ref), nil
}

// SetCallSiteCallConv sets a call site's calling convention id.
func (v *Value) SetCallSiteCallConv(cc int) error {
	if err := v.expectOpcode("set_call_site_call_conv", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return err
	}
	native.SetInstructionCallConv(v.ref, cc)
	return nil
}

// NumOperandBundles returns a call site's bundle count.
func (v *Value) NumOperandBundles() (int, error) {
	if err := v.expectOpcode("num_operand_bundles", "a call, invoke or callbr instruction", isCallSite); err != nil {
		return 0, err
	}
	return native.GetNumOperandBundles(v.ref), nil
}

// OperandBundleAt returns call-site bundle i.
func (v *Value) OperandBundleAt(i int) (*OperandBundle, error) {
	const api = "operand_bundle_at"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_bundles", native.GetNumOperandBundles(v.ref)); err != nil {
		return nil, err
	}
	return &OperandBundle{tok: v.tok, ref: native.GetOperandBundleAtIndex(v.ref, i)}, nil
}

// AddCallSiteAttribute attaches an attribute at a call-site index.
func (v *Value) AddCallSiteAttribute(idx int, a *Attribute) error {
	const api = "add_call_site_attribute"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return err
	}
	if err := v.checkCallSiteAttrIndex(api, idx); err != nil {
		return err
	}
	if err := ensureHandle(a.tok, api); err != nil {
		return err
	}
	native.AddCallSiteAttribute(v.ref, idx, a.ref)
	return nil
}

// CallSiteAttributeCount returns the attribute count at a call-site index.
func (v *Value) CallSiteAttributeCount(idx int) (int, error) {
	const api = "call_site_attribute_count"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return 0, err
	}
	if err := v.checkCallSiteAttrIndex(api, idx); err != nil {
		return 0, err
	}
	return native.GetCallSiteAttributeCount(v.ref, idx), nil
}

// CallSiteAttributes returns the attributes at a call-site index.
func (v *Value) CallSiteAttributes(idx int) ([]*Attribute, error) {
	const api = "call_site_attributes"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	if err := v.checkCallSiteAttrIndex(api, idx); err != nil {
		return nil, err
	}
	refs := native.GetCallSiteAttributes(v.ref, idx)
	out := make([]*Attribute, len(refs))
	for i, r := range refs {
		out[i] = &Attribute{tok: v.tok, ref: r}
	}
	return out, nil
}

// CallSiteEnumAttribute returns the enum attribute of a kind at a
// call-site index, nil when absent.
func (v *Value) CallSiteEnumAttribute(idx, kindID int) (*Attribute, error) {
	const api = "call_site_enum_attribute"
	if err := v.expectOpcode(api, "a call, invoke or callbr instruction", isCallSite); err != nil {
		return nil, err
	}
	if err := v.checkCallSiteAttrIndex(api, idx); err != nil {
		return nil, err
	}
	ref := native.GetCallSiteEnumAttribute(v.ref, idx, kindID)
	if ref == nil {
		return nil, nil
	}
	return &Attribute{tok: v.tok, ref: ref}, nil
}
