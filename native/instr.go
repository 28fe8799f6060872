package native

// GetInstructionOpcode returns the opcode. Unchecked.
func GetInstructionOpcode(v ValueRef) Opcode { return v.op }

// GetInstructionParent returns the owning block, nil when detached.
func GetInstructionParent(v ValueRef) BasicBlockRef { return v.parent }

// GetNextInstruction returns the instruction after v, nil at the end. Unchecked.
func GetNextInstruction(v ValueRef) ValueRef {
	if v.parent == nil {
		return nil
	}
	return next(v.parent.instrs, v)
}

// GetPreviousInstruction returns the instruction before v, nil at the start.
// Unchecked.
func GetPreviousInstruction(v ValueRef) ValueRef {
	if v.parent == nil {
		return nil
	}
	return prev(v.parent.instrs, v)
}

// InstructionEraseFromParent detaches and destroys the instruction.
func InstructionEraseFromParent(v ValueRef) {
	v.parent.removeInstr(v)
	for i, opnd := range v.operands {
		if opnd != nil {
			opnd.dropUse(v, i)
		}
	}
	v.operands = nil
}

// InstructionRemoveFromParent detaches the instruction, keeping it alive
// for reinsertion.
func InstructionRemoveFromParent(v ValueRef) {
	v.parent.removeInstr(v)
}

// DeleteInstruction destroys an already-detached instruction.
func DeleteInstruction(v ValueRef) {
	for i, opnd := range v.operands {
		if opnd != nil {
			opnd.dropUse(v, i)
		}
	}
	v.operands = nil
}

// InstructionMoveBefore detaches v and reinserts it before pos. Unchecked.
func InstructionMoveBefore(v, pos ValueRef) {
	v.parent.removeInstr(v)
	pos.parent.insertAt(pos.parent.indexOf(pos), v)
}

// InstructionMoveAfter detaches v and reinserts it after pos. Unchecked.
func InstructionMoveAfter(v, pos ValueRef) {
	v.parent.removeInstr(v)
	pos.parent.insertAt(pos.parent.indexOf(pos)+1, v)
}

// Flag accessors. All unchecked: reading a flag an opcode does not carry
// returns whatever happens to be in the slot.

// GetNSW reads the no-signed-wrap flag.
func GetNSW(v ValueRef) bool { return v.flags.nsw }

// SetNSW writes the no-signed-wrap flag.
func SetNSW(v ValueRef, b bool) { v.flags.nsw = b }

// GetNUW reads the no-unsigned-wrap flag.
func GetNUW(v ValueRef) bool { return v.flags.nuw }

// SetNUW writes the no-unsigned-wrap flag.
func SetNUW(v ValueRef, b bool) { v.flags.nuw = b }

// GetExact reads the exact flag.
func GetExact(v ValueRef) bool { return v.flags.exact }

// SetExact writes the exact flag.
func SetExact(v ValueRef, b bool) { v.flags.exact = b }

// GetNNeg reads the non-negative flag.
func GetNNeg(v ValueRef) bool { return v.flags.nneg }

// SetNNeg writes the non-negative flag.
func SetNNeg(v ValueRef, b bool) { v.flags.nneg = b }

// GetIsDisjoint reads the disjoint flag.
func GetIsDisjoint(v ValueRef) bool { return v.flags.disjoint }

// SetIsDisjoint writes the disjoint flag.
func SetIsDisjoint(v ValueRef, b bool) { v.flags.disjoint = b }

// GetICmpPredicate reads the integer predicate.
func GetICmpPredicate(v ValueRef) IntPredicate { return v.flags.ipred }

// GetICmpSameSign reads the same-sign flag.
func GetICmpSameSign(v ValueRef) bool { return v.flags.sameSign }

// SetICmpSameSign writes the same-sign flag.
func SetICmpSameSign(v ValueRef, b bool) { v.flags.sameSign = b }

// GetFCmpPredicate reads the real predicate.
func GetFCmpPredicate(v ValueRef) RealPredicate { return v.flags.rpred }

// GetOrdering reads the atomic ordering.
func GetOrdering(v ValueRef) AtomicOrdering { return v.flags.ordering }

// SetOrdering writes the atomic ordering.
func SetOrdering(v ValueRef, o AtomicOrdering) { v.flags.ordering = o }

// IsAtomic reports whether the instruction carries an ordering.
func IsAtomic(v ValueRef) bool {
	switch v.op {
	case AtomicRMW, AtomicCmpXchg, Fence:
		return true
	case Load, Store:
		return v.flags.ordering != OrderingNotAtomic
	}
	return false
}

// GetAtomicSyncScopeID reads the synchronization scope id.
func GetAtomicSyncScopeID(v ValueRef) int { return v.flags.syncScope }

// SetAtomicSyncScopeID writes the synchronization scope id.
func SetAtomicSyncScopeID(v ValueRef, id int) { v.flags.syncScope = id }

// GetAtomicRMWBinOp reads the atomicrmw operation.
func GetAtomicRMWBinOp(v ValueRef) AtomicRMWBinOp { return v.flags.rmwOp }

// GetCmpXchgSuccessOrdering reads the cmpxchg success ordering.
func GetCmpXchgSuccessOrdering(v ValueRef) AtomicOrdering { return v.flags.successOrdering }

// SetCmpXchgSuccessOrdering writes the cmpxchg success ordering.
func SetCmpXchgSuccessOrdering(v ValueRef, o AtomicOrdering) { v.flags.successOrdering = o }

// GetCmpXchgFailureOrdering reads the cmpxchg failure ordering.
func GetCmpXchgFailureOrdering(v ValueRef) AtomicOrdering { return v.flags.failureOrdering }

// SetCmpXchgFailureOrdering writes the cmpxchg failure ordering.
func SetCmpXchgFailureOrdering(v ValueRef, o AtomicOrdering) { v.flags.failureOrdering = o }

// GetWeak reads the cmpxchg weak flag.
func GetWeak(v ValueRef) bool { return v.flags.weak }

// SetWeak writes the cmpxchg weak flag.
func SetWeak(v ValueRef, b bool) { v.flags.weak = b }

// GetTailCallKind reads the tail-call kind.
func GetTailCallKind(v ValueRef) TailCallKind { return v.flags.tailKind }

// SetTailCallKind writes the tail-call kind.
func SetTailCallKind(v ValueRef, k TailCallKind) { v.flags.tailKind = k }

// GetAllocatedType reads an alloca's element type.
func GetAllocatedType(v ValueRef) TypeRef { return v.allocaTy }

// GetGEPSourceElementType reads a GEP's source element type.
func GetGEPSourceElementType(v ValueRef) TypeRef { return v.allocaTy }

// GetNumIndices returns the GEP index count.
func GetNumIndices(v ValueRef) int { return len(v.operands) - 1 }

// GetIsInBounds reads the GEP inbounds flag.
func GetIsInBounds(v ValueRef) bool { return v.flags.inBounds }

// SetIsInBounds writes the GEP inbounds flag.
func SetIsInBounds(v ValueRef, b bool) { v.flags.inBounds = b }

// Terminator accessors.

// GetNumSuccessors returns the successor count. Unchecked.
func GetNumSuccessors(v ValueRef) int { return len(v.successors()) }

// GetSuccessor returns successor i. Unchecked.
func GetSuccessor(v ValueRef, i int) BasicBlockRef { return v.successors()[i] }

// SetSuccessor replaces successor i. Unchecked.
func SetSuccessor(v ValueRef, i int, bb BasicBlockRef) {
	switch v.op {
	case Invoke:
		if i == 0 {
			v.normalDest = bb
		} else {
			v.unwindDest = bb
		}
	case CallBr:
		if i == 0 {
			v.normalDest = bb
		} else {
			v.indirectDests[i-1] = bb
		}
	case CatchSwitch:
		v.handlers[i] = bb
	default:
		// br/switch keep block destinations in the operand list.
		for j, opnd := range v.operands {
			if opnd != nil && opnd.kind == BasicBlockValueKind {
				if i == 0 {
					SetOperand(v, j, bb.val)
					return
				}
				i--
			}
		}
	}
}

func (v *rawValue) successors() []*rawBlock {
	switch v.op {
	case Invoke:
		return []*rawBlock{v.normalDest, v.unwindDest}
	case CallBr:
		return append([]*rawBlock{v.normalDest}, v.indirectDests...)
	case CatchSwitch:
		return append([]*rawBlock(nil), v.handlers...)
	}
	var out []*rawBlock
	for _, opnd := range v.operands {
		if opnd != nil && opnd.kind == BasicBlockValueKind {
			out = append(out, opnd.bb)
		}
	}
	return out
}

// IsConditional reports whether a br has a condition. Unchecked.
func IsConditional(v ValueRef) bool { return len(v.operands) == 3 }

// GetCondition returns the branch condition. Unchecked.
func GetCondition(v ValueRef) ValueRef { return v.operands[0] }

// SetCondition replaces the branch condition. Unchecked.
func SetCondition(v ValueRef, cond ValueRef) { SetOperand(v, 0, cond) }

// GetNormalDest returns the invoke/callbr normal destination. Unchecked.
func GetNormalDest(v ValueRef) BasicBlockRef { return v.normalDest }

// SetNormalDest replaces the normal destination. Unchecked.
func SetNormalDest(v ValueRef, bb BasicBlockRef) { v.normalDest = bb }

// GetUnwindDest returns the unwind destination. Unchecked.
func GetUnwindDest(v ValueRef) BasicBlockRef { return v.unwindDest }

// SetUnwindDest replaces the unwind destination. Unchecked.
func SetUnwindDest(v ValueRef, bb BasicBlockRef) { v.unwindDest = bb }

// GetCallBrDefaultDest returns the callbr fallthrough block. Unchecked.
func GetCallBrDefaultDest(v ValueRef) BasicBlockRef { return v.normalDest }

// GetCallBrNumIndirectDests returns the indirect destination count. Unchecked.
func GetCallBrNumIndirectDests(v ValueRef) int { return len(v.indirectDests) }

// GetCallBrIndirectDest returns indirect destination i. Unchecked.
func GetCallBrIndirectDest(v ValueRef, i int) BasicBlockRef { return v.indirectDests[i] }

// PHI accessors.

// AddIncoming appends incoming value/block pairs to a phi. Unchecked.
func AddIncoming(phi ValueRef, vals []ValueRef, blocks []BasicBlockRef) {
	for i := range vals {
		phi.addOperand(vals[i])
		phi.inBlocks = append(phi.inBlocks, blocks[i])
	}
}

// CountIncoming returns the incoming pair count. Unchecked.
func CountIncoming(phi ValueRef) int { return len(phi.inBlocks) }

// GetIncomingValue returns incoming value i. Unchecked.
func GetIncomingValue(phi ValueRef, i int) ValueRef { return phi.operands[i] }

// GetIncomingBlock returns incoming block i. Unchecked.
func GetIncomingBlock(phi ValueRef, i int) BasicBlockRef { return phi.inBlocks[i] }

// SetIncomingBlock replaces incoming block i. Unchecked.
func SetIncomingBlock(phi ValueRef, i int, bb BasicBlockRef) { phi.inBlocks[i] = bb }

// LandingPad accessors.

// AddClause appends a clause to a landingpad. Unchecked.
func AddClause(lp ValueRef, clause ValueRef) {
	lp.clauses = append(lp.clauses, clause)
}

// GetNumClauses returns the clause count. Unchecked.
func GetNumClauses(lp ValueRef) int { return len(lp.clauses) }

// GetClause returns clause i. Unchecked.
func GetClause(lp ValueRef, i int) ValueRef { return lp.clauses[i] }

// IsCleanup reads the landingpad cleanup flag. Unchecked.
func IsCleanup(lp ValueRef) bool { return lp.flags.cleanup }

// SetCleanup writes the landingpad cleanup flag. Unchecked.
func SetCleanup(lp ValueRef, b bool) { lp.flags.cleanup = b }

// CatchSwitch accessors.

// AddHandler appends a handler block to a catchswitch. Unchecked.
func AddHandler(cs ValueRef, bb BasicBlockRef) {
	cs.handlers = append(cs.handlers, bb)
}

// GetNumHandlers returns the handler count. Unchecked.
func GetNumHandlers(cs ValueRef) int { return len(cs.handlers) }

// GetHandlers returns the handler blocks. Unchecked.
func GetHandlers(cs ValueRef) []BasicBlockRef {
	return append([]BasicBlockRef(nil), cs.handlers...)
}

// ShuffleVector accessors.

// GetNumMaskElements returns the mask length. Unchecked.
func GetNumMaskElements(v ValueRef) int { return len(v.mask) }

// GetMaskValue returns mask element i. Unchecked.
func GetMaskValue(v ValueRef, i int) int { return v.mask[i] }

// Call-site accessors. Call-like instructions keep arguments first and the
// callee as the final operand.

// GetNumArgOperands returns the argument count. Unchecked.
func GetNumArgOperands(v ValueRef) int { return v.numArgs }

// GetArgOperand returns argument i. Unchecked.
func GetArgOperand(v ValueRef, i int) ValueRef { return v.operands[i] }

// GetCalledValue returns the callee. Unchecked.
func GetCalledValue(v ValueRef) ValueRef { return v.operands[len(v.operands)-1] }

// GetCalledFunctionType returns the callee signature. Unchecked.
func GetCalledFunctionType(v ValueRef) TypeRef { return v.fnType }

// GetInstructionCallConv reads a call site's calling convention. Unchecked.
func GetInstructionCallConv(v ValueRef) int { return v.flags.callConv }

// SetInstructionCallConv writes a call site's calling convention. Unchecked.
func SetInstructionCallConv(v ValueRef, cc int) { v.flags.callConv = cc }

// GetNumOperandBundles returns the bundle count. Unchecked.
func GetNumOperandBundles(v ValueRef) int { return len(v.bundles) }

// GetOperandBundleAtIndex returns bundle i. Unchecked.
func GetOperandBundleAtIndex(v ValueRef, i int) OperandBundleRef { return v.bundles[i] }

// Call-site attribute accessors share the function index convention.

// AddCallSiteAttribute attaches an attribute at a call-site index. Unchecked.
func AddCallSiteAttribute(v ValueRef, idx int, a AttributeRef) {
	if v.attrs == nil {
		v.attrs = make(map[int][]*rawAttribute)
	}
	v.attrs[idx] = append(v.attrs[idx], a)
}

// GetCallSiteAttributeCount returns the attribute count at a call-site
// index. Unchecked.
func GetCallSiteAttributeCount(v ValueRef, idx int) int { return len(v.attrs[idx]) }

// GetCallSiteAttributes returns the attributes at a call-site index. Unchecked.
func GetCallSiteAttributes(v ValueRef, idx int) []AttributeRef {
	return append([]AttributeRef(nil), v.attrs[idx]...)
}

// GetCallSiteEnumAttribute returns the enum attribute of a kind at a
// call-site index, nil when absent. Unchecked.
func GetCallSiteEnumAttribute(v ValueRef, idx, kindID int) AttributeRef {
	for _, a := range v.attrs[idx] {
		if !a.isString && a.kindID == kindID {
			return a
		}
	}
	return nil
}
