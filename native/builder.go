package native

type rawBuilder struct {
	ctx   *rawContext
	block *rawBlock
	pos   int // insertion index; len(block.instrs) means end
}

// CreateBuilderInContext allocates an unpositioned builder.
func CreateBuilderInContext(c ContextRef) BuilderRef {
	return &rawBuilder{ctx: c}
}

// DisposeBuilder frees the builder. One-shot.
func DisposeBuilder(b BuilderRef) {
	b.block = nil
}

// PositionBuilderAtEnd positions the builder at the end of a block.
func PositionBuilderAtEnd(b BuilderRef, bb BasicBlockRef) {
	b.block = bb
	b.pos = len(bb.instrs)
}

// PositionBuilderBefore positions the builder before an instruction.
func PositionBuilderBefore(b BuilderRef, inst ValueRef) {
	b.block = inst.parent
	b.pos = inst.parent.indexOf(inst)
}

// GetInsertBlock returns the block the builder points into, nil when
// unpositioned.
func GetInsertBlock(b BuilderRef) BasicBlockRef { return b.block }

func (b *rawBuilder) emit(op Opcode, ty *rawType, name []byte, operands ...*rawValue) *rawValue {
	inst := &rawValue{
		ctx:  b.ctx,
		kind: InstructionValueKind,
		typ:  ty,
		name: append([]byte(nil), name...),
		op:   op,
	}
	for _, opnd := range operands {
		inst.addOperand(opnd)
	}
	b.block.insertAt(b.pos, inst)
	b.pos++
	return inst
}

func (b *rawBuilder) voidTy() *rawType { return VoidTypeInContext(b.ctx) }

// Terminators.

// BuildRetVoid emits ret void.
func BuildRetVoid(b BuilderRef) ValueRef {
	return b.emit(Ret, b.voidTy(), nil)
}

// BuildRet emits ret with a value.
func BuildRet(b BuilderRef, v ValueRef) ValueRef {
	return b.emit(Ret, b.voidTy(), nil, v)
}

// BuildBr emits an unconditional branch.
func BuildBr(b BuilderRef, dest BasicBlockRef) ValueRef {
	return b.emit(Br, b.voidTy(), nil, dest.val)
}

// BuildCondBr emits a conditional branch.
func BuildCondBr(b BuilderRef, cond ValueRef, then, els BasicBlockRef) ValueRef {
	return b.emit(Br, b.voidTy(), nil, cond, then.val, els.val)
}

// BuildSwitch emits a switch with a default destination.
func BuildSwitch(b BuilderRef, v ValueRef, def BasicBlockRef, hint int) ValueRef {
	return b.emit(Switch, b.voidTy(), nil, v, def.val)
}

// AddCase appends a case to a switch. Unchecked.
func AddCase(sw ValueRef, onVal ValueRef, dest BasicBlockRef) {
	sw.addOperand(onVal)
	sw.addOperand(dest.val)
}

// BuildUnreachable emits unreachable.
func BuildUnreachable(b BuilderRef) ValueRef {
	return b.emit(Unreachable, b.voidTy(), nil)
}

// BuildResume emits resume.
func BuildResume(b BuilderRef, v ValueRef) ValueRef {
	return b.emit(Resume, b.voidTy(), nil, v)
}

// Binary operations.

func (b *rawBuilder) binop(op Opcode, lhs, rhs *rawValue, name []byte) *rawValue {
	return b.emit(op, lhs.typ, name, lhs, rhs)
}

// BuildAdd emits add.
func BuildAdd(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Add, lhs, rhs, name)
}

// BuildNSWAdd emits add nsw.
func BuildNSWAdd(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	v := b.binop(Add, lhs, rhs, name)
	v.flags.nsw = true
	return v
}

// BuildNUWAdd emits add nuw.
func BuildNUWAdd(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	v := b.binop(Add, lhs, rhs, name)
	v.flags.nuw = true
	return v
}

// BuildSub emits sub.
func BuildSub(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Sub, lhs, rhs, name)
}

// BuildMul emits mul.
func BuildMul(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Mul, lhs, rhs, name)
}

// BuildUDiv emits udiv.
func BuildUDiv(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(UDiv, lhs, rhs, name)
}

// BuildSDiv emits sdiv.
func BuildSDiv(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(SDiv, lhs, rhs, name)
}

// BuildExactSDiv emits sdiv exact.
func BuildExactSDiv(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	v := b.binop(SDiv, lhs, rhs, name)
	v.flags.exact = true
	return v
}

// BuildURem emits urem.
func BuildURem(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(URem, lhs, rhs, name)
}

// BuildSRem emits srem.
func BuildSRem(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(SRem, lhs, rhs, name)
}

// BuildFAdd emits fadd.
func BuildFAdd(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(FAdd, lhs, rhs, name)
}

// BuildFSub emits fsub.
func BuildFSub(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(FSub, lhs, rhs, name)
}

// BuildFMul emits fmul.
func BuildFMul(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(FMul, lhs, rhs, name)
}

// BuildFDiv emits fdiv.
func BuildFDiv(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(FDiv, lhs, rhs, name)
}

// BuildAnd emits and.
func BuildAnd(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(And, lhs, rhs, name)
}

// BuildOr emits or.
func BuildOr(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Or, lhs, rhs, name)
}

// BuildXor emits xor.
func BuildXor(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Xor, lhs, rhs, name)
}

// BuildShl emits shl.
func BuildShl(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(Shl, lhs, rhs, name)
}

// BuildLShr emits lshr.
func BuildLShr(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(LShr, lhs, rhs, name)
}

// BuildAShr emits ashr.
func BuildAShr(b BuilderRef, lhs, rhs ValueRef, name []byte) ValueRef {
	return b.binop(AShr, lhs, rhs, name)
}

// BuildNeg emits sub 0, v.
func BuildNeg(b BuilderRef, v ValueRef, name []byte) ValueRef {
	return b.binop(Sub, ConstInt(v.typ, 0, false), v, name)
}

// BuildFNeg emits fneg.
func BuildFNeg(b BuilderRef, v ValueRef, name []byte) ValueRef {
	return b.emit(FNeg, v.typ, name, v)
}

// BuildNot emits xor v, -1.
func BuildNot(b BuilderRef, v ValueRef, name []byte) ValueRef {
	return b.binop(Xor, v, ConstInt(v.typ, ^uint64(0), true), name)
}

// Comparisons.

// BuildICmp emits icmp.
func BuildICmp(b BuilderRef, pred IntPredicate, lhs, rhs ValueRef, name []byte) ValueRef {
	v := b.emit(ICmp, IntTypeInContext(b.ctx, 1), name, lhs, rhs)
	v.flags.ipred = pred
	return v
}

// BuildFCmp emits fcmp.
func BuildFCmp(b BuilderRef, pred RealPredicate, lhs, rhs ValueRef, name []byte) ValueRef {
	v := b.emit(FCmp, IntTypeInContext(b.ctx, 1), name, lhs, rhs)
	v.flags.rpred = pred
	return v
}

// Memory.

// BuildAlloca emits alloca.
func BuildAlloca(b BuilderRef, ty TypeRef, name []byte) ValueRef {
	v := b.emit(Alloca, PointerTypeInContext(b.ctx, 0), name)
	v.allocaTy = ty
	return v
}

// BuildLoad emits load.
func BuildLoad(b BuilderRef, ty TypeRef, ptr ValueRef, name []byte) ValueRef {
	return b.emit(Load, ty, name, ptr)
}

// BuildStore emits store.
func BuildStore(b BuilderRef, v, ptr ValueRef) ValueRef {
	return b.emit(Store, b.voidTy(), nil, v, ptr)
}

// BuildGEP emits getelementptr.
func BuildGEP(b BuilderRef, ty TypeRef, ptr ValueRef, indices []ValueRef, name []byte) ValueRef {
	ops := append([]ValueRef{ptr}, indices...)
	v := b.emit(GetElementPtr, PointerTypeInContext(b.ctx, 0), name, ops...)
	v.allocaTy = ty
	return v
}

// BuildInBoundsGEP emits getelementptr inbounds.
func BuildInBoundsGEP(b BuilderRef, ty TypeRef, ptr ValueRef, indices []ValueRef, name []byte) ValueRef {
	v := BuildGEP(b, ty, ptr, indices, name)
	v.flags.inBounds = true
	return v
}

// BuildGlobalString emits a private constant string global and returns it.
func BuildGlobalString(b BuilderRef, s []byte, name []byte) ValueRef {
	mod := b.block.fn.module
	init := ConstStringInContext(b.ctx, s, false)
	g := AddGlobal(mod, init.typ, name)
	SetInitializer(g, init)
	g.linkage = PrivateLinkage
	return g
}

// Casts.

func (b *rawBuilder) cast(op Opcode, v *rawValue, ty *rawType, name []byte) *rawValue {
	return b.emit(op, ty, name, v)
}

// BuildTrunc emits trunc.
func BuildTrunc(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(Trunc, v, ty, name)
}

// BuildZExt emits zext.
func BuildZExt(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(ZExt, v, ty, name)
}

// BuildSExt emits sext.
func BuildSExt(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(SExt, v, ty, name)
}

// BuildFPToUI emits fptoui.
func BuildFPToUI(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(FPToUI, v, ty, name)
}

// BuildFPToSI emits fptosi.
func BuildFPToSI(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(FPToSI, v, ty, name)
}

// BuildUIToFP emits uitofp.
func BuildUIToFP(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(UIToFP, v, ty, name)
}

// BuildSIToFP emits sitofp.
func BuildSIToFP(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(SIToFP, v, ty, name)
}

// BuildFPTrunc emits fptrunc.
func BuildFPTrunc(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(FPTrunc, v, ty, name)
}

// BuildFPExt emits fpext.
func BuildFPExt(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(FPExt, v, ty, name)
}

// BuildPtrToInt emits ptrtoint.
func BuildPtrToInt(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(PtrToInt, v, ty, name)
}

// BuildIntToPtr emits inttoptr.
func BuildIntToPtr(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(IntToPtr, v, ty, name)
}

// BuildBitCast emits bitcast.
func BuildBitCast(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(BitCast, v, ty, name)
}

// BuildAddrSpaceCast emits addrspacecast.
func BuildAddrSpaceCast(b BuilderRef, v ValueRef, ty TypeRef, name []byte) ValueRef {
	return b.cast(AddrSpaceCast, v, ty, name)
}

// BuildFreeze emits freeze.
func BuildFreeze(b BuilderRef, v ValueRef, name []byte) ValueRef {
	return b.emit(Freeze, v.typ, name, v)
}

// Aggregate and vector operations.

// BuildPhi emits an empty phi; populate it with AddIncoming.
func BuildPhi(b BuilderRef, ty TypeRef, name []byte) ValueRef {
	return b.emit(PHI, ty, name)
}

// BuildSelect emits select.
func BuildSelect(b BuilderRef, cond, then, els ValueRef, name []byte) ValueRef {
	return b.emit(Select, then.typ, name, cond, then, els)
}

// BuildExtractValue emits extractvalue.
func BuildExtractValue(b BuilderRef, agg ValueRef, index int, name []byte) ValueRef {
	ty := agg.typ
	if ty.kind == StructTypeKind && index < len(ty.fields) {
		ty = ty.fields[index]
	} else if ty.elem != nil {
		ty = ty.elem
	}
	v := b.emit(ExtractValue, ty, name, agg)
	v.mask = []int{index}
	return v
}

// BuildInsertValue emits insertvalue.
func BuildInsertValue(b BuilderRef, agg, elt ValueRef, index int, name []byte) ValueRef {
	v := b.emit(InsertValue, agg.typ, name, agg, elt)
	v.mask = []int{index}
	return v
}

// BuildExtractElement emits extractelement.
func BuildExtractElement(b BuilderRef, vec, idx ValueRef, name []byte) ValueRef {
	return b.emit(ExtractElement, vec.typ.elem, name, vec, idx)
}

// BuildInsertElement emits insertelement.
func BuildInsertElement(b BuilderRef, vec, elt, idx ValueRef, name []byte) ValueRef {
	return b.emit(InsertElement, vec.typ, name, vec, elt, idx)
}

// BuildShuffleVector emits shufflevector. The mask must be a constant
// vector of i32.
func BuildShuffleVector(b BuilderRef, v1, v2, mask ValueRef, name []byte) ValueRef {
	lanes := make([]int, 0, len(mask.operands))
	for _, m := range mask.operands {
		lanes = append(lanes, int(m.intVal))
	}
	out := b.emit(ShuffleVector, VectorType(v1.typ.elem, len(lanes)), name, v1, v2)
	out.mask = lanes
	return out
}

// Calls.

// BuildCallWithOperandBundles emits call.
func BuildCallWithOperandBundles(b BuilderRef, fnTy TypeRef, callee ValueRef, args []ValueRef, bundles []OperandBundleRef, name []byte) ValueRef {
	ops := append(append([]ValueRef(nil), args...), callee)
	v := b.emit(Call, fnTy.ret, name, ops...)
	v.fnType = fnTy
	v.numArgs = len(args)
	v.bundles = append([]*rawBundle(nil), bundles...)
	return v
}

// BuildCall emits call without bundles.
func BuildCall(b BuilderRef, fnTy TypeRef, callee ValueRef, args []ValueRef, name []byte) ValueRef {
	return BuildCallWithOperandBundles(b, fnTy, callee, args, nil, name)
}

// BuildInvokeWithOperandBundles emits invoke.
func BuildInvokeWithOperandBundles(b BuilderRef, fnTy TypeRef, callee ValueRef, args []ValueRef, then, catch BasicBlockRef, bundles []OperandBundleRef, name []byte) ValueRef {
	ops := append(append([]ValueRef(nil), args...), callee)
	v := b.emit(Invoke, fnTy.ret, name, ops...)
	v.fnType = fnTy
	v.numArgs = len(args)
	v.bundles = append([]*rawBundle(nil), bundles...)
	v.normalDest = then
	v.unwindDest = catch
	return v
}

// BuildInvoke emits invoke without bundles.
func BuildInvoke(b BuilderRef, fnTy TypeRef, callee ValueRef, args []ValueRef, then, catch BasicBlockRef, name []byte) ValueRef {
	return BuildInvokeWithOperandBundles(b, fnTy, callee, args, then, catch, nil, name)
}

// BuildCallBr emits callbr.
func BuildCallBr(b BuilderRef, fnTy TypeRef, callee ValueRef, def BasicBlockRef, indirect []BasicBlockRef, args []ValueRef, bundles []OperandBundleRef, name []byte) ValueRef {
	ops := append(append([]ValueRef(nil), args...), callee)
	v := b.emit(CallBr, fnTy.ret, name, ops...)
	v.fnType = fnTy
	v.numArgs = len(args)
	v.bundles = append([]*rawBundle(nil), bundles...)
	v.normalDest = def
	v.indirectDests = append([]*rawBlock(nil), indirect...)
	return v
}

// Exception handling.

// BuildLandingPad emits landingpad.
func BuildLandingPad(b BuilderRef, ty TypeRef, numClausesHint int, name []byte) ValueRef {
	return b.emit(LandingPad, ty, name)
}

// BuildCatchSwitch emits catchswitch.
func BuildCatchSwitch(b BuilderRef, parentPad ValueRef, unwind BasicBlockRef, numHandlersHint int, name []byte) ValueRef {
	v := b.emit(CatchSwitch, TokenTypeInContext(b.ctx), name)
	if parentPad != nil {
		v.addOperand(parentPad)
	}
	v.unwindDest = unwind
	return v
}

// BuildCatchPad emits catchpad.
func BuildCatchPad(b BuilderRef, parentPad ValueRef, args []ValueRef, name []byte) ValueRef {
	ops := append([]ValueRef{parentPad}, args...)
	return b.emit(CatchPad, TokenTypeInContext(b.ctx), name, ops...)
}

// BuildCleanupPad emits cleanuppad.
func BuildCleanupPad(b BuilderRef, parentPad ValueRef, args []ValueRef, name []byte) ValueRef {
	var ops []ValueRef
	if parentPad != nil {
		ops = append(ops, parentPad)
	}
	ops = append(ops, args...)
	return b.emit(CleanupPad, TokenTypeInContext(b.ctx), name, ops...)
}

// BuildCatchRet emits catchret.
func BuildCatchRet(b BuilderRef, catchPad ValueRef, bb BasicBlockRef) ValueRef {
	return b.emit(CatchRet, b.voidTy(), nil, catchPad, bb.val)
}

// BuildCleanupRet emits cleanupret.
func BuildCleanupRet(b BuilderRef, cleanupPad ValueRef, unwind BasicBlockRef) ValueRef {
	v := b.emit(CleanupRet, b.voidTy(), nil, cleanupPad)
	v.unwindDest = unwind
	return v
}

// Atomics.

// BuildAtomicRMW emits atomicrmw.
func BuildAtomicRMW(b BuilderRef, op AtomicRMWBinOp, ptr, val ValueRef, ordering AtomicOrdering, singleThread bool) ValueRef {
	v := b.emit(AtomicRMW, val.typ, nil, ptr, val)
	v.flags.rmwOp = op
	v.flags.ordering = ordering
	v.flags.singleThread = singleThread
	if singleThread {
		v.flags.syncScope = 0
	} else {
		v.flags.syncScope = 1
	}
	return v
}

// BuildAtomicCmpXchg emits cmpxchg.
func BuildAtomicCmpXchg(b BuilderRef, ptr, cmp, new ValueRef, success, failure AtomicOrdering, singleThread bool) ValueRef {
	resultTy := StructTypeInContext(b.ctx, []TypeRef{cmp.typ, IntTypeInContext(b.ctx, 1)}, false)
	v := b.emit(AtomicCmpXchg, resultTy, nil, ptr, cmp, new)
	v.flags.successOrdering = success
	v.flags.failureOrdering = failure
	v.flags.singleThread = singleThread
	if singleThread {
		v.flags.syncScope = 0
	} else {
		v.flags.syncScope = 1
	}
	return v
}

// BuildFence emits fence.
func BuildFence(b BuilderRef, ordering AtomicOrdering, singleThread bool, name []byte) ValueRef {
	v := b.emit(Fence, b.voidTy(), name)
	v.flags.ordering = ordering
	v.flags.singleThread = singleThread
	if singleThread {
		v.flags.syncScope = 0
	} else {
		v.flags.syncScope = 1
	}
	return v
}
