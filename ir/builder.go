package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Builder emits instructions at an insertion point. Values it mints carry
// the token of whatever owns the builder, so they die in the same cascade.
type Builder struct {
	tok  *token
	ref  native.BuilderRef
	node *lifetimeNode
	dead bool
}

// BuilderManager holds a Builder behind the Created -> Entered -> Disposed
// protocol.
type BuilderManager struct {
	m   manager
	ctx *Context
	b   *Builder
}

// NewBuilderManager creates an unentered builder manager bound to this
// context.
func (c *Context) NewBuilderManager() (*BuilderManager, error) {
	if err := ensureOwner(c.tok, "new_builder_manager"); err != nil {
		return nil, err
	}
	return &BuilderManager{m: newManager("Builder"), ctx: c}, nil
}

// Enter creates the builder. One-shot.
func (bm *BuilderManager) Enter() (*Builder, error) {
	if err := bm.m.enter("Builder.Enter"); err != nil {
		return nil, err
	}
	b, err := bm.ctx.NewBuilder()
	if err != nil {
		bm.m.state = managerDisposed
		return nil, err
	}
	bm.b = b
	bm.m.node = b.node
	return b, nil
}

// Exit disposes the builder.
func (bm *BuilderManager) Exit() error {
	if err := bm.m.exit("Builder.Exit"); err != nil {
		return err
	}
	if bm.b != nil {
		bm.b.dead = true
	}
	return nil
}

// Dispose releases an unentered manager. After Enter, use Exit.
func (bm *BuilderManager) Dispose() error {
	return bm.m.dispose("Builder.Dispose")
}

// With runs fn inside an Enter/Exit pair, exiting on every path. The
// callback error wins over the exit error.
func (bm *BuilderManager) With(fn func(*Builder) error) error {
	b, err := bm.Enter()
	if err != nil {
		return err
	}
	err = fn(b)
	if xerr := bm.Exit(); err == nil {
		err = xerr
	}
	return err
}

// NewBuilder creates an unpositioned builder owned by this context.
func (c *Context) NewBuilder() (*Builder, error) {
	if err := ensureOwner(c.tok, "create_builder"); err != nil {
		return nil, err
	}
	ref := native.CreateBuilderInContext(c.ref)
	b := &Builder{tok: c.tok, ref: ref}
	// The node carries no token: disposing a builder releases the native
	// builder only, never the owning context. Post-dispose access is gated
	// by the dead flag.
	b.node = newLifetimeNode(nil, func() { native.DisposeBuilder(ref) })
	c.node.adopt(b.node)
	return b, nil
}

// Dispose releases the builder. One-shot.
func (b *Builder) Dispose() error {
	if b.dead {
		return errors.Memory("dispose", "Builder has already been disposed")
	}
	if err := ensureOwner(b.tok, "dispose"); err != nil {
		return err
	}
	b.dead = true
	if b.node != nil {
		b.node.dispose()
	} else {
		native.DisposeBuilder(b.ref)
	}
	return nil
}

func (b *Builder) ensure(api string) error {
	if b.dead {
		return errors.Memory(api, "Builder has already been disposed")
	}
	return ensureOwner(b.tok, api)
}

// ready additionally requires an insertion point.
func (b *Builder) ready(api string) error {
	if err := b.ensure(api); err != nil {
		return err
	}
	if native.GetInsertBlock(b.ref) == nil {
		return errors.Assertion(api, "builder is not positioned")
	}
	return nil
}

// PositionAtEnd moves the insertion point to the end of a block.
func (b *Builder) PositionAtEnd(bb *BasicBlock) error {
	const api = "position_at_end"
	if err := b.ensure(api); err != nil {
		return err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return err
	}
	native.PositionBuilderAtEnd(b.ref, bb.ref)
	return nil
}

// PositionBefore moves the insertion point before an instruction.
func (b *Builder) PositionBefore(inst *Value) error {
	const api = "position_before"
	if err := b.ensure(api); err != nil {
		return err
	}
	if err := inst.expectInstruction(api); err != nil {
		return err
	}
	if native.GetInstructionParent(inst.ref) == nil {
		return errors.Assertion(api, "instruction is not attached to a block")
	}
	native.PositionBuilderBefore(b.ref, inst.ref)
	return nil
}

// InsertBlock returns the block the builder points into, nil when
// unpositioned.
func (b *Builder) InsertBlock() (*BasicBlock, error) {
	if err := b.ensure("insert_block"); err != nil {
		return nil, err
	}
	return wrapBlock(b.tok, native.GetInsertBlock(b.ref)), nil
}

// Emit helpers. Each public Build method guards builder liveness, the
// insertion point, and every handle it consumes before touching the
// native layer.

func (b *Builder) binop(api string, lhs, rhs *Value, name string,
	mk func(native.BuilderRef, native.ValueRef, native.ValueRef, []byte) native.ValueRef) (*Value, error) {
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(lhs.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(rhs.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, mk(b.ref, lhs.ref, rhs.ref, []byte(name))), nil
}

func (b *Builder) unop(api string, v *Value, name string,
	mk func(native.BuilderRef, native.ValueRef, []byte) native.ValueRef) (*Value, error) {
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, mk(b.ref, v.ref, []byte(name))), nil
}

func (b *Builder) cast(api string, v *Value, ty *Type, name string,
	mk func(native.BuilderRef, native.ValueRef, native.TypeRef, []byte) native.ValueRef) (*Value, error) {
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, mk(b.ref, v.ref, ty.ref, []byte(name))), nil
}

// Terminators.

// RetVoid emits ret void.
func (b *Builder) RetVoid() (*Value, error) {
	if err := b.ready("build_ret_void"); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildRetVoid(b.ref)), nil
}

// Ret emits ret with a value.
func (b *Builder) Ret(v *Value) (*Value, error) {
	const api = "build_ret"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildRet(b.ref, v.ref)), nil
}

// Br emits an unconditional branch.
func (b *Builder) Br(dest *BasicBlock) (*Value, error) {
	const api = "build_br"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(dest.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildBr(b.ref, dest.ref)), nil
}

// CondBr emits a conditional branch.
func (b *Builder) CondBr(cond *Value, then, els *BasicBlock) (*Value, error) {
	const api = "build_cond_br"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(cond.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(then.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(els.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildCondBr(b.ref, cond.ref, then.ref, els.ref)), nil
}

// Switch emits a switch with a default destination. Populate it with
// AddCase.
func (b *Builder) Switch(v *Value, def *BasicBlock, hint int) (*Value, error) {
	const api = "build_switch"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(def.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildSwitch(b.ref, v.ref, def.ref, hint)), nil
}

// Unreachable emits unreachable.
func (b *Builder) Unreachable() (*Value, error) {
	if err := b.ready("build_unreachable"); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildUnreachable(b.ref)), nil
}

// Resume emits resume.
func (b *Builder) Resume(v *Value) (*Value, error) {
	const api = "build_resume"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildResume(b.ref, v.ref)), nil
}

// Integer and float arithmetic.

func (b *Builder) Add(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_add", lhs, rhs, name, native.BuildAdd)
}

func (b *Builder) NSWAdd(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_nsw_add", lhs, rhs, name, native.BuildNSWAdd)
}

func (b *Builder) NUWAdd(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_nuw_add", lhs, rhs, name, native.BuildNUWAdd)
}

func (b *Builder) Sub(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_sub", lhs, rhs, name, native.BuildSub)
}

func (b *Builder) Mul(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_mul", lhs, rhs, name, native.BuildMul)
}

func (b *Builder) UDiv(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_udiv", lhs, rhs, name, native.BuildUDiv)
}

func (b *Builder) SDiv(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_sdiv", lhs, rhs, name, native.BuildSDiv)
}

func (b *Builder) ExactSDiv(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_exact_sdiv", lhs, rhs, name, native.BuildExactSDiv)
}

func (b *Builder) URem(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_urem", lhs, rhs, name, native.BuildURem)
}

func (b *Builder) SRem(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_srem", lhs, rhs, name, native.BuildSRem)
}

func (b *Builder) FAdd(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_fadd", lhs, rhs, name, native.BuildFAdd)
}

func (b *Builder) FSub(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_fsub", lhs, rhs, name, native.BuildFSub)
}

func (b *Builder) FMul(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_fmul", lhs, rhs, name, native.BuildFMul)
}

func (b *Builder) FDiv(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_fdiv", lhs, rhs, name, native.BuildFDiv)
}

func (b *Builder) And(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_and", lhs, rhs, name, native.BuildAnd)
}

func (b *Builder) Or(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_or", lhs, rhs, name, native.BuildOr)
}

func (b *Builder) Xor(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_xor", lhs, rhs, name, native.BuildXor)
}

func (b *Builder) Shl(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_shl", lhs, rhs, name, native.BuildShl)
}

func (b *Builder) LShr(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_lshr", lhs, rhs, name, native.BuildLShr)
}

func (b *Builder) AShr(lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_ashr", lhs, rhs, name, native.BuildAShr)
}

func (b *Builder) Neg(v *Value, name string) (*Value, error) {
	return b.unop("build_neg", v, name, native.BuildNeg)
}

func (b *Builder) FNeg(v *Value, name string) (*Value, error) {
	return b.unop("build_fneg", v, name, native.BuildFNeg)
}

func (b *Builder) Not(v *Value, name string) (*Value, error) {
	return b.unop("build_not", v, name, native.BuildNot)
}

// Comparisons.

// ICmp emits icmp with the given predicate.
func (b *Builder) ICmp(pred IntPredicate, lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_icmp", lhs, rhs, name,
		func(ref native.BuilderRef, l, r native.ValueRef, n []byte) native.ValueRef {
			return native.BuildICmp(ref, pred, l, r, n)
		})
}

// FCmp emits fcmp with the given predicate.
func (b *Builder) FCmp(pred RealPredicate, lhs, rhs *Value, name string) (*Value, error) {
	return b.binop("build_fcmp", lhs, rhs, name,
		func(ref native.BuilderRef, l, r native.ValueRef, n []byte) native.ValueRef {
			return native.BuildFCmp(ref, pred, l, r, n)
		})
}

// Memory.

// Alloca emits a stack allocation of the given type.
func (b *Builder) Alloca(ty *Type, name string) (*Value, error) {
	const api = "build_alloca"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildAlloca(b.ref, ty.ref, []byte(name))), nil
}

// Load emits a typed load.
func (b *Builder) Load(ty *Type, ptr *Value, name string) (*Value, error) {
	const api = "build_load"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ptr.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildLoad(b.ref, ty.ref, ptr.ref, []byte(name))), nil
}

// Store emits a store.
func (b *Builder) Store(v, ptr *Value) (*Value, error) {
	const api = "build_store"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ptr.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildStore(b.ref, v.ref, ptr.ref)), nil
}

func (b *Builder) gep(api string, ty *Type, ptr *Value, indices []*Value, name string,
	mk func(native.BuilderRef, native.TypeRef, native.ValueRef, []native.ValueRef, []byte) native.ValueRef) (*Value, error) {
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ptr.tok, api); err != nil {
		return nil, err
	}
	idx, err := valueRefs(api, indices)
	if err != nil {
		return nil, err
	}
	return wrapValue(b.tok, mk(b.ref, ty.ref, ptr.ref, idx, []byte(name))), nil
}

// GEP emits getelementptr.
func (b *Builder) GEP(ty *Type, ptr *Value, indices []*Value, name string) (*Value, error) {
	return b.gep("build_gep", ty, ptr, indices, name, native.BuildGEP)
}

// InBoundsGEP emits getelementptr inbounds.
func (b *Builder) InBoundsGEP(ty *Type, ptr *Value, indices []*Value, name string) (*Value, error) {
	return b.gep("build_in_bounds_gep", ty, ptr, indices, name, native.BuildInBoundsGEP)
}

// GlobalString emits a private constant string global and returns it.
func (b *Builder) GlobalString(s, name string) (*Value, error) {
	if err := b.ready("build_global_string"); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildGlobalString(b.ref, []byte(s), []byte(name))), nil
}

// Casts.

func (b *Builder) Trunc(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_trunc", v, ty, name, native.BuildTrunc)
}

func (b *Builder) ZExt(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_zext", v, ty, name, native.BuildZExt)
}

func (b *Builder) SExt(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_sext", v, ty, name, native.BuildSExt)
}

func (b *Builder) FPToUI(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_fp_to_ui", v, ty, name, native.BuildFPToUI)
}

func (b *Builder) FPToSI(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_fp_to_si", v, ty, name, native.BuildFPToSI)
}

func (b *Builder) UIToFP(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_ui_to_fp", v, ty, name, native.BuildUIToFP)
}

func (b *Builder) SIToFP(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_si_to_fp", v, ty, name, native.BuildSIToFP)
}

func (b *Builder) FPTrunc(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_fp_trunc", v, ty, name, native.BuildFPTrunc)
}

func (b *Builder) FPExt(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_fp_ext", v, ty, name, native.BuildFPExt)
}

func (b *Builder) PtrToInt(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_ptr_to_int", v, ty, name, native.BuildPtrToInt)
}

func (b *Builder) IntToPtr(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_int_to_ptr", v, ty, name, native.BuildIntToPtr)
}

func (b *Builder) BitCast(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_bit_cast", v, ty, name, native.BuildBitCast)
}

func (b *Builder) AddrSpaceCast(v *Value, ty *Type, name string) (*Value, error) {
	return b.cast("build_addr_space_cast", v, ty, name, native.BuildAddrSpaceCast)
}

// Freeze emits freeze.
func (b *Builder) Freeze(v *Value, name string) (*Value, error) {
	return b.unop("build_freeze", v, name, native.BuildFreeze)
}

// Aggregate and vector operations.

// Phi emits an empty phi of the given type. Populate it with AddIncoming.
func (b *Builder) Phi(ty *Type, name string) (*Value, error) {
	const api = "build_phi"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildPhi(b.ref, ty.ref, []byte(name))), nil
}

// Select emits select.
func (b *Builder) Select(cond, then, els *Value, name string) (*Value, error) {
	const api = "build_select"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	for _, v := range []*Value{cond, then, els} {
		if err := ensureHandle(v.tok, api); err != nil {
			return nil, err
		}
	}
	return wrapValue(b.tok, native.BuildSelect(b.ref, cond.ref, then.ref, els.ref, []byte(name))), nil
}

// ExtractValue emits extractvalue.
func (b *Builder) ExtractValue(agg *Value, index int, name string) (*Value, error) {
	const api = "build_extract_value"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(agg.tok, api); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, errors.Assertion(api, "index %d invalid (idx >= 0)", index)
	}
	return wrapValue(b.tok, native.BuildExtractValue(b.ref, agg.ref, index, []byte(name))), nil
}

// InsertValue emits insertvalue.
func (b *Builder) InsertValue(agg, elt *Value, index int, name string) (*Value, error) {
	const api = "build_insert_value"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(agg.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(elt.tok, api); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, errors.Assertion(api, "index %d invalid (idx >= 0)", index)
	}
	return wrapValue(b.tok, native.BuildInsertValue(b.ref, agg.ref, elt.ref, index, []byte(name))), nil
}

// ExtractElement emits extractelement.
func (b *Builder) ExtractElement(vec, idx *Value, name string) (*Value, error) {
	return b.binop("build_extract_element", vec, idx, name, native.BuildExtractElement)
}

// InsertElement emits insertelement.
func (b *Builder) InsertElement(vec, elt, idx *Value, name string) (*Value, error) {
	const api = "build_insert_element"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	for _, v := range []*Value{vec, elt, idx} {
		if err := ensureHandle(v.tok, api); err != nil {
			return nil, err
		}
	}
	return wrapValue(b.tok, native.BuildInsertElement(b.ref, vec.ref, elt.ref, idx.ref, []byte(name))), nil
}

// ShuffleVector emits shufflevector. The mask must be a constant vector of
// i32.
func (b *Builder) ShuffleVector(v1, v2, mask *Value, name string) (*Value, error) {
	const api = "build_shuffle_vector"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	for _, v := range []*Value{v1, v2, mask} {
		if err := ensureHandle(v.tok, api); err != nil {
			return nil, err
		}
	}
	if !native.IsConstant(mask.ref) {
		return nil, errors.Assertion(api, "shuffle mask must be a constant vector")
	}
	return wrapValue(b.tok, native.BuildShuffleVector(b.ref, v1.ref, v2.ref, mask.ref, []byte(name))), nil
}

// Calls.

func (b *Builder) callPrologue(api string, fnTy *Type, callee *Value, args []*Value, bundles []*OperandBundle) ([]native.ValueRef, []native.OperandBundleRef, error) {
	if err := b.ready(api); err != nil {
		return nil, nil, err
	}
	if err := fnTy.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return nil, nil, err
	}
	if err := ensureHandle(callee.tok, api); err != nil {
		return nil, nil, err
	}
	argRefs, err := valueRefs(api, args)
	if err != nil {
		return nil, nil, err
	}
	bundleRefs := make([]native.OperandBundleRef, len(bundles))
	for i, ob := range bundles {
		if err := ensureHandle(ob.tok, api); err != nil {
			return nil, nil, err
		}
		bundleRefs[i] = ob.ref
	}
	return argRefs, bundleRefs, nil
}

// Call emits call.
func (b *Builder) Call(fnTy *Type, callee *Value, args []*Value, name string) (*Value, error) {
	return b.CallWithOperandBundles(fnTy, callee, args, nil, name)
}

// CallWithOperandBundles emits call with operand bundles.
func (b *Builder) CallWithOperandBundles(fnTy *Type, callee *Value, args []*Value, bundles []*OperandBundle, name string) (*Value, error) {
	const api = "build_call"
	argRefs, bundleRefs, err := b.callPrologue(api, fnTy, callee, args, bundles)
	if err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildCallWithOperandBundles(b.ref, fnTy.ref, callee.ref, argRefs, bundleRefs, []byte(name))), nil
}

// Invoke emits invoke.
func (b *Builder) Invoke(fnTy *Type, callee *Value, args []*Value, then, catch *BasicBlock, name string) (*Value, error) {
	return b.InvokeWithOperandBundles(fnTy, callee, args, then, catch, nil, name)
}

// InvokeWithOperandBundles emits invoke with operand bundles.
func (b *Builder) InvokeWithOperandBundles(fnTy *Type, callee *Value, args []*Value, then, catch *BasicBlock, bundles []*OperandBundle, name string) (*Value, error) {
	const api = "build_invoke"
	argRefs, bundleRefs, err := b.callPrologue(api, fnTy, callee, args, bundles)
	if err != nil {
		return nil, err
	}
	if err := ensureHandle(then.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(catch.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildInvokeWithOperandBundles(b.ref, fnTy.ref, callee.ref, argRefs, then.ref, catch.ref, bundleRefs, []byte(name))), nil
}

// CallBr emits callbr.
func (b *Builder) CallBr(fnTy *Type, callee *Value, def *BasicBlock, indirect []*BasicBlock, args []*Value, bundles []*OperandBundle, name string) (*Value, error) {
	const api = "build_callbr"
	argRefs, bundleRefs, err := b.callPrologue(api, fnTy, callee, args, bundles)
	if err != nil {
		return nil, err
	}
	if err := ensureHandle(def.tok, api); err != nil {
		return nil, err
	}
	indirectRefs := make([]native.BasicBlockRef, len(indirect))
	for i, bb := range indirect {
		if err := ensureHandle(bb.tok, api); err != nil {
			return nil, err
		}
		indirectRefs[i] = bb.ref
	}
	return wrapValue(b.tok, native.BuildCallBr(b.ref, fnTy.ref, callee.ref, def.ref, indirectRefs, argRefs, bundleRefs, []byte(name))), nil
}

// Exception handling.

// LandingPad emits landingpad. Populate it with AddClause.
func (b *Builder) LandingPad(ty *Type, numClausesHint int, name string) (*Value, error) {
	const api = "build_landing_pad"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildLandingPad(b.ref, ty.ref, numClausesHint, []byte(name))), nil
}

// CatchSwitch emits catchswitch. A nil parentPad means none; a nil unwind
// block unwinds to the caller.
func (b *Builder) CatchSwitch(parentPad *Value, unwind *BasicBlock, numHandlersHint int, name string) (*Value, error) {
	const api = "build_catch_switch"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	var padRef native.ValueRef
	if parentPad != nil {
		if err := ensureHandle(parentPad.tok, api); err != nil {
			return nil, err
		}
		padRef = parentPad.ref
	}
	var unwindRef native.BasicBlockRef
	if unwind != nil {
		if err := ensureHandle(unwind.tok, api); err != nil {
			return nil, err
		}
		unwindRef = unwind.ref
	}
	return wrapValue(b.tok, native.BuildCatchSwitch(b.ref, padRef, unwindRef, numHandlersHint, []byte(name))), nil
}

// CatchPad emits catchpad.
func (b *Builder) CatchPad(parentPad *Value, args []*Value, name string) (*Value, error) {
	const api = "build_catch_pad"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(parentPad.tok, api); err != nil {
		return nil, err
	}
	argRefs, err := valueRefs(api, args)
	if err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildCatchPad(b.ref, parentPad.ref, argRefs, []byte(name))), nil
}

// CleanupPad emits cleanuppad. A nil parentPad means none.
func (b *Builder) CleanupPad(parentPad *Value, args []*Value, name string) (*Value, error) {
	const api = "build_cleanup_pad"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	var padRef native.ValueRef
	if parentPad != nil {
		if err := ensureHandle(parentPad.tok, api); err != nil {
			return nil, err
		}
		padRef = parentPad.ref
	}
	argRefs, err := valueRefs(api, args)
	if err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildCleanupPad(b.ref, padRef, argRefs, []byte(name))), nil
}

// CatchRet emits catchret.
func (b *Builder) CatchRet(catchPad *Value, bb *BasicBlock) (*Value, error) {
	const api = "build_catch_ret"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(catchPad.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(bb.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildCatchRet(b.ref, catchPad.ref, bb.ref)), nil
}

// CleanupRet emits cleanupret. A nil unwind block unwinds to the caller.
func (b *Builder) CleanupRet(cleanupPad *Value, unwind *BasicBlock) (*Value, error) {
	const api = "build_cleanup_ret"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(cleanupPad.tok, api); err != nil {
		return nil, err
	}
	var unwindRef native.BasicBlockRef
	if unwind != nil {
		if err := ensureHandle(unwind.tok, api); err != nil {
			return nil, err
		}
		unwindRef = unwind.ref
	}
	return wrapValue(b.tok, native.BuildCleanupRet(b.ref, cleanupPad.ref, unwindRef)), nil
}

// Atomics.

// AtomicRMW emits atomicrmw.
func (b *Builder) AtomicRMW(op AtomicRMWBinOp, ptr, val *Value, ordering AtomicOrdering, singleThread bool) (*Value, error) {
	const api = "build_atomic_rmw"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ptr.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(val.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildAtomicRMW(b.ref, op, ptr.ref, val.ref, ordering, singleThread)), nil
}

// AtomicCmpXchg emits cmpxchg.
func (b *Builder) AtomicCmpXchg(ptr, cmp, newVal *Value, success, failure AtomicOrdering, singleThread bool) (*Value, error) {
	const api = "build_atomic_cmpxchg"
	if err := b.ready(api); err != nil {
		return nil, err
	}
	for _, v := range []*Value{ptr, cmp, newVal} {
		if err := ensureHandle(v.tok, api); err != nil {
			return nil, err
		}
	}
	return wrapValue(b.tok, native.BuildAtomicCmpXchg(b.ref, ptr.ref, cmp.ref, newVal.ref, success, failure, singleThread)), nil
}

// Fence emits fence.
func (b *Builder) Fence(ordering AtomicOrdering, singleThread bool, name string) (*Value, error) {
	if err := b.ready("build_fence"); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.BuildFence(b.ref, ordering, singleThread, []byte(name))), nil
}
