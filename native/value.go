package native

import (
	"fmt"
	"strconv"
)

type instrFlags struct {
	nsw      bool
	nuw      bool
	exact    bool
	nneg     bool
	disjoint bool
	sameSign bool
	weak     bool
	cleanup  bool
	inBounds bool
	volatile bool

	ipred IntPredicate
	rpred RealPredicate

	ordering        AtomicOrdering
	successOrdering AtomicOrdering
	failureOrdering AtomicOrdering
	syncScope       int
	singleThread    bool
	rmwOp           AtomicRMWBinOp
	tailKind        TailCallKind
	callConv        int
	alignment       int
}

type mdEntry struct {
	kindID int
	md     *rawValue
}

type rawValue struct {
	ctx  *rawContext
	kind ValueKind
	typ  *rawType
	name []byte

	operands []*rawValue
	uses     []*rawUse

	// Constant payloads.
	intVal   uint64
	signed   bool
	floatVal float64
	data     []byte // constant data arrays

	// Basic-block-as-value back reference.
	bb *rawBlock

	// Instruction payload.
	op       Opcode
	parent   *rawBlock
	flags    instrFlags
	inBlocks []*rawBlock // phi incoming blocks; values live in operands
	clauses  []*rawValue // landingpad
	handlers []*rawBlock // catchswitch
	mask     []int       // shufflevector
	bundles  []*rawBundle
	numArgs  int // call-like: operands = args ++ [callee]
	fnType   *rawType
	allocaTy *rawType

	// Call-like / terminator destinations.
	normalDest    *rawBlock
	unwindDest    *rawBlock
	indirectDests []*rawBlock

	// Function payload.
	args        []*rawValue
	blocks      []*rawBlock
	personality *rawValue
	prefixData  *rawValue
	prologData  *rawValue
	gcName      string
	attrs       map[int][]*rawAttribute
	module      *rawModule

	// Global payload.
	linkage     Linkage
	unnamedAddr UnnamedAddr
	visibility  Visibility
	section     string
	comdat      *rawComdat
	mdEntries   []mdEntry

	// Argument payload.
	argParent *rawValue
	argIndex  int

	// Inline asm payload.
	asmString   []byte
	constraints []byte
	sideEffects bool
	alignStack  bool

	// Metadata payload.
	mdString []byte
	mdOps    []*rawValue
}

// GetValueKind returns the value's kind tag.
func GetValueKind(v ValueRef) ValueKind { return v.kind }

// TypeOf returns the value's type.
func TypeOf(v ValueRef) TypeRef { return v.typ }

// GetValueContext returns the owning context.
func GetValueContext(v ValueRef) ContextRef { return v.ctx }

// GetValueName2 returns the value's name bytes, preserved exactly.
func GetValueName2(v ValueRef) []byte { return v.name }

// SetValueName2 sets the value's name bytes.
func SetValueName2(v ValueRef, name []byte) {
	v.name = append([]byte(nil), name...)
}

// IsConstant reports whether v is a constant.
func IsConstant(v ValueRef) bool {
	switch v.kind {
	case ConstantIntValueKind, ConstantFPValueKind, ConstantArrayValueKind,
		ConstantDataArrayValueKind, ConstantStructValueKind,
		ConstantPointerNullValueKind, ConstantAggregateZeroValueKind,
		UndefValueValueKind, PoisonValueValueKind, FunctionValueKind,
		GlobalVariableValueKind, GlobalAliasValueKind, GlobalIFuncValueKind:
		return true
	}
	return false
}

// GetNumOperands returns the operand count.
func GetNumOperands(v ValueRef) int { return len(v.operands) }

// GetOperand returns operand i. Unchecked: panics or returns garbage on a
// bad index, like the native call it models.
func GetOperand(v ValueRef, i int) ValueRef { return v.operands[i] }

// SetOperand replaces operand i. Unchecked.
func SetOperand(v ValueRef, i int, operand ValueRef) {
	old := v.operands[i]
	if old != nil {
		old.dropUse(v, i)
	}
	v.operands[i] = operand
	if operand != nil {
		operand.uses = append(operand.uses, &rawUse{user: v, idx: i})
	}
}

// GetOperandUse returns the use edge for operand i. Unchecked.
func GetOperandUse(v ValueRef, i int) UseRef {
	return &rawUse{user: v, idx: i}
}

func (v *rawValue) addOperand(operand *rawValue) {
	v.operands = append(v.operands, operand)
	if operand != nil {
		operand.uses = append(operand.uses, &rawUse{user: v, idx: len(v.operands) - 1})
	}
}

func (v *rawValue) dropUse(user *rawValue, idx int) {
	for i, u := range v.uses {
		if u.user == user && u.idx == idx {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}

// ReplaceAllUsesWith rewrites every use of old to point at new.
func ReplaceAllUsesWith(old, new ValueRef) {
	uses := old.uses
	old.uses = nil
	for _, u := range uses {
		u.user.operands[u.idx] = new
		new.uses = append(new.uses, u)
	}
}

// ConstInt creates (or returns the interned) integer constant.
func ConstInt(t TypeRef, val uint64, signExtend bool) ValueRef {
	key := intKey{width: t.width, value: val, signed: signExtend}
	if v, ok := t.ctx.intConsts[key]; ok {
		return v
	}
	v := &rawValue{ctx: t.ctx, kind: ConstantIntValueKind, typ: t, intVal: val, signed: signExtend}
	t.ctx.intConsts[key] = v
	return v
}

// ConstIntGetZExtValue returns the zero-extended value. Unchecked.
func ConstIntGetZExtValue(v ValueRef) uint64 { return v.intVal }

// ConstIntGetSExtValue returns the sign-extended value. Unchecked.
func ConstIntGetSExtValue(v ValueRef) int64 { return int64(v.intVal) }

// ConstReal creates a floating-point constant.
func ConstReal(t TypeRef, val float64) ValueRef {
	return &rawValue{ctx: t.ctx, kind: ConstantFPValueKind, typ: t, floatVal: val}
}

// ConstRealGetDouble returns the double value. Unchecked.
func ConstRealGetDouble(v ValueRef) float64 { return v.floatVal }

// ConstNull returns the zero value of a type.
func ConstNull(t TypeRef) ValueRef {
	kind := ConstantAggregateZeroValueKind
	switch t.kind {
	case PointerTypeKind:
		kind = ConstantPointerNullValueKind
	case IntegerTypeKind:
		return ConstInt(t, 0, false)
	}
	return &rawValue{ctx: t.ctx, kind: kind, typ: t}
}

// GetUndef returns the undefined value of a type.
func GetUndef(t TypeRef) ValueRef {
	return &rawValue{ctx: t.ctx, kind: UndefValueValueKind, typ: t}
}

// GetPoison returns the poison value of a type.
func GetPoison(t TypeRef) ValueRef {
	return &rawValue{ctx: t.ctx, kind: PoisonValueValueKind, typ: t}
}

// ConstStringInContext creates a constant data array from bytes.
func ConstStringInContext(c ContextRef, data []byte, dontNullTerminate bool) ValueRef {
	stored := append([]byte(nil), data...)
	if !dontNullTerminate {
		stored = append(stored, 0)
	}
	i8 := IntTypeInContext(c, 8)
	return &rawValue{
		ctx:  c,
		kind: ConstantDataArrayValueKind,
		typ:  ArrayType(i8, len(stored)),
		data: stored,
	}
}

// GetAsString returns the raw bytes of a constant data array. Unchecked.
func GetAsString(v ValueRef) []byte { return v.data }

// ConstArray creates a constant array from elements.
func ConstArray(elem TypeRef, vals []ValueRef) ValueRef {
	v := &rawValue{
		ctx:  elem.ctx,
		kind: ConstantArrayValueKind,
		typ:  ArrayType(elem, len(vals)),
	}
	for _, e := range vals {
		v.addOperand(e)
	}
	return v
}

// ConstStructInContext creates an anonymous constant struct.
func ConstStructInContext(c ContextRef, vals []ValueRef, packed bool) ValueRef {
	fields := make([]TypeRef, len(vals))
	for i, e := range vals {
		fields[i] = e.typ
	}
	v := &rawValue{
		ctx:  c,
		kind: ConstantStructValueKind,
		typ:  StructTypeInContext(c, fields, packed),
	}
	for _, e := range vals {
		v.addOperand(e)
	}
	return v
}

// ConstNamedStruct creates a constant of a named struct type.
func ConstNamedStruct(t TypeRef, vals []ValueRef) ValueRef {
	v := &rawValue{ctx: t.ctx, kind: ConstantStructValueKind, typ: t}
	for _, e := range vals {
		v.addOperand(e)
	}
	return v
}

// GetAggregateElement returns element i of a constant aggregate, or nil
// when out of range (the one native accessor that reports absence).
func GetAggregateElement(v ValueRef, i int) ValueRef {
	if v.kind == ConstantDataArrayValueKind {
		if i < 0 || i >= len(v.data) {
			return nil
		}
		return ConstInt(IntTypeInContext(v.ctx, 8), uint64(v.data[i]), false)
	}
	if i < 0 || i >= len(v.operands) {
		return nil
	}
	return v.operands[i]
}

// MDStringInContext creates a metadata string value.
func MDStringInContext(c ContextRef, s []byte) ValueRef {
	return &rawValue{
		ctx:      c,
		kind:     MetadataAsValueValueKind,
		typ:      MetadataTypeInContext(c),
		mdString: append([]byte(nil), s...),
	}
}

// MDNodeInContext creates a metadata node value.
func MDNodeInContext(c ContextRef, ops []ValueRef) ValueRef {
	return &rawValue{
		ctx:   c,
		kind:  MetadataAsValueValueKind,
		typ:   MetadataTypeInContext(c),
		mdOps: append([]*rawValue(nil), ops...),
	}
}

// GetMDString returns metadata string bytes, or nil for nodes.
func GetMDString(v ValueRef) []byte { return v.mdString }

// GetInlineAsm creates an inline assembly value.
func GetInlineAsm(fnTy TypeRef, asm, constraints []byte, sideEffects, alignStack bool) ValueRef {
	return &rawValue{
		ctx:         fnTy.ctx,
		kind:        InlineAsmValueKind,
		typ:         PointerTypeInContext(fnTy.ctx, 0),
		fnType:      fnTy,
		asmString:   append([]byte(nil), asm...),
		constraints: append([]byte(nil), constraints...),
		sideEffects: sideEffects,
		alignStack:  alignStack,
	}
}

// GetInlineAsmAsmString returns the template bytes. Unchecked.
func GetInlineAsmAsmString(v ValueRef) []byte { return v.asmString }

// GetInlineAsmConstraintString returns the constraint bytes. Unchecked.
func GetInlineAsmConstraintString(v ValueRef) []byte { return v.constraints }

// GetInlineAsmHasSideEffects reports the side-effect flag. Unchecked.
func GetInlineAsmHasSideEffects(v ValueRef) bool { return v.sideEffects }

// GetInlineAsmNeedsAlignedStack reports the aligned-stack flag. Unchecked.
func GetInlineAsmNeedsAlignedStack(v ValueRef) bool { return v.alignStack }

// PrintValueToString renders a value in IR-like syntax.
func PrintValueToString(v ValueRef) []byte {
	return []byte(valueString(v, true))
}

func valueString(v *rawValue, typed bool) string {
	s := valueBody(v)
	if typed && v.typ != nil && v.kind != InstructionValueKind {
		return typeString(v.typ) + " " + s
	}
	return s
}

func valueBody(v *rawValue) string {
	switch v.kind {
	case ConstantIntValueKind:
		if v.signed {
			return strconv.FormatInt(int64(v.intVal), 10)
		}
		return strconv.FormatUint(v.intVal, 10)
	case ConstantFPValueKind:
		return strconv.FormatFloat(v.floatVal, 'e', -1, 64)
	case ConstantPointerNullValueKind:
		return "null"
	case ConstantAggregateZeroValueKind:
		return "zeroinitializer"
	case UndefValueValueKind:
		return "undef"
	case PoisonValueValueKind:
		return "poison"
	case ConstantDataArrayValueKind:
		return "c" + strconv.Quote(string(v.data))
	case FunctionValueKind, GlobalVariableValueKind, GlobalAliasValueKind, GlobalIFuncValueKind:
		return "@" + string(v.name)
	case BasicBlockValueKind:
		return "label %" + string(v.bb.name)
	case MetadataAsValueValueKind:
		if v.mdString != nil {
			return "!" + strconv.Quote(string(v.mdString))
		}
		return "!{...}"
	case InstructionValueKind, ArgumentValueKind:
		return "%" + string(v.name)
	case ConstantArrayValueKind, ConstantStructValueKind:
		open, close := "[", "]"
		if v.kind == ConstantStructValueKind {
			open, close = "{ ", " }"
		}
		out := open
		for i, e := range v.operands {
			if i > 0 {
				out += ", "
			}
			out += valueString(e, true)
		}
		return out + close
	case InlineAsmValueKind:
		return fmt.Sprintf("asm %q, %q", v.asmString, v.constraints)
	default:
		return "<badval>"
	}
}
