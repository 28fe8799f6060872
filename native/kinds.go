package native

// TypeKind discriminates type references.
type TypeKind int

const (
	VoidTypeKind TypeKind = iota
	HalfTypeKind
	FloatTypeKind
	DoubleTypeKind
	IntegerTypeKind
	FunctionTypeKind
	StructTypeKind
	ArrayTypeKind
	PointerTypeKind
	VectorTypeKind
	MetadataTypeKind
	LabelTypeKind
	TokenTypeKind
)

func (k TypeKind) String() string {
	switch k {
	case VoidTypeKind:
		return "void"
	case HalfTypeKind:
		return "half"
	case FloatTypeKind:
		return "float"
	case DoubleTypeKind:
		return "double"
	case IntegerTypeKind:
		return "integer"
	case FunctionTypeKind:
		return "function"
	case StructTypeKind:
		return "struct"
	case ArrayTypeKind:
		return "array"
	case PointerTypeKind:
		return "pointer"
	case VectorTypeKind:
		return "vector"
	case MetadataTypeKind:
		return "metadata"
	case LabelTypeKind:
		return "label"
	case TokenTypeKind:
		return "token"
	default:
		return "unknown"
	}
}

// ValueKind discriminates value references.
type ValueKind int

const (
	ArgumentValueKind ValueKind = iota
	BasicBlockValueKind
	FunctionValueKind
	GlobalVariableValueKind
	GlobalAliasValueKind
	GlobalIFuncValueKind
	ConstantIntValueKind
	ConstantFPValueKind
	ConstantArrayValueKind
	ConstantDataArrayValueKind
	ConstantStructValueKind
	ConstantPointerNullValueKind
	ConstantAggregateZeroValueKind
	UndefValueValueKind
	PoisonValueValueKind
	InstructionValueKind
	InlineAsmValueKind
	MetadataAsValueValueKind
)

func (k ValueKind) String() string {
	switch k {
	case ArgumentValueKind:
		return "Argument"
	case BasicBlockValueKind:
		return "BasicBlock"
	case FunctionValueKind:
		return "Function"
	case GlobalVariableValueKind:
		return "GlobalVariable"
	case GlobalAliasValueKind:
		return "GlobalAlias"
	case GlobalIFuncValueKind:
		return "GlobalIFunc"
	case ConstantIntValueKind:
		return "ConstantInt"
	case ConstantFPValueKind:
		return "ConstantFP"
	case ConstantArrayValueKind:
		return "ConstantArray"
	case ConstantDataArrayValueKind:
		return "ConstantDataArray"
	case ConstantStructValueKind:
		return "ConstantStruct"
	case ConstantPointerNullValueKind:
		return "ConstantPointerNull"
	case ConstantAggregateZeroValueKind:
		return "ConstantAggregateZero"
	case UndefValueValueKind:
		return "UndefValue"
	case PoisonValueValueKind:
		return "PoisonValue"
	case InstructionValueKind:
		return "Instruction"
	case InlineAsmValueKind:
		return "InlineAsm"
	case MetadataAsValueValueKind:
		return "MetadataAsValue"
	default:
		return "Unknown"
	}
}

// Opcode identifies an instruction operation.
type Opcode int

const (
	Ret Opcode = 1 + iota
	Br
	Switch
	IndirectBr
	Invoke
	Unreachable
	CallBr
	Add
	FAdd
	Sub
	FSub
	Mul
	FMul
	UDiv
	SDiv
	FDiv
	URem
	SRem
	FRem
	Shl
	LShr
	AShr
	And
	Or
	Xor
	Alloca
	Load
	Store
	GetElementPtr
	Trunc
	ZExt
	SExt
	FPToUI
	FPToSI
	UIToFP
	SIToFP
	FPTrunc
	FPExt
	PtrToInt
	IntToPtr
	BitCast
	AddrSpaceCast
	ICmp
	FCmp
	PHI
	Call
	Select
	ExtractElement
	InsertElement
	ShuffleVector
	ExtractValue
	InsertValue
	Fence
	AtomicCmpXchg
	AtomicRMW
	Resume
	LandingPad
	CleanupRet
	CatchRet
	CatchPad
	CleanupPad
	CatchSwitch
	Freeze
	FNeg
)

var opcodeNames = map[Opcode]string{
	Ret: "ret", Br: "br", Switch: "switch", IndirectBr: "indirectbr",
	Invoke: "invoke", Unreachable: "unreachable", CallBr: "callbr",
	Add: "add", FAdd: "fadd", Sub: "sub", FSub: "fsub", Mul: "mul",
	FMul: "fmul", UDiv: "udiv", SDiv: "sdiv", FDiv: "fdiv", URem: "urem",
	SRem: "srem", FRem: "frem", Shl: "shl", LShr: "lshr", AShr: "ashr",
	And: "and", Or: "or", Xor: "xor", Alloca: "alloca", Load: "load",
	Store: "store", GetElementPtr: "getelementptr", Trunc: "trunc",
	ZExt: "zext", SExt: "sext", FPToUI: "fptoui", FPToSI: "fptosi",
	UIToFP: "uitofp", SIToFP: "sitofp", FPTrunc: "fptrunc", FPExt: "fpext",
	PtrToInt: "ptrtoint", IntToPtr: "inttoptr", BitCast: "bitcast",
	AddrSpaceCast: "addrspacecast", ICmp: "icmp", FCmp: "fcmp", PHI: "phi",
	Call: "call", Select: "select", ExtractElement: "extractelement",
	InsertElement: "insertelement", ShuffleVector: "shufflevector",
	ExtractValue: "extractvalue", InsertValue: "insertvalue", Fence: "fence",
	AtomicCmpXchg: "cmpxchg", AtomicRMW: "atomicrmw", Resume: "resume",
	LandingPad: "landingpad", CleanupRet: "cleanupret", CatchRet: "catchret",
	CatchPad: "catchpad", CleanupPad: "cleanuppad", CatchSwitch: "catchswitch",
	Freeze: "freeze", FNeg: "fneg",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "unknown"
}

// IsTerminator reports whether the opcode ends a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case Ret, Br, Switch, IndirectBr, Invoke, Unreachable, CallBr,
		Resume, CleanupRet, CatchRet, CatchSwitch:
		return true
	}
	return false
}

// IntPredicate is an icmp condition code.
type IntPredicate int

const (
	IntEQ IntPredicate = 32 + iota
	IntNE
	IntUGT
	IntUGE
	IntULT
	IntULE
	IntSGT
	IntSGE
	IntSLT
	IntSLE
)

var intPredNames = map[IntPredicate]string{
	IntEQ: "eq", IntNE: "ne", IntUGT: "ugt", IntUGE: "uge", IntULT: "ult",
	IntULE: "ule", IntSGT: "sgt", IntSGE: "sge", IntSLT: "slt", IntSLE: "sle",
}

func (p IntPredicate) String() string {
	if s, ok := intPredNames[p]; ok {
		return s
	}
	return "badpred"
}

// RealPredicate is an fcmp condition code.
type RealPredicate int

const (
	RealPredicateFalse RealPredicate = iota
	RealOEQ
	RealOGT
	RealOGE
	RealOLT
	RealOLE
	RealONE
	RealORD
	RealUNO
	RealUEQ
	RealUGT
	RealUGE
	RealULT
	RealULE
	RealUNE
	RealPredicateTrue
)

var realPredNames = map[RealPredicate]string{
	RealPredicateFalse: "false", RealOEQ: "oeq", RealOGT: "ogt",
	RealOGE: "oge", RealOLT: "olt", RealOLE: "ole", RealONE: "one",
	RealORD: "ord", RealUNO: "uno", RealUEQ: "ueq", RealUGT: "ugt",
	RealUGE: "uge", RealULT: "ult", RealULE: "ule", RealUNE: "une",
	RealPredicateTrue: "true",
}

func (p RealPredicate) String() string {
	if s, ok := realPredNames[p]; ok {
		return s
	}
	return "badpred"
}

// AtomicOrdering constrains memory ordering of atomic operations.
type AtomicOrdering int

const (
	OrderingNotAtomic AtomicOrdering = iota
	OrderingUnordered
	OrderingMonotonic
	_
	OrderingAcquire
	OrderingRelease
	OrderingAcquireRelease
	OrderingSequentiallyConsistent
)

func (o AtomicOrdering) String() string {
	switch o {
	case OrderingNotAtomic:
		return "not_atomic"
	case OrderingUnordered:
		return "unordered"
	case OrderingMonotonic:
		return "monotonic"
	case OrderingAcquire:
		return "acquire"
	case OrderingRelease:
		return "release"
	case OrderingAcquireRelease:
		return "acq_rel"
	case OrderingSequentiallyConsistent:
		return "seq_cst"
	default:
		return "unknown"
	}
}

// AtomicRMWBinOp selects the operation of an atomicrmw instruction.
type AtomicRMWBinOp int

const (
	AtomicRMWXchg AtomicRMWBinOp = iota
	AtomicRMWAdd
	AtomicRMWSub
	AtomicRMWAnd
	AtomicRMWNand
	AtomicRMWOr
	AtomicRMWXor
	AtomicRMWMax
	AtomicRMWMin
	AtomicRMWUMax
	AtomicRMWUMin
)

var rmwNames = map[AtomicRMWBinOp]string{
	AtomicRMWXchg: "xchg", AtomicRMWAdd: "add", AtomicRMWSub: "sub",
	AtomicRMWAnd: "and", AtomicRMWNand: "nand", AtomicRMWOr: "or",
	AtomicRMWXor: "xor", AtomicRMWMax: "max", AtomicRMWMin: "min",
	AtomicRMWUMax: "umax", AtomicRMWUMin: "umin",
}

func (o AtomicRMWBinOp) String() string {
	if s, ok := rmwNames[o]; ok {
		return s
	}
	return "unknown"
}

// TailCallKind marks the tail-call disposition of a call instruction.
type TailCallKind int

const (
	TailCallKindNone TailCallKind = iota
	TailCallKindTail
	TailCallKindMustTail
	TailCallKindNoTail
)

func (k TailCallKind) String() string {
	switch k {
	case TailCallKindNone:
		return "none"
	case TailCallKindTail:
		return "tail"
	case TailCallKindMustTail:
		return "musttail"
	case TailCallKindNoTail:
		return "notail"
	default:
		return "unknown"
	}
}

// Linkage of a global value.
type Linkage int

const (
	ExternalLinkage Linkage = iota
	AvailableExternallyLinkage
	LinkOnceAnyLinkage
	LinkOnceODRLinkage
	WeakAnyLinkage
	WeakODRLinkage
	AppendingLinkage
	InternalLinkage
	PrivateLinkage
	ExternalWeakLinkage
	CommonLinkage
)

// UnnamedAddr of a global value.
type UnnamedAddr int

const (
	NoUnnamedAddr UnnamedAddr = iota
	LocalUnnamedAddr
	GlobalUnnamedAddr
)

// Visibility of a global value.
type Visibility int

const (
	DefaultVisibility Visibility = iota
	HiddenVisibility
	ProtectedVisibility
)

// ComdatSelectionKind selects how a comdat resolves.
type ComdatSelectionKind int

const (
	AnyComdatSelectionKind ComdatSelectionKind = iota
	ExactMatchComdatSelectionKind
	LargestComdatSelectionKind
	NoDeduplicateComdatSelectionKind
	SameSizeComdatSelectionKind
)
