package ir

import "github.com/wippyai/ir-bindings/native"

// The kind and flag enums are shared with the native boundary. Aliasing
// them keeps one source of truth for numbering while letting callers stay
// entirely inside this package.
type (
	TypeKind            = native.TypeKind
	ValueKind           = native.ValueKind
	Opcode              = native.Opcode
	IntPredicate        = native.IntPredicate
	RealPredicate       = native.RealPredicate
	AtomicOrdering      = native.AtomicOrdering
	AtomicRMWBinOp      = native.AtomicRMWBinOp
	TailCallKind        = native.TailCallKind
	Linkage             = native.Linkage
	UnnamedAddr         = native.UnnamedAddr
	Visibility          = native.Visibility
	ComdatSelectionKind = native.ComdatSelectionKind
)

const (
	VoidTypeKind     = native.VoidTypeKind
	HalfTypeKind     = native.HalfTypeKind
	FloatTypeKind    = native.FloatTypeKind
	DoubleTypeKind   = native.DoubleTypeKind
	IntegerTypeKind  = native.IntegerTypeKind
	FunctionTypeKind = native.FunctionTypeKind
	StructTypeKind   = native.StructTypeKind
	ArrayTypeKind    = native.ArrayTypeKind
	PointerTypeKind  = native.PointerTypeKind
	VectorTypeKind   = native.VectorTypeKind
	MetadataTypeKind = native.MetadataTypeKind
	LabelTypeKind    = native.LabelTypeKind
	TokenTypeKind    = native.TokenTypeKind
)

const (
	ArgumentValueKind              = native.ArgumentValueKind
	BasicBlockValueKind            = native.BasicBlockValueKind
	FunctionValueKind              = native.FunctionValueKind
	GlobalVariableValueKind        = native.GlobalVariableValueKind
	GlobalAliasValueKind           = native.GlobalAliasValueKind
	GlobalIFuncValueKind           = native.GlobalIFuncValueKind
	ConstantIntValueKind           = native.ConstantIntValueKind
	ConstantFPValueKind            = native.ConstantFPValueKind
	ConstantArrayValueKind         = native.ConstantArrayValueKind
	ConstantDataArrayValueKind     = native.ConstantDataArrayValueKind
	ConstantStructValueKind        = native.ConstantStructValueKind
	ConstantPointerNullValueKind   = native.ConstantPointerNullValueKind
	ConstantAggregateZeroValueKind = native.ConstantAggregateZeroValueKind
	UndefValueValueKind            = native.UndefValueValueKind
	PoisonValueValueKind           = native.PoisonValueValueKind
	InstructionValueKind           = native.InstructionValueKind
	InlineAsmValueKind             = native.InlineAsmValueKind
	MetadataAsValueValueKind       = native.MetadataAsValueValueKind
)

const (
	Ret            = native.Ret
	Br             = native.Br
	Switch         = native.Switch
	IndirectBr     = native.IndirectBr
	Invoke         = native.Invoke
	Unreachable    = native.Unreachable
	CallBr         = native.CallBr
	FNeg           = native.FNeg
	Add            = native.Add
	FAdd           = native.FAdd
	Sub            = native.Sub
	FSub           = native.FSub
	Mul            = native.Mul
	FMul           = native.FMul
	UDiv           = native.UDiv
	SDiv           = native.SDiv
	FDiv           = native.FDiv
	URem           = native.URem
	SRem           = native.SRem
	FRem           = native.FRem
	Shl            = native.Shl
	LShr           = native.LShr
	AShr           = native.AShr
	And            = native.And
	Or             = native.Or
	Xor            = native.Xor
	Alloca         = native.Alloca
	Load           = native.Load
	Store          = native.Store
	GetElementPtr  = native.GetElementPtr
	Trunc          = native.Trunc
	ZExt           = native.ZExt
	SExt           = native.SExt
	FPToUI         = native.FPToUI
	FPToSI         = native.FPToSI
	UIToFP         = native.UIToFP
	SIToFP         = native.SIToFP
	FPTrunc        = native.FPTrunc
	FPExt          = native.FPExt
	PtrToInt       = native.PtrToInt
	IntToPtr       = native.IntToPtr
	BitCast        = native.BitCast
	AddrSpaceCast  = native.AddrSpaceCast
	ICmp           = native.ICmp
	FCmp           = native.FCmp
	PHI            = native.PHI
	Call           = native.Call
	Select         = native.Select
	ExtractElement = native.ExtractElement
	InsertElement  = native.InsertElement
	ShuffleVector  = native.ShuffleVector
	ExtractValue   = native.ExtractValue
	InsertValue    = native.InsertValue
	Freeze         = native.Freeze
	Fence          = native.Fence
	AtomicCmpXchg  = native.AtomicCmpXchg
	AtomicRMW      = native.AtomicRMW
	Resume         = native.Resume
	LandingPad     = native.LandingPad
	CleanupRet     = native.CleanupRet
	CatchRet       = native.CatchRet
	CatchPad       = native.CatchPad
	CleanupPad     = native.CleanupPad
	CatchSwitch    = native.CatchSwitch
)

const (
	IntEQ  = native.IntEQ
	IntNE  = native.IntNE
	IntUGT = native.IntUGT
	IntUGE = native.IntUGE
	IntULT = native.IntULT
	IntULE = native.IntULE
	IntSGT = native.IntSGT
	IntSGE = native.IntSGE
	IntSLT = native.IntSLT
	IntSLE = native.IntSLE
)

const (
	RealPredicateFalse = native.RealPredicateFalse
	RealOEQ            = native.RealOEQ
	RealOGT            = native.RealOGT
	RealOGE            = native.RealOGE
	RealOLT            = native.RealOLT
	RealOLE            = native.RealOLE
	RealONE            = native.RealONE
	RealORD            = native.RealORD
	RealUNO            = native.RealUNO
	RealUEQ            = native.RealUEQ
	RealUGT            = native.RealUGT
	RealUGE            = native.RealUGE
	RealULT            = native.RealULT
	RealULE            = native.RealULE
	RealUNE            = native.RealUNE
	RealPredicateTrue  = native.RealPredicateTrue
)

const (
	OrderingNotAtomic              = native.OrderingNotAtomic
	OrderingUnordered              = native.OrderingUnordered
	OrderingMonotonic              = native.OrderingMonotonic
	OrderingAcquire                = native.OrderingAcquire
	OrderingRelease                = native.OrderingRelease
	OrderingAcquireRelease         = native.OrderingAcquireRelease
	OrderingSequentiallyConsistent = native.OrderingSequentiallyConsistent
)

const (
	AtomicRMWXchg = native.AtomicRMWXchg
	AtomicRMWAdd  = native.AtomicRMWAdd
	AtomicRMWSub  = native.AtomicRMWSub
	AtomicRMWAnd  = native.AtomicRMWAnd
	AtomicRMWNand = native.AtomicRMWNand
	AtomicRMWOr   = native.AtomicRMWOr
	AtomicRMWXor  = native.AtomicRMWXor
	AtomicRMWMax  = native.AtomicRMWMax
	AtomicRMWMin  = native.AtomicRMWMin
	AtomicRMWUMax = native.AtomicRMWUMax
	AtomicRMWUMin = native.AtomicRMWUMin
)

const (
	TailCallKindNone     = native.TailCallKindNone
	TailCallKindTail     = native.TailCallKindTail
	TailCallKindMustTail = native.TailCallKindMustTail
	TailCallKindNoTail   = native.TailCallKindNoTail
)

const (
	ExternalLinkage            = native.ExternalLinkage
	AvailableExternallyLinkage = native.AvailableExternallyLinkage
	LinkOnceAnyLinkage         = native.LinkOnceAnyLinkage
	LinkOnceODRLinkage         = native.LinkOnceODRLinkage
	WeakAnyLinkage             = native.WeakAnyLinkage
	WeakODRLinkage             = native.WeakODRLinkage
	AppendingLinkage           = native.AppendingLinkage
	InternalLinkage            = native.InternalLinkage
	PrivateLinkage             = native.PrivateLinkage
	ExternalWeakLinkage        = native.ExternalWeakLinkage
	CommonLinkage              = native.CommonLinkage
)

const (
	NoUnnamedAddr     = native.NoUnnamedAddr
	LocalUnnamedAddr  = native.LocalUnnamedAddr
	GlobalUnnamedAddr = native.GlobalUnnamedAddr
)

const (
	DefaultVisibility   = native.DefaultVisibility
	HiddenVisibility    = native.HiddenVisibility
	ProtectedVisibility = native.ProtectedVisibility
)

const (
	AnyComdatSelectionKind           = native.AnyComdatSelectionKind
	ExactMatchComdatSelectionKind    = native.ExactMatchComdatSelectionKind
	LargestComdatSelectionKind       = native.LargestComdatSelectionKind
	NoDeduplicateComdatSelectionKind = native.NoDeduplicateComdatSelectionKind
	SameSizeComdatSelectionKind      = native.SameSizeComdatSelectionKind
)

// AttributeFunctionIndex selects the function-level attribute slot; 0 is
// the return slot, 1..n the parameters.
const AttributeFunctionIndex = native.AttributeFunctionIndex

// Opcode class predicates used by the guarded flag accessors.

func isOverflowingBinOp(op Opcode) bool {
	switch op {
	case Add, Sub, Mul, Shl:
		return true
	}
	return false
}

func isExactBinOp(op Opcode) bool {
	switch op {
	case UDiv, SDiv, LShr, AShr:
		return true
	}
	return false
}

func isAtomicMemOp(op Opcode) bool {
	switch op {
	case Load, Store, AtomicRMW, Fence:
		return true
	}
	return false
}

func isCallSite(op Opcode) bool {
	switch op {
	case Call, Invoke, CallBr:
		return true
	}
	return false
}
