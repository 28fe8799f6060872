package native

import (
	"fmt"
	"strings"
)

type rawType struct {
	ctx  *rawContext
	kind TypeKind

	width     int // integer
	addrspace int // pointer

	name   string // named struct
	fields []*rawType
	packed bool
	opaque bool

	params []*rawType // function
	ret    *rawType
	vararg bool

	elem   *rawType // array, vector
	length int
}

func (c *rawContext) singleton(slot **rawType, kind TypeKind) *rawType {
	if *slot == nil {
		*slot = &rawType{ctx: c, kind: kind}
	}
	return *slot
}

// VoidTypeInContext returns the void type.
func VoidTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.voidTy, VoidTypeKind) }

// HalfTypeInContext returns the 16-bit float type.
func HalfTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.halfTy, HalfTypeKind) }

// FloatTypeInContext returns the 32-bit float type.
func FloatTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.floatTy, FloatTypeKind) }

// DoubleTypeInContext returns the 64-bit float type.
func DoubleTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.doubleTy, DoubleTypeKind) }

// LabelTypeInContext returns the label type.
func LabelTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.labelTy, LabelTypeKind) }

// TokenTypeInContext returns the token type.
func TokenTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.tokenTy, TokenTypeKind) }

// MetadataTypeInContext returns the metadata type.
func MetadataTypeInContext(c ContextRef) TypeRef { return c.singleton(&c.metadataTy, MetadataTypeKind) }

// IntTypeInContext returns the integer type of the given bit width.
// Types are interned per context.
func IntTypeInContext(c ContextRef, width int) TypeRef {
	if t, ok := c.intTys[width]; ok {
		return t
	}
	t := &rawType{ctx: c, kind: IntegerTypeKind, width: width}
	c.intTys[width] = t
	return t
}

// PointerTypeInContext returns the opaque pointer type in an address space.
func PointerTypeInContext(c ContextRef, addrspace int) TypeRef {
	if t, ok := c.ptrTys[addrspace]; ok {
		return t
	}
	t := &rawType{ctx: c, kind: PointerTypeKind, addrspace: addrspace}
	c.ptrTys[addrspace] = t
	return t
}

// StructTypeInContext creates an anonymous struct type.
func StructTypeInContext(c ContextRef, fields []TypeRef, packed bool) TypeRef {
	return &rawType{
		ctx:    c,
		kind:   StructTypeKind,
		fields: append([]*rawType(nil), fields...),
		packed: packed,
	}
}

// StructCreateNamed creates an opaque named struct type.
func StructCreateNamed(c ContextRef, name []byte) TypeRef {
	return &rawType{ctx: c, kind: StructTypeKind, name: string(name), opaque: true}
}

// StructSetBody fills in the body of a named struct. Unchecked.
func StructSetBody(t TypeRef, fields []TypeRef, packed bool) {
	t.fields = append([]*rawType(nil), fields...)
	t.packed = packed
	t.opaque = false
}

// FunctionType creates a function type.
func FunctionType(ret TypeRef, params []TypeRef, vararg bool) TypeRef {
	return &rawType{
		ctx:    ret.ctx,
		kind:   FunctionTypeKind,
		ret:    ret,
		params: append([]*rawType(nil), params...),
		vararg: vararg,
	}
}

// ArrayType creates an array type.
func ArrayType(elem TypeRef, length int) TypeRef {
	return &rawType{ctx: elem.ctx, kind: ArrayTypeKind, elem: elem, length: length}
}

// VectorType creates a fixed vector type.
func VectorType(elem TypeRef, length int) TypeRef {
	return &rawType{ctx: elem.ctx, kind: VectorTypeKind, elem: elem, length: length}
}

// GetTypeKind returns the type's kind tag.
func GetTypeKind(t TypeRef) TypeKind { return t.kind }

// GetTypeContext returns the owning context.
func GetTypeContext(t TypeRef) ContextRef { return t.ctx }

// GetIntTypeWidth returns the bit width. Unchecked: garbage on non-integers.
func GetIntTypeWidth(t TypeRef) int { return t.width }

// GetPointerAddressSpace returns the address space. Unchecked.
func GetPointerAddressSpace(t TypeRef) int { return t.addrspace }

// GetStructName returns the struct name bytes, empty for literal structs.
func GetStructName(t TypeRef) []byte { return []byte(t.name) }

// CountStructElementTypes returns the field count. Unchecked.
func CountStructElementTypes(t TypeRef) int { return len(t.fields) }

// StructGetTypeAtIndex returns field i. Unchecked.
func StructGetTypeAtIndex(t TypeRef, i int) TypeRef { return t.fields[i] }

// IsPackedStruct reports struct packing. Unchecked.
func IsPackedStruct(t TypeRef) bool { return t.packed }

// IsOpaqueStruct reports whether the struct has no body. Unchecked.
func IsOpaqueStruct(t TypeRef) bool { return t.opaque }

// GetArrayLength returns the element count. Unchecked.
func GetArrayLength(t TypeRef) int { return t.length }

// GetVectorSize returns the lane count. Unchecked.
func GetVectorSize(t TypeRef) int { return t.length }

// GetElementType returns the element type of arrays and vectors. Unchecked.
func GetElementType(t TypeRef) TypeRef { return t.elem }

// GetReturnType returns the function return type. Unchecked.
func GetReturnType(t TypeRef) TypeRef { return t.ret }

// CountParamTypes returns the parameter count. Unchecked.
func CountParamTypes(t TypeRef) int { return len(t.params) }

// GetParamTypes returns the parameter types. Unchecked.
func GetParamTypes(t TypeRef) []TypeRef {
	return append([]TypeRef(nil), t.params...)
}

// IsFunctionVarArg reports varargs-ness. Unchecked.
func IsFunctionVarArg(t TypeRef) bool { return t.vararg }

// PrintTypeToString renders a type in IR syntax.
func PrintTypeToString(t TypeRef) []byte {
	return []byte(typeString(t))
}

func typeString(t *rawType) string {
	switch t.kind {
	case VoidTypeKind:
		return "void"
	case HalfTypeKind:
		return "half"
	case FloatTypeKind:
		return "float"
	case DoubleTypeKind:
		return "double"
	case LabelTypeKind:
		return "label"
	case TokenTypeKind:
		return "token"
	case MetadataTypeKind:
		return "metadata"
	case IntegerTypeKind:
		return fmt.Sprintf("i%d", t.width)
	case PointerTypeKind:
		if t.addrspace != 0 {
			return fmt.Sprintf("ptr addrspace(%d)", t.addrspace)
		}
		return "ptr"
	case ArrayTypeKind:
		return fmt.Sprintf("[%d x %s]", t.length, typeString(t.elem))
	case VectorTypeKind:
		return fmt.Sprintf("<%d x %s>", t.length, typeString(t.elem))
	case StructTypeKind:
		if t.name != "" {
			return "%" + t.name
		}
		var b strings.Builder
		if t.packed {
			b.WriteByte('<')
		}
		b.WriteString("{ ")
		for i, f := range t.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(typeString(f))
		}
		b.WriteString(" }")
		if t.packed {
			b.WriteByte('>')
		}
		return b.String()
	case FunctionTypeKind:
		var b strings.Builder
		b.WriteString(typeString(t.ret))
		b.WriteString(" (")
		for i, p := range t.params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(typeString(p))
		}
		if t.vararg {
			if len(t.params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "badtype"
	}
}
