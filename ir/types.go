package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Type wraps a native type reference. Types are owned by their context and
// become unusable once it is disposed.
type Type struct {
	tok *token
	ref native.TypeRef
}

func wrapType(tok *token, ref native.TypeRef) *Type {
	if ref == nil {
		return nil
	}
	return &Type{tok: tok, ref: ref}
}

// expectKind guards liveness and the type's kind tag.
func (t *Type) expectKind(api, expected string, kinds ...TypeKind) error {
	if err := ensureHandle(t.tok, api); err != nil {
		return err
	}
	got := native.GetTypeKind(t.ref)
	for _, want := range kinds {
		if got == want {
			return nil
		}
	}
	return errors.WrongKind(api, expected)
}

// Kind returns the type's kind tag.
func (t *Type) Kind() (TypeKind, error) {
	if err := ensureHandle(t.tok, "type_kind"); err != nil {
		return 0, err
	}
	return native.GetTypeKind(t.ref), nil
}

// Equal reports handle identity: both wrappers name the same native type.
func (t *Type) Equal(o *Type) bool {
	return o != nil && t.ref == o.ref
}

// String renders the type in IR syntax.
func (t *Type) String() (string, error) {
	if err := ensureHandle(t.tok, "print_type"); err != nil {
		return "", err
	}
	return string(native.PrintTypeToString(t.ref)), nil
}

// IntWidth returns the bit width of an integer type.
func (t *Type) IntWidth() (int, error) {
	const api = "int_width"
	if err := t.expectKind(api, "an integer type", IntegerTypeKind); err != nil {
		return 0, err
	}
	return native.GetIntTypeWidth(t.ref), nil
}

// PointerAddressSpace returns the address space of a pointer type.
func (t *Type) PointerAddressSpace() (int, error) {
	const api = "pointer_address_space"
	if err := t.expectKind(api, "a pointer type", PointerTypeKind); err != nil {
		return 0, err
	}
	return native.GetPointerAddressSpace(t.ref), nil
}

// StructName returns the name of a named struct, empty for literals.
func (t *Type) StructName() (string, error) {
	const api = "struct_name"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return "", err
	}
	return string(native.GetStructName(t.ref)), nil
}

// StructElementCount returns the field count of a struct type.
func (t *Type) StructElementCount() (int, error) {
	const api = "struct_element_count"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return 0, err
	}
	return native.CountStructElementTypes(t.ref), nil
}

// StructElementType returns field i of a struct type.
func (t *Type) StructElementType(i int) (*Type, error) {
	const api = "struct_element_type"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_elements", native.CountStructElementTypes(t.ref)); err != nil {
		return nil, err
	}
	return wrapType(t.tok, native.StructGetTypeAtIndex(t.ref, i)), nil
}

// SetBody fills in the body of a named struct type.
func (t *Type) SetBody(fields []*Type, packed bool) error {
	const api = "struct_set_body"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return err
	}
	refs, err := typeRefs(api, fields)
	if err != nil {
		return err
	}
	native.StructSetBody(t.ref, refs, packed)
	return nil
}

// IsPacked reports struct packing.
func (t *Type) IsPacked() (bool, error) {
	const api = "is_packed"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return false, err
	}
	return native.IsPackedStruct(t.ref), nil
}

// IsOpaque reports whether a named struct has no body yet.
func (t *Type) IsOpaque() (bool, error) {
	const api = "is_opaque"
	if err := t.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return false, err
	}
	return native.IsOpaqueStruct(t.ref), nil
}

// ArrayLength returns the element count of an array type.
func (t *Type) ArrayLength() (int, error) {
	const api = "array_length"
	if err := t.expectKind(api, "an array type", ArrayTypeKind); err != nil {
		return 0, err
	}
	return native.GetArrayLength(t.ref), nil
}

// VectorSize returns the lane count of a vector type.
func (t *Type) VectorSize() (int, error) {
	const api = "vector_size"
	if err := t.expectKind(api, "a vector type", VectorTypeKind); err != nil {
		return 0, err
	}
	return native.GetVectorSize(t.ref), nil
}

// ElementType returns the element type of an array or vector type.
func (t *Type) ElementType() (*Type, error) {
	const api = "element_type"
	if err := t.expectKind(api, "an array or vector type", ArrayTypeKind, VectorTypeKind); err != nil {
		return nil, err
	}
	return wrapType(t.tok, native.GetElementType(t.ref)), nil
}

// ReturnType returns the return type of a function type.
func (t *Type) ReturnType() (*Type, error) {
	const api = "return_type"
	if err := t.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return nil, err
	}
	return wrapType(t.tok, native.GetReturnType(t.ref)), nil
}

// ParamCount returns the parameter count of a function type.
func (t *Type) ParamCount() (int, error) {
	const api = "param_count"
	if err := t.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return 0, err
	}
	return native.CountParamTypes(t.ref), nil
}

// ParamTypes returns the parameter types of a function type in order.
func (t *Type) ParamTypes() ([]*Type, error) {
	const api = "param_types"
	if err := t.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return nil, err
	}
	refs := native.GetParamTypes(t.ref)
	out := make([]*Type, len(refs))
	for i, r := range refs {
		out[i] = wrapType(t.tok, r)
	}
	return out, nil
}

// IsVarArg reports whether a function type takes varargs.
func (t *Type) IsVarArg() (bool, error) {
	const api = "is_vararg"
	if err := t.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return false, err
	}
	return native.IsFunctionVarArg(t.ref), nil
}

// FunctionType creates a function type from a return type and parameters.
func FunctionType(ret *Type, params []*Type, vararg bool) (*Type, error) {
	const api = "function_type"
	if err := ensureHandle(ret.tok, api); err != nil {
		return nil, err
	}
	refs, err := typeRefs(api, params)
	if err != nil {
		return nil, err
	}
	return wrapType(ret.tok, native.FunctionType(ret.ref, refs, vararg)), nil
}

// ArrayType creates an array type over an element type.
func ArrayType(elem *Type, length int) (*Type, error) {
	const api = "array_type"
	if err := ensureHandle(elem.tok, api); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, errors.Assertion(api, "length %d out of range", length)
	}
	return wrapType(elem.tok, native.ArrayType(elem.ref, length)), nil
}

// VectorType creates a fixed vector type over an element type.
func VectorType(elem *Type, length int) (*Type, error) {
	const api = "vector_type"
	if err := ensureHandle(elem.tok, api); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, errors.Assertion(api, "length %d out of range", length)
	}
	return wrapType(elem.tok, native.VectorType(elem.ref, length)), nil
}
