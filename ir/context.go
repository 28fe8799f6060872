package ir

import (
	"sync"

	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// maxIntWidth is the largest supported integer bit width.
const maxIntWidth = 1 << 23

// Context owns types, constants, modules and builders. All wrappers minted
// through it share its validity token and die with it.
type Context struct {
	tok    *token
	node   *lifetimeNode
	ref    native.ContextRef
	global bool
}

// ContextManager holds a Context behind the Created -> Entered -> Disposed
// protocol.
type ContextManager struct {
	m   manager
	ctx *Context
}

// NewContext creates an unentered context manager.
func NewContext() *ContextManager {
	return &ContextManager{m: newManager("Context")}
}

// Enter creates the context. One-shot.
func (cm *ContextManager) Enter() (*Context, error) {
	if err := cm.m.enter("Context.Enter"); err != nil {
		return nil, err
	}
	cm.ctx = newContext()
	cm.m.node = cm.ctx.node
	return cm.ctx, nil
}

// Exit disposes the context and every resource derived from it.
func (cm *ContextManager) Exit() error {
	return cm.m.exit("Context.Exit")
}

// Dispose releases an unentered manager. After Enter, use Exit.
func (cm *ContextManager) Dispose() error {
	return cm.m.dispose("Context.Dispose")
}

// With runs fn inside an Enter/Exit pair, exiting on every path. The
// callback error wins over the exit error.
func (cm *ContextManager) With(fn func(*Context) error) error {
	ctx, err := cm.Enter()
	if err != nil {
		return err
	}
	err = fn(ctx)
	if xerr := cm.Exit(); err == nil {
		err = xerr
	}
	return err
}

func newContext() *Context {
	ref := native.ContextCreate()
	tok := newToken("context disposed", nil)
	ctx := &Context{tok: tok, ref: ref}
	ctx.node = newLifetimeNode(tok, func() { native.ContextDispose(ref) })
	return ctx
}

var (
	globalCtx     *Context
	globalCtxOnce sync.Once
)

// GlobalContext returns the process-wide shared context. It is created on
// first use and can never be disposed.
func GlobalContext() *Context {
	globalCtxOnce.Do(func() {
		globalCtx = newContext()
		globalCtx.global = true
	})
	return globalCtx
}

// Dispose releases the context and everything it owns. One-shot; the
// global context is not disposable.
func (c *Context) Dispose() error {
	if c.global {
		return errors.Assertion("dispose", "the global context cannot be disposed")
	}
	if !c.tok.live() {
		return errors.Memory("dispose", "Context has already been disposed")
	}
	c.node.dispose()
	return nil
}

// IsGlobal reports whether this is the shared global context.
func (c *Context) IsGlobal() bool { return c.global }

// Type factories. Types are owned by the context and interned where the
// native library interns them.

func (c *Context) typeFactory(api string, mk func() native.TypeRef) (*Type, error) {
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	return wrapType(c.tok, mk()), nil
}

// VoidType returns the void type.
func (c *Context) VoidType() (*Type, error) {
	return c.typeFactory("void_type", func() native.TypeRef { return native.VoidTypeInContext(c.ref) })
}

// HalfType returns the 16-bit float type.
func (c *Context) HalfType() (*Type, error) {
	return c.typeFactory("half_type", func() native.TypeRef { return native.HalfTypeInContext(c.ref) })
}

// FloatType returns the 32-bit float type.
func (c *Context) FloatType() (*Type, error) {
	return c.typeFactory("float_type", func() native.TypeRef { return native.FloatTypeInContext(c.ref) })
}

// DoubleType returns the 64-bit float type.
func (c *Context) DoubleType() (*Type, error) {
	return c.typeFactory("double_type", func() native.TypeRef { return native.DoubleTypeInContext(c.ref) })
}

// LabelType returns the label type.
func (c *Context) LabelType() (*Type, error) {
	return c.typeFactory("label_type", func() native.TypeRef { return native.LabelTypeInContext(c.ref) })
}

// TokenType returns the token type.
func (c *Context) TokenType() (*Type, error) {
	return c.typeFactory("token_type", func() native.TypeRef { return native.TokenTypeInContext(c.ref) })
}

// MetadataType returns the metadata type.
func (c *Context) MetadataType() (*Type, error) {
	return c.typeFactory("metadata_type", func() native.TypeRef { return native.MetadataTypeInContext(c.ref) })
}

// IntType returns the integer type of the given bit width.
func (c *Context) IntType(width int) (*Type, error) {
	if err := ensureOwner(c.tok, "int_type"); err != nil {
		return nil, err
	}
	if width < 1 || width > maxIntWidth {
		return nil, errors.Assertion("int_type", "bit width %d out of range (max=%d)", width, maxIntWidth)
	}
	return wrapType(c.tok, native.IntTypeInContext(c.ref, width)), nil
}

// Int1Type returns the 1-bit integer type.
func (c *Context) Int1Type() (*Type, error) { return c.IntType(1) }

// Int8Type returns the 8-bit integer type.
func (c *Context) Int8Type() (*Type, error) { return c.IntType(8) }

// Int16Type returns the 16-bit integer type.
func (c *Context) Int16Type() (*Type, error) { return c.IntType(16) }

// Int32Type returns the 32-bit integer type.
func (c *Context) Int32Type() (*Type, error) { return c.IntType(32) }

// Int64Type returns the 64-bit integer type.
func (c *Context) Int64Type() (*Type, error) { return c.IntType(64) }

// PointerType returns the opaque pointer type in an address space.
func (c *Context) PointerType(addressSpace int) (*Type, error) {
	if err := ensureOwner(c.tok, "pointer_type"); err != nil {
		return nil, err
	}
	if addressSpace < 0 {
		return nil, errors.Assertion("pointer_type", "address space %d out of range", addressSpace)
	}
	return wrapType(c.tok, native.PointerTypeInContext(c.ref, addressSpace)), nil
}

// StructType creates an anonymous struct type.
func (c *Context) StructType(fields []*Type, packed bool) (*Type, error) {
	if err := ensureOwner(c.tok, "struct_type"); err != nil {
		return nil, err
	}
	refs, err := typeRefs("struct_type", fields)
	if err != nil {
		return nil, err
	}
	return wrapType(c.tok, native.StructTypeInContext(c.ref, refs, packed)), nil
}

// NamedStructType creates an opaque named struct type; fill it in with
// SetBody.
func (c *Context) NamedStructType(name string) (*Type, error) {
	if err := ensureOwner(c.tok, "named_struct_type"); err != nil {
		return nil, err
	}
	return wrapType(c.tok, native.StructCreateNamed(c.ref, []byte(name))), nil
}

// Constant factories.

// ConstInt creates the integer constant of a type.
func (c *Context) ConstInt(ty *Type, value uint64, signExtend bool) (*Value, error) {
	const api = "const_int"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	if err := ty.expectKind(api, "an integer type", IntegerTypeKind); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstInt(ty.ref, value, signExtend)), nil
}

// ConstReal creates the floating-point constant of a type.
func (c *Context) ConstReal(ty *Type, value float64) (*Value, error) {
	const api = "const_real"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	if err := ty.expectKind(api, "a floating-point type", HalfTypeKind, FloatTypeKind, DoubleTypeKind); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstReal(ty.ref, value)), nil
}

// ConstNull returns the zero value of a type.
func (c *Context) ConstNull(ty *Type) (*Value, error) {
	if err := ensureOwner(c.tok, "const_null"); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, "const_null"); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstNull(ty.ref)), nil
}

// Undef returns the undefined value of a type.
func (c *Context) Undef(ty *Type) (*Value, error) {
	if err := ensureOwner(c.tok, "undef"); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, "undef"); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.GetUndef(ty.ref)), nil
}

// Poison returns the poison value of a type.
func (c *Context) Poison(ty *Type) (*Value, error) {
	if err := ensureOwner(c.tok, "poison"); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, "poison"); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.GetPoison(ty.ref)), nil
}

// ConstString creates a constant byte array, appending a NUL unless
// dontNullTerminate is set.
func (c *Context) ConstString(data []byte, dontNullTerminate bool) (*Value, error) {
	if err := ensureOwner(c.tok, "const_string"); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstStringInContext(c.ref, data, dontNullTerminate)), nil
}

// ConstArray creates a constant array with the given element type.
func (c *Context) ConstArray(elem *Type, vals []*Value) (*Value, error) {
	const api = "const_array"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(elem.tok, api); err != nil {
		return nil, err
	}
	refs, err := valueRefs(api, vals)
	if err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstArray(elem.ref, refs)), nil
}

// ConstStruct creates an anonymous constant struct.
func (c *Context) ConstStruct(vals []*Value, packed bool) (*Value, error) {
	const api = "const_struct"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	refs, err := valueRefs(api, vals)
	if err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstStructInContext(c.ref, refs, packed)), nil
}

// ConstNamedStruct creates a constant of a named struct type.
func (c *Context) ConstNamedStruct(ty *Type, vals []*Value) (*Value, error) {
	const api = "const_named_struct"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	if err := ty.expectKind(api, "a struct type", StructTypeKind); err != nil {
		return nil, err
	}
	refs, err := valueRefs(api, vals)
	if err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.ConstNamedStruct(ty.ref, refs)), nil
}

// Metadata.

// MDString creates a metadata string.
func (c *Context) MDString(s string) (*Value, error) {
	if err := ensureOwner(c.tok, "md_string"); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.MDStringInContext(c.ref, []byte(s))), nil
}

// MDNode creates a metadata node over the given operands.
func (c *Context) MDNode(ops []*Value) (*Value, error) {
	const api = "md_node"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	refs, err := valueRefs(api, ops)
	if err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.MDNodeInContext(c.ref, refs)), nil
}

// Attributes.

// EnumAttributeKindForName interns an enum attribute name.
func (c *Context) EnumAttributeKindForName(name string) (int, error) {
	if err := ensureOwner(c.tok, "enum_attribute_kind_for_name"); err != nil {
		return 0, err
	}
	return native.GetEnumAttributeKindForName(c.ref, []byte(name)), nil
}

// CreateEnumAttribute creates an enum attribute.
func (c *Context) CreateEnumAttribute(kindID int, val uint64) (*Attribute, error) {
	if err := ensureOwner(c.tok, "create_enum_attribute"); err != nil {
		return nil, err
	}
	return &Attribute{tok: c.tok, ref: native.CreateEnumAttribute(c.ref, kindID, val)}, nil
}

// CreateStringAttribute creates a string attribute.
func (c *Context) CreateStringAttribute(kind, value string) (*Attribute, error) {
	if err := ensureOwner(c.tok, "create_string_attribute"); err != nil {
		return nil, err
	}
	return &Attribute{tok: c.tok, ref: native.CreateStringAttribute(c.ref, []byte(kind), []byte(value))}, nil
}

// CreateOperandBundle packages a tag with bundle arguments.
func (c *Context) CreateOperandBundle(tag string, args []*Value) (*OperandBundle, error) {
	const api = "create_operand_bundle"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	refs, err := valueRefs(api, args)
	if err != nil {
		return nil, err
	}
	return &OperandBundle{tok: c.tok, ref: native.CreateOperandBundle([]byte(tag), refs)}, nil
}

// SyncScopeID interns a synchronization scope name.
func (c *Context) SyncScopeID(name string) (int, error) {
	if err := ensureOwner(c.tok, "sync_scope_id"); err != nil {
		return 0, err
	}
	return native.GetSyncScopeID(c.ref, []byte(name)), nil
}

// InlineAsm creates an inline assembly value callable through the given
// signature.
func (c *Context) InlineAsm(fnTy *Type, asm, constraints string, hasSideEffects, isAlignStack bool) (*Value, error) {
	const api = "inline_asm"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	if err := fnTy.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return nil, err
	}
	return wrapValue(c.tok, native.GetInlineAsm(fnTy.ref, []byte(asm), []byte(constraints), hasSideEffects, isAlignStack)), nil
}

// typeRefs unwraps a type slice, guarding each element.
func typeRefs(api string, types []*Type) ([]native.TypeRef, error) {
	refs := make([]native.TypeRef, len(types))
	for i, t := range types {
		if err := ensureHandle(t.tok, api); err != nil {
			return nil, err
		}
		refs[i] = t.ref
	}
	return refs, nil
}

// valueRefs unwraps a value slice, guarding each element.
func valueRefs(api string, vals []*Value) ([]native.ValueRef, error) {
	refs := make([]native.ValueRef, len(vals))
	for i, v := range vals {
		if err := ensureHandle(v.tok, api); err != nil {
			return nil, err
		}
		refs[i] = v.ref
	}
	return refs, nil
}
