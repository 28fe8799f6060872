package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Module owns global declarations and function bodies. It is owned by its
// context: disposing the context disposes the module, while disposing the
// module leaves the context usable. Wrappers minted through a module carry
// the module's token.
type Module struct {
	tok  *token
	node *lifetimeNode
	ref  native.ModuleRef
	ctx  *Context
}

// ModuleManager holds a Module behind the Created -> Entered -> Disposed
// protocol.
type ModuleManager struct {
	m    manager
	ctx  *Context
	name string
	mod  *Module
}

// NewModule creates a context-owned module. Dispose it early with
// Module.Dispose, or let the context take it down.
func (c *Context) NewModule(name string) (*Module, error) {
	if err := ensureOwner(c.tok, "create_module"); err != nil {
		return nil, err
	}
	return c.adoptModule(native.ModuleCreateWithNameInContext([]byte(name), c.ref)), nil
}

func (c *Context) adoptModule(ref native.ModuleRef) *Module {
	tok := newToken("module disposed", c.tok)
	m := &Module{tok: tok, ref: ref, ctx: c}
	m.node = newLifetimeNode(tok, func() { native.DisposeModule(ref) })
	c.node.adopt(m.node)
	return m
}

// NewModuleManager creates an unentered manager for a module in this
// context.
func (c *Context) NewModuleManager(name string) *ModuleManager {
	return &ModuleManager{m: newManager("Module"), ctx: c, name: name}
}

// Enter creates the module. One-shot.
func (mm *ModuleManager) Enter() (*Module, error) {
	if err := ensureOwner(mm.ctx.tok, "Module.Enter"); err != nil {
		return nil, err
	}
	if err := mm.m.enter("Module.Enter"); err != nil {
		return nil, err
	}
	mod, err := mm.ctx.NewModule(mm.name)
	if err != nil {
		return nil, err
	}
	mm.mod = mod
	mm.m.node = mod.node
	return mod, nil
}

// Exit disposes the module and every wrapper derived from it.
func (mm *ModuleManager) Exit() error {
	return mm.m.exit("Module.Exit")
}

// Dispose releases an unentered manager. After Enter, use Exit.
func (mm *ModuleManager) Dispose() error {
	return mm.m.dispose("Module.Dispose")
}

// With runs fn inside an Enter/Exit pair, exiting on every path.
func (mm *ModuleManager) With(fn func(*Module) error) error {
	mod, err := mm.Enter()
	if err != nil {
		return err
	}
	err = fn(mod)
	if xerr := mm.Exit(); err == nil {
		err = xerr
	}
	return err
}

// Dispose releases the module. One-shot; the owning context stays usable.
func (m *Module) Dispose() error {
	if m.tok.dead {
		return errors.Memory("dispose", "Module has already been disposed")
	}
	if err := ensureOwner(m.tok, "dispose"); err != nil {
		return err
	}
	m.node.dispose()
	return nil
}

// Context returns the owning context.
func (m *Module) Context() *Context { return m.ctx }

// Identifier returns the module name bytes.
func (m *Module) Identifier() ([]byte, error) {
	if err := ensureOwner(m.tok, "get_identifier"); err != nil {
		return nil, err
	}
	return native.GetModuleIdentifier(m.ref), nil
}

// SetIdentifier renames the module.
func (m *Module) SetIdentifier(name []byte) error {
	if err := ensureOwner(m.tok, "set_identifier"); err != nil {
		return err
	}
	native.SetModuleIdentifier(m.ref, name)
	return nil
}

// DataLayout returns the data layout string.
func (m *Module) DataLayout() (string, error) {
	if err := ensureOwner(m.tok, "get_data_layout"); err != nil {
		return "", err
	}
	return string(native.GetDataLayoutStr(m.ref)), nil
}

// SetDataLayout sets the data layout string.
func (m *Module) SetDataLayout(layout string) error {
	if err := ensureOwner(m.tok, "set_data_layout"); err != nil {
		return err
	}
	native.SetDataLayout(m.ref, []byte(layout))
	return nil
}

// Target returns the target triple.
func (m *Module) Target() (string, error) {
	if err := ensureOwner(m.tok, "get_target"); err != nil {
		return "", err
	}
	return string(native.GetTarget(m.ref)), nil
}

// SetTarget sets the target triple.
func (m *Module) SetTarget(triple string) error {
	if err := ensureOwner(m.tok, "set_target"); err != nil {
		return err
	}
	native.SetTarget(m.ref, []byte(triple))
	return nil
}

// AddFunction declares a function with the given signature.
func (m *Module) AddFunction(name string, fnTy *Type) (*Value, error) {
	const api = "add_function"
	if err := ensureOwner(m.tok, api); err != nil {
		return nil, err
	}
	if err := fnTy.expectKind(api, "a function type", FunctionTypeKind); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.AddFunction(m.ref, []byte(name), fnTy.ref)), nil
}

// NamedFunction looks a function up by name, nil when absent.
func (m *Module) NamedFunction(name string) (*Value, error) {
	if err := ensureOwner(m.tok, "get_named_function"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetNamedFunction(m.ref, []byte(name))), nil
}

// FirstFunction returns the first function, nil when none.
func (m *Module) FirstFunction() (*Value, error) {
	if err := ensureOwner(m.tok, "first_function"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetFirstFunction(m.ref)), nil
}

// LastFunction returns the last function, nil when none.
func (m *Module) LastFunction() (*Value, error) {
	if err := ensureOwner(m.tok, "last_function"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetLastFunction(m.ref)), nil
}

// AddGlobal adds a global variable declaration of the given value type.
func (m *Module) AddGlobal(ty *Type, name string) (*Value, error) {
	const api = "add_global"
	if err := ensureOwner(m.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(ty.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.AddGlobal(m.ref, ty.ref, []byte(name))), nil
}

// NamedGlobal looks a global up by name, nil when absent.
func (m *Module) NamedGlobal(name string) (*Value, error) {
	if err := ensureOwner(m.tok, "get_named_global"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetNamedGlobal(m.ref, []byte(name))), nil
}

// FirstGlobal returns the first global, nil when none.
func (m *Module) FirstGlobal() (*Value, error) {
	if err := ensureOwner(m.tok, "first_global"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetFirstGlobal(m.ref)), nil
}

// LastGlobal returns the last global, nil when none.
func (m *Module) LastGlobal() (*Value, error) {
	if err := ensureOwner(m.tok, "last_global"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetLastGlobal(m.ref)), nil
}

// AddAlias adds a global alias for an aliasee.
func (m *Module) AddAlias(valueTy *Type, addressSpace int, aliasee *Value, name string) (*Value, error) {
	const api = "add_alias"
	if err := ensureOwner(m.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(valueTy.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(aliasee.tok, api); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.AddAlias(m.ref, valueTy.ref, addressSpace, aliasee.ref, []byte(name))), nil
}

// NamedAlias looks an alias up by name, nil when absent.
func (m *Module) NamedAlias(name string) (*Value, error) {
	if err := ensureOwner(m.tok, "get_named_alias"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetNamedGlobalAlias(m.ref, []byte(name))), nil
}

// FirstAlias returns the first alias, nil when none.
func (m *Module) FirstAlias() (*Value, error) {
	if err := ensureOwner(m.tok, "first_alias"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetFirstGlobalAlias(m.ref)), nil
}

// LastAlias returns the last alias, nil when none.
func (m *Module) LastAlias() (*Value, error) {
	if err := ensureOwner(m.tok, "last_alias"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetLastGlobalAlias(m.ref)), nil
}

// AddIFunc adds an ifunc backed by a resolver function.
func (m *Module) AddIFunc(name string, valueTy *Type, addressSpace int, resolver *Value) (*Value, error) {
	const api = "add_ifunc"
	if err := ensureOwner(m.tok, api); err != nil {
		return nil, err
	}
	if err := ensureHandle(valueTy.tok, api); err != nil {
		return nil, err
	}
	if err := resolver.expectKind(api, "a function", FunctionValueKind); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.AddGlobalIFunc(m.ref, []byte(name), valueTy.ref, addressSpace, resolver.ref)), nil
}

// NamedIFunc looks an ifunc up by name, nil when absent.
func (m *Module) NamedIFunc(name string) (*Value, error) {
	if err := ensureOwner(m.tok, "get_named_ifunc"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetNamedGlobalIFunc(m.ref, []byte(name))), nil
}

// FirstIFunc returns the first ifunc, nil when none.
func (m *Module) FirstIFunc() (*Value, error) {
	if err := ensureOwner(m.tok, "first_ifunc"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetFirstGlobalIFunc(m.ref)), nil
}

// LastIFunc returns the last ifunc, nil when none.
func (m *Module) LastIFunc() (*Value, error) {
	if err := ensureOwner(m.tok, "last_ifunc"); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.GetLastGlobalIFunc(m.ref)), nil
}

// Comdat is a named resolution group for globals.
type Comdat struct {
	tok *token
	ref native.ComdatRef
}

// GetOrInsertComdat returns the module's comdat of the given name,
// creating it on first use.
func (m *Module) GetOrInsertComdat(name string) (*Comdat, error) {
	if err := ensureOwner(m.tok, "get_or_insert_comdat"); err != nil {
		return nil, err
	}
	return &Comdat{tok: m.tok, ref: native.GetOrInsertComdat(m.ref, []byte(name))}, nil
}

// Name returns the comdat's name.
func (c *Comdat) Name() (string, error) {
	if err := ensureHandle(c.tok, "comdat_name"); err != nil {
		return "", err
	}
	return string(native.GetComdatName(c.ref)), nil
}

// SelectionKind returns the comdat's resolution kind.
func (c *Comdat) SelectionKind() (ComdatSelectionKind, error) {
	if err := ensureHandle(c.tok, "comdat_selection_kind"); err != nil {
		return 0, err
	}
	return native.GetComdatSelectionKind(c.ref), nil
}

// SetSelectionKind sets the comdat's resolution kind.
func (c *Comdat) SetSelectionKind(k ComdatSelectionKind) error {
	if err := ensureHandle(c.tok, "set_comdat_selection_kind"); err != nil {
		return err
	}
	native.SetComdatSelectionKind(c.ref, k)
	return nil
}

// NamedMetadata is a module-level named metadata node.
type NamedMetadata struct {
	tok *token
	ref native.NamedMDRef
}

// GetOrInsertNamedMetadata returns the named metadata node of the given
// name, creating it on first use.
func (m *Module) GetOrInsertNamedMetadata(name string) (*NamedMetadata, error) {
	if err := ensureOwner(m.tok, "get_or_insert_named_metadata"); err != nil {
		return nil, err
	}
	return &NamedMetadata{tok: m.tok, ref: native.GetOrInsertNamedMetadata(m.ref, []byte(name))}, nil
}

// NamedMetadata looks up a named metadata node, nil when absent.
func (m *Module) NamedMetadata(name string) (*NamedMetadata, error) {
	if err := ensureOwner(m.tok, "get_named_metadata"); err != nil {
		return nil, err
	}
	ref := native.GetNamedMetadata(m.ref, []byte(name))
	if ref == nil {
		return nil, nil
	}
	return &NamedMetadata{tok: m.tok, ref: ref}, nil
}

// NamedMetadataNames lists the module's named metadata in creation order.
func (m *Module) NamedMetadataNames() ([]string, error) {
	if err := ensureOwner(m.tok, "named_metadata_names"); err != nil {
		return nil, err
	}
	names := native.NamedMetadataNames(m.ref)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out, nil
}

// Name returns the node's name.
func (n *NamedMetadata) Name() (string, error) {
	if err := ensureHandle(n.tok, "named_metadata_name"); err != nil {
		return "", err
	}
	return string(native.GetNamedMetadataName(n.ref)), nil
}

// NumOperands returns the node's operand count.
func (n *NamedMetadata) NumOperands() (int, error) {
	if err := ensureHandle(n.tok, "named_metadata_num_operands"); err != nil {
		return 0, err
	}
	return native.GetNamedMetadataNumOperands(n.ref), nil
}

// Operands returns the node's operands in order.
func (n *NamedMetadata) Operands() ([]*Value, error) {
	if err := ensureHandle(n.tok, "named_metadata_operands"); err != nil {
		return nil, err
	}
	refs := native.GetNamedMetadataOperands(n.ref)
	out := make([]*Value, len(refs))
	for i, r := range refs {
		out[i] = wrapValue(n.tok, r)
	}
	return out, nil
}

// AddOperand appends a metadata operand to the node.
func (n *NamedMetadata) AddOperand(md *Value) error {
	const api = "add_named_metadata_operand"
	if err := ensureHandle(n.tok, api); err != nil {
		return err
	}
	if err := md.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return err
	}
	native.AddNamedMetadataOperand(n.ref, md.ref)
	return nil
}

// Verify checks structural well-formedness. A malformed module is a
// result, not an error: ok is false and the diagnostic explains why.
func (m *Module) Verify() (bool, string, error) {
	if err := ensureOwner(m.tok, "verify"); err != nil {
		return false, "", err
	}
	ok, diag := native.VerifyModule(m.ref)
	return ok, string(diag), nil
}

// String renders the module in IR syntax.
func (m *Module) String() (string, error) {
	if err := ensureOwner(m.tok, "print_module"); err != nil {
		return "", err
	}
	return string(native.PrintModuleToString(m.ref)), nil
}

// WriteBitcode serializes the module skeleton.
func (m *Module) WriteBitcode() ([]byte, error) {
	if err := ensureOwner(m.tok, "write_bitcode"); err != nil {
		return nil, err
	}
	return native.WriteBitcodeToMemory(m.ref), nil
}

// ParseBitcode deserializes a module skeleton into this context. Parsed
// modules come back lazily materialized: declarations only.
func (c *Context) ParseBitcode(data []byte) (*Module, error) {
	const api = "parse_bitcode"
	if err := ensureOwner(c.tok, api); err != nil {
		return nil, err
	}
	ref, diag := native.ParseBitcodeInContext(c.ref, data)
	if ref == nil {
		return nil, errors.Parse(api, string(diag))
	}
	return c.adoptModule(ref), nil
}

// Clone deep-copies the module skeleton into a new context-owned module.
func (m *Module) Clone() (*Module, error) {
	if err := ensureOwner(m.tok, "clone_module"); err != nil {
		return nil, err
	}
	return m.ctx.adoptModule(native.CloneModule(m.ref)), nil
}
