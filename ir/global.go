package ir

import "github.com/wippyai/ir-bindings/native"

// Global value operations. They apply to functions, global variables,
// aliases and ifuncs; the narrower families below each guard their own
// kind.

func (v *Value) expectGlobal(api string) error {
	return v.expectKind(api, "a global value",
		FunctionValueKind, GlobalVariableValueKind, GlobalAliasValueKind, GlobalIFuncValueKind)
}

// GlobalValueType returns the value type of a global (as opposed to its
// pointer type).
func (v *Value) GlobalValueType() (*Type, error) {
	if err := v.expectGlobal("global_value_type"); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.GetGlobalValueType(v.ref)), nil
}

// Linkage returns the global's linkage.
func (v *Value) Linkage() (Linkage, error) {
	if err := v.expectGlobal("get_linkage"); err != nil {
		return 0, err
	}
	return native.GetLinkage(v.ref), nil
}

// SetLinkage sets the global's linkage.
func (v *Value) SetLinkage(l Linkage) error {
	if err := v.expectGlobal("set_linkage"); err != nil {
		return err
	}
	native.SetLinkage(v.ref, l)
	return nil
}

// UnnamedAddr returns the global's unnamed_addr disposition.
func (v *Value) UnnamedAddr() (UnnamedAddr, error) {
	if err := v.expectGlobal("get_unnamed_addr"); err != nil {
		return 0, err
	}
	return native.GetUnnamedAddress(v.ref), nil
}

// SetUnnamedAddr sets the global's unnamed_addr disposition.
func (v *Value) SetUnnamedAddr(u UnnamedAddr) error {
	if err := v.expectGlobal("set_unnamed_addr"); err != nil {
		return err
	}
	native.SetUnnamedAddress(v.ref, u)
	return nil
}

// Visibility returns the global's visibility.
func (v *Value) Visibility() (Visibility, error) {
	if err := v.expectGlobal("get_visibility"); err != nil {
		return 0, err
	}
	return native.GetVisibility(v.ref), nil
}

// SetVisibility sets the global's visibility.
func (v *Value) SetVisibility(vis Visibility) error {
	if err := v.expectGlobal("set_visibility"); err != nil {
		return err
	}
	native.SetVisibility(v.ref, vis)
	return nil
}

// Section returns the global's section name, empty when unset.
func (v *Value) Section() (string, error) {
	if err := v.expectGlobal("get_section"); err != nil {
		return "", err
	}
	return string(native.GetSection(v.ref)), nil
}

// SetSection sets the global's section name.
func (v *Value) SetSection(s string) error {
	if err := v.expectGlobal("set_section"); err != nil {
		return err
	}
	native.SetSection(v.ref, []byte(s))
	return nil
}

// IsDeclaration reports whether the global has no body or initializer.
func (v *Value) IsDeclaration() (bool, error) {
	if err := v.expectGlobal("is_declaration"); err != nil {
		return false, err
	}
	return native.IsDeclaration(v.ref), nil
}

// Comdat returns the global's comdat, nil when unset.
func (v *Value) Comdat() (*Comdat, error) {
	if err := v.expectGlobal("get_comdat"); err != nil {
		return nil, err
	}
	ref := native.GetComdat(v.ref)
	if ref == nil {
		return nil, nil
	}
	return &Comdat{tok: v.tok, ref: ref}, nil
}

// SetComdat assigns a comdat to the global.
func (v *Value) SetComdat(c *Comdat) error {
	const api = "set_comdat"
	if err := v.expectGlobal(api); err != nil {
		return err
	}
	if err := ensureHandle(c.tok, api); err != nil {
		return err
	}
	native.SetComdat(v.ref, c.ref)
	return nil
}

// CopyAllMetadata snapshots the global's metadata attachments.
func (v *Value) CopyAllMetadata() (*MetadataEntries, error) {
	if err := v.expectGlobal("copy_all_metadata"); err != nil {
		return nil, err
	}
	return &MetadataEntries{tok: v.tok, entries: native.GlobalCopyAllMetadata(v.ref)}, nil
}

// SetMetadata attaches metadata to the global under a kind id.
func (v *Value) SetMetadata(kindID int, md *Value) error {
	const api = "set_metadata"
	if err := v.expectGlobal(api); err != nil {
		return err
	}
	if err := md.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return err
	}
	native.GlobalSetMetadata(v.ref, kindID, md.ref)
	return nil
}

// Global variable family.

// Initializer returns the global variable's initializer, nil when it is a
// declaration.
func (v *Value) Initializer() (*Value, error) {
	const api = "get_initializer"
	if err := v.expectKind(api, "a global variable", GlobalVariableValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetInitializer(v.ref)), nil
}

// SetInitializer sets the global variable's initializer.
func (v *Value) SetInitializer(val *Value) error {
	const api = "set_initializer"
	if err := v.expectKind(api, "a global variable", GlobalVariableValueKind); err != nil {
		return err
	}
	if err := ensureHandle(val.tok, api); err != nil {
		return err
	}
	native.SetInitializer(v.ref, val.ref)
	return nil
}

// NextGlobal returns the global variable after this one, nil at the end.
func (v *Value) NextGlobal() (*Value, error) {
	const api = "next_global"
	if err := v.expectKind(api, "a global variable", GlobalVariableValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextGlobal(v.ref)), nil
}

// PreviousGlobal returns the global variable before this one, nil at the
// start.
func (v *Value) PreviousGlobal() (*Value, error) {
	const api = "previous_global"
	if err := v.expectKind(api, "a global variable", GlobalVariableValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousGlobal(v.ref)), nil
}

// DeleteGlobal erases the global variable from its module.
func (v *Value) DeleteGlobal() error {
	const api = "delete_global"
	if err := v.expectKind(api, "a global variable", GlobalVariableValueKind); err != nil {
		return err
	}
	native.DeleteGlobal(v.ref)
	return nil
}

// Function list traversal.

// NextFunction returns the function after this one, nil at the end.
func (v *Value) NextFunction() (*Value, error) {
	const api = "next_function"
	if err := v.expectKind(api, "a function", FunctionValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextFunction(v.ref)), nil
}

// PreviousFunction returns the function before this one, nil at the start.
func (v *Value) PreviousFunction() (*Value, error) {
	const api = "previous_function"
	if err := v.expectKind(api, "a function", FunctionValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousFunction(v.ref)), nil
}

// DeleteFunction erases the function from its module.
func (v *Value) DeleteFunction() error {
	const api = "delete_function"
	if err := v.expectKind(api, "a function", FunctionValueKind); err != nil {
		return err
	}
	native.DeleteFunction(v.ref)
	return nil
}

// Alias family.

// Aliasee returns the alias target.
func (v *Value) Aliasee() (*Value, error) {
	const api = "alias_get_aliasee"
	if err := v.expectKind(api, "a global alias", GlobalAliasValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.AliasGetAliasee(v.ref)), nil
}

// SetAliasee replaces the alias target.
func (v *Value) SetAliasee(aliasee *Value) error {
	const api = "alias_set_aliasee"
	if err := v.expectKind(api, "a global alias", GlobalAliasValueKind); err != nil {
		return err
	}
	if err := ensureHandle(aliasee.tok, api); err != nil {
		return err
	}
	native.AliasSetAliasee(v.ref, aliasee.ref)
	return nil
}

// NextAlias returns the alias after this one, nil at the end.
func (v *Value) NextAlias() (*Value, error) {
	const api = "next_alias"
	if err := v.expectKind(api, "a global alias", GlobalAliasValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextGlobalAlias(v.ref)), nil
}

// PreviousAlias returns the alias before this one, nil at the start.
func (v *Value) PreviousAlias() (*Value, error) {
	const api = "previous_alias"
	if err := v.expectKind(api, "a global alias", GlobalAliasValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousGlobalAlias(v.ref)), nil
}

// IFunc family.

// IFuncResolver returns the ifunc's resolver function.
func (v *Value) IFuncResolver() (*Value, error) {
	const api = "ifunc_resolver"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetGlobalIFuncResolver(v.ref)), nil
}

// SetIFuncResolver replaces the ifunc's resolver.
func (v *Value) SetIFuncResolver(resolver *Value) error {
	const api = "set_ifunc_resolver"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return err
	}
	if err := ensureHandle(resolver.tok, api); err != nil {
		return err
	}
	native.SetGlobalIFuncResolver(v.ref, resolver.ref)
	return nil
}

// NextIFunc returns the ifunc after this one, nil at the end.
func (v *Value) NextIFunc() (*Value, error) {
	const api = "next_ifunc"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextGlobalIFunc(v.ref)), nil
}

// PreviousIFunc returns the ifunc before this one, nil at the start.
func (v *Value) PreviousIFunc() (*Value, error) {
	const api = "previous_ifunc"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousGlobalIFunc(v.ref)), nil
}

// EraseIFunc removes and destroys the ifunc.
func (v *Value) EraseIFunc() error {
	const api = "erase_ifunc"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return err
	}
	native.EraseGlobalIFunc(v.ref)
	return nil
}

// RemoveIFunc detaches the ifunc from its module without destroying it.
func (v *Value) RemoveIFunc() error {
	const api = "remove_ifunc"
	if err := v.expectKind(api, "a global ifunc", GlobalIFuncValueKind); err != nil {
		return err
	}
	native.RemoveGlobalIFunc(v.ref)
	return nil
}
