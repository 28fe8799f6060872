package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Function operations. All guard the function kind; argument traversal
// guards the argument kind.

func (v *Value) expectFunction(api string) error {
	return v.expectKind(api, "a function", FunctionValueKind)
}

// checkAttrIndex validates a function/return/parameter attribute index.
// -1 addresses the function, 0 the return value, 1..n the parameters.
func (v *Value) checkAttrIndex(api string, idx int) error {
	if idx < AttributeFunctionIndex {
		return errors.Assertion(api, "attribute index %d invalid (idx >= -1)", idx)
	}
	if n := native.CountParams(v.ref); idx > n {
		return errors.OutOfRange(api, idx, "num_params", n)
	}
	return nil
}

// ParamCount returns the function's parameter count.
func (v *Value) ParamCount() (int, error) {
	if err := v.expectFunction("count_params"); err != nil {
		return 0, err
	}
	return native.CountParams(v.ref), nil
}

// Param returns parameter i.
func (v *Value) Param(i int) (*Value, error) {
	const api = "get_param"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_params", native.CountParams(v.ref)); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetParam(v.ref, i)), nil
}

// Params returns the function's parameters in order.
func (v *Value) Params() ([]*Value, error) {
	if err := v.expectFunction("get_params"); err != nil {
		return nil, err
	}
	n := native.CountParams(v.ref)
	out := make([]*Value, n)
	for i := 0; i < n; i++ {
		out[i] = wrapValue(v.tok, native.GetParam(v.ref, i))
	}
	return out, nil
}

// FirstParam returns the first parameter, nil when none.
func (v *Value) FirstParam() (*Value, error) {
	if err := v.expectFunction("first_param"); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetFirstParam(v.ref)), nil
}

// LastParam returns the last parameter, nil when none.
func (v *Value) LastParam() (*Value, error) {
	if err := v.expectFunction("last_param"); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetLastParam(v.ref)), nil
}

// NextParam returns the parameter after this argument, nil at the end.
func (v *Value) NextParam() (*Value, error) {
	const api = "next_param"
	if err := v.expectKind(api, "an argument", ArgumentValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetNextParam(v.ref)), nil
}

// PreviousParam returns the parameter before this argument, nil at the
// start.
func (v *Value) PreviousParam() (*Value, error) {
	const api = "previous_param"
	if err := v.expectKind(api, "an argument", ArgumentValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetPreviousParam(v.ref)), nil
}

// ParamParent returns the function owning this argument.
func (v *Value) ParamParent() (*Value, error) {
	const api = "param_parent"
	if err := v.expectKind(api, "an argument", ArgumentValueKind); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetParamParent(v.ref)), nil
}

// FunctionType returns the function's signature type.
func (v *Value) FunctionType() (*Type, error) {
	if err := v.expectFunction("function_type"); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.GetFunctionType(v.ref)), nil
}

// CallConv returns the function's calling convention id.
func (v *Value) CallConv() (int, error) {
	if err := v.expectFunction("get_call_conv"); err != nil {
		return 0, err
	}
	return native.GetFunctionCallConv(v.ref), nil
}

// SetCallConv sets the function's calling convention id.
func (v *Value) SetCallConv(cc int) error {
	if err := v.expectFunction("set_call_conv"); err != nil {
		return err
	}
	native.SetFunctionCallConv(v.ref, cc)
	return nil
}

// GC returns the function's GC name, empty when unset.
func (v *Value) GC() (string, error) {
	if err := v.expectFunction("get_gc"); err != nil {
		return "", err
	}
	return string(native.GetGC(v.ref)), nil
}

// SetGC sets the function's GC name.
func (v *Value) SetGC(name string) error {
	if err := v.expectFunction("set_gc"); err != nil {
		return err
	}
	native.SetGC(v.ref, []byte(name))
	return nil
}

// HasPersonality reports whether a personality function is attached.
func (v *Value) HasPersonality() (bool, error) {
	if err := v.expectFunction("has_personality_fn"); err != nil {
		return false, err
	}
	return native.HasPersonalityFn(v.ref), nil
}

// Personality returns the personality function.
func (v *Value) Personality() (*Value, error) {
	const api = "get_personality_fn"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if !native.HasPersonalityFn(v.ref) {
		return nil, errors.Assertion(api, "function has no personality")
	}
	return wrapValue(v.tok, native.GetPersonalityFn(v.ref)), nil
}

// SetPersonality attaches a personality function.
func (v *Value) SetPersonality(p *Value) error {
	const api = "set_personality_fn"
	if err := v.expectFunction(api); err != nil {
		return err
	}
	if err := p.expectFunction(api); err != nil {
		return err
	}
	native.SetPersonalityFn(v.ref, p.ref)
	return nil
}

// HasPrefixData reports whether prefix data is attached.
func (v *Value) HasPrefixData() (bool, error) {
	if err := v.expectFunction("has_prefix_data"); err != nil {
		return false, err
	}
	return native.HasPrefixData(v.ref), nil
}

// PrefixData returns the attached prefix data.
func (v *Value) PrefixData() (*Value, error) {
	const api = "get_prefix_data"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if !native.HasPrefixData(v.ref) {
		return nil, errors.Assertion(api, "function has no prefix data")
	}
	return wrapValue(v.tok, native.GetPrefixData(v.ref)), nil
}

// SetPrefixData attaches prefix data.
func (v *Value) SetPrefixData(data *Value) error {
	const api = "set_prefix_data"
	if err := v.expectFunction(api); err != nil {
		return err
	}
	if err := ensureHandle(data.tok, api); err != nil {
		return err
	}
	native.SetPrefixData(v.ref, data.ref)
	return nil
}

// HasPrologueData reports whether prologue data is attached.
func (v *Value) HasPrologueData() (bool, error) {
	if err := v.expectFunction("has_prologue_data"); err != nil {
		return false, err
	}
	return native.HasPrologueData(v.ref), nil
}

// PrologueData returns the attached prologue data.
func (v *Value) PrologueData() (*Value, error) {
	const api = "get_prologue_data"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if !native.HasPrologueData(v.ref) {
		return nil, errors.Assertion(api, "function has no prologue data")
	}
	return wrapValue(v.tok, native.GetPrologueData(v.ref)), nil
}

// SetPrologueData attaches prologue data.
func (v *Value) SetPrologueData(data *Value) error {
	const api = "set_prologue_data"
	if err := v.expectFunction(api); err != nil {
		return err
	}
	if err := ensureHandle(data.tok, api); err != nil {
		return err
	}
	native.SetPrologueData(v.ref, data.ref)
	return nil
}

// Attributes at the function, return and parameter slots.

// AddAttribute attaches an attribute at an attribute index.
func (v *Value) AddAttribute(idx int, a *Attribute) error {
	const api = "add_attribute_at_index"
	if err := v.expectFunction(api); err != nil {
		return err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return err
	}
	if err := ensureHandle(a.tok, api); err != nil {
		return err
	}
	native.AddAttributeAtIndex(v.ref, idx, a.ref)
	return nil
}

// AttributeCount returns the attribute count at an attribute index.
func (v *Value) AttributeCount(idx int) (int, error) {
	const api = "attribute_count_at_index"
	if err := v.expectFunction(api); err != nil {
		return 0, err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return 0, err
	}
	return native.GetAttributeCountAtIndex(v.ref, idx), nil
}

// Attributes returns the attributes at an attribute index.
func (v *Value) Attributes(idx int) ([]*Attribute, error) {
	const api = "attributes_at_index"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return nil, err
	}
	refs := native.GetAttributesAtIndex(v.ref, idx)
	out := make([]*Attribute, len(refs))
	for i, r := range refs {
		out[i] = &Attribute{tok: v.tok, ref: r}
	}
	return out, nil
}

// EnumAttribute returns the enum attribute of a kind at an attribute
// index, nil when absent.
func (v *Value) EnumAttribute(idx, kindID int) (*Attribute, error) {
	const api = "enum_attribute_at_index"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return nil, err
	}
	ref := native.GetEnumAttributeAtIndex(v.ref, idx, kindID)
	if ref == nil {
		return nil, nil
	}
	return &Attribute{tok: v.tok, ref: ref}, nil
}

// StringAttribute returns the string attribute of a kind at an attribute
// index, nil when absent.
func (v *Value) StringAttribute(idx int, kind string) (*Attribute, error) {
	const api = "string_attribute_at_index"
	if err := v.expectFunction(api); err != nil {
		return nil, err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return nil, err
	}
	ref := native.GetStringAttributeAtIndex(v.ref, idx, []byte(kind))
	if ref == nil {
		return nil, nil
	}
	return &Attribute{tok: v.tok, ref: ref}, nil
}

// RemoveEnumAttribute removes the enum attribute of a kind at an attribute
// index.
func (v *Value) RemoveEnumAttribute(idx, kindID int) error {
	const api = "remove_enum_attribute_at_index"
	if err := v.expectFunction(api); err != nil {
		return err
	}
	if err := v.checkAttrIndex(api, idx); err != nil {
		return err
	}
	native.RemoveEnumAttributeAtIndex(v.ref, idx, kindID)
	return nil
}

// Blocks.

// AppendBasicBlock appends a fresh block to the function.
func (v *Value) AppendBasicBlock(name string) (*BasicBlock, error) {
	if err := v.expectFunction("append_basic_block"); err != nil {
		return nil, err
	}
	ctx := native.GetValueContext(v.ref)
	return wrapBlock(v.tok, native.AppendBasicBlockInContext(ctx, v.ref, []byte(name))), nil
}

// BasicBlockCount returns the function's block count.
func (v *Value) BasicBlockCount() (int, error) {
	if err := v.expectFunction("count_basic_blocks"); err != nil {
		return 0, err
	}
	return native.CountBasicBlocks(v.ref), nil
}

// EntryBasicBlock returns the entry block, nil for declarations.
func (v *Value) EntryBasicBlock() (*BasicBlock, error) {
	if err := v.expectFunction("entry_basic_block"); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetEntryBasicBlock(v.ref)), nil
}

// FirstBasicBlock returns the first block, nil for declarations.
func (v *Value) FirstBasicBlock() (*BasicBlock, error) {
	if err := v.expectFunction("first_basic_block"); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetFirstBasicBlock(v.ref)), nil
}

// LastBasicBlock returns the last block, nil for declarations.
func (v *Value) LastBasicBlock() (*BasicBlock, error) {
	if err := v.expectFunction("last_basic_block"); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.GetLastBasicBlock(v.ref)), nil
}

// BasicBlocks returns the function's blocks in order.
func (v *Value) BasicBlocks() ([]*BasicBlock, error) {
	if err := v.expectFunction("get_basic_blocks"); err != nil {
		return nil, err
	}
	refs := native.GetBasicBlocks(v.ref)
	out := make([]*BasicBlock, len(refs))
	for i, r := range refs {
		out[i] = wrapBlock(v.tok, r)
	}
	return out, nil
}
