package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// Value wraps a native value reference: constants, globals, arguments,
// instructions, metadata. The kind tag selects which operations apply;
// every accessor checks it before delegating.
type Value struct {
	tok *token
	ref native.ValueRef
}

func wrapValue(tok *token, ref native.ValueRef) *Value {
	if ref == nil {
		return nil
	}
	return &Value{tok: tok, ref: ref}
}

// expectKind guards liveness and the value's kind tag.
func (v *Value) expectKind(api, expected string, kinds ...ValueKind) error {
	if err := ensureHandle(v.tok, api); err != nil {
		return err
	}
	got := native.GetValueKind(v.ref)
	for _, want := range kinds {
		if got == want {
			return nil
		}
	}
	return errors.WrongKind(api, expected)
}

// expectOpcode guards liveness, instruction-ness and the opcode class.
func (v *Value) expectOpcode(api, expected string, pred func(Opcode) bool) error {
	if err := v.expectKind(api, expected, InstructionValueKind); err != nil {
		return err
	}
	if !pred(native.GetInstructionOpcode(v.ref)) {
		return errors.WrongKind(api, expected)
	}
	return nil
}

func is(op Opcode) func(Opcode) bool {
	return func(got Opcode) bool { return got == op }
}

// Equal reports handle identity: both wrappers name the same native value.
func (v *Value) Equal(o *Value) bool {
	return o != nil && v.ref == o.ref
}

// Kind returns the value's kind tag.
func (v *Value) Kind() (ValueKind, error) {
	if err := ensureHandle(v.tok, "value_kind"); err != nil {
		return 0, err
	}
	return native.GetValueKind(v.ref), nil
}

// Type returns the value's type.
func (v *Value) Type() (*Type, error) {
	if err := ensureHandle(v.tok, "type_of"); err != nil {
		return nil, err
	}
	return wrapType(v.tok, native.TypeOf(v.ref)), nil
}

// Name returns the value's name bytes, preserved exactly.
func (v *Value) Name() ([]byte, error) {
	if err := ensureHandle(v.tok, "get_name"); err != nil {
		return nil, err
	}
	return native.GetValueName2(v.ref), nil
}

// SetName renames the value.
func (v *Value) SetName(name []byte) error {
	if err := ensureHandle(v.tok, "set_name"); err != nil {
		return err
	}
	native.SetValueName2(v.ref, name)
	return nil
}

// IsConstant reports whether the value is a constant.
func (v *Value) IsConstant() (bool, error) {
	if err := ensureHandle(v.tok, "is_constant"); err != nil {
		return false, err
	}
	return native.IsConstant(v.ref), nil
}

// String renders the value in IR-like syntax.
func (v *Value) String() (string, error) {
	if err := ensureHandle(v.tok, "print_value"); err != nil {
		return "", err
	}
	return string(native.PrintValueToString(v.ref)), nil
}

// NumOperands returns the operand count.
func (v *Value) NumOperands() (int, error) {
	if err := ensureHandle(v.tok, "num_operands"); err != nil {
		return 0, err
	}
	return native.GetNumOperands(v.ref), nil
}

// Operand returns operand i.
func (v *Value) Operand(i int) (*Value, error) {
	const api = "get_operand"
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_operands", native.GetNumOperands(v.ref)); err != nil {
		return nil, err
	}
	return wrapValue(v.tok, native.GetOperand(v.ref, i)), nil
}

// OperandUse returns the use edge for operand i.
func (v *Value) OperandUse(i int) (*Use, error) {
	const api = "get_operand_use"
	if err := ensureHandle(v.tok, api); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_operands", native.GetNumOperands(v.ref)); err != nil {
		return nil, err
	}
	return &Use{tok: v.tok, ref: native.GetOperandUse(v.ref, i)}, nil
}

// SetOperand replaces operand i.
func (v *Value) SetOperand(i int, operand *Value) error {
	const api = "set_operand"
	if err := ensureHandle(v.tok, api); err != nil {
		return err
	}
	if err := ensureHandle(operand.tok, api); err != nil {
		return err
	}
	if err := checkIndex(api, i, "num_operands", native.GetNumOperands(v.ref)); err != nil {
		return err
	}
	native.SetOperand(v.ref, i, operand.ref)
	return nil
}

// ReplaceAllUsesWith rewrites every use of v to point at repl.
func (v *Value) ReplaceAllUsesWith(repl *Value) error {
	const api = "replace_all_uses_with"
	if err := ensureHandle(v.tok, api); err != nil {
		return err
	}
	if err := ensureHandle(repl.tok, api); err != nil {
		return err
	}
	native.ReplaceAllUsesWith(v.ref, repl.ref)
	return nil
}

// Constant accessors.

// IntZExtValue returns the zero-extended value of an integer constant.
func (v *Value) IntZExtValue() (uint64, error) {
	const api = "int_zext_value"
	if err := v.expectKind(api, "an integer constant", ConstantIntValueKind); err != nil {
		return 0, err
	}
	return native.ConstIntGetZExtValue(v.ref), nil
}

// IntSExtValue returns the sign-extended value of an integer constant.
func (v *Value) IntSExtValue() (int64, error) {
	const api = "int_sext_value"
	if err := v.expectKind(api, "an integer constant", ConstantIntValueKind); err != nil {
		return 0, err
	}
	return native.ConstIntGetSExtValue(v.ref), nil
}

// DoubleValue returns the value of a floating-point constant.
func (v *Value) DoubleValue() (float64, error) {
	const api = "double_value"
	if err := v.expectKind(api, "a floating-point constant", ConstantFPValueKind); err != nil {
		return 0, err
	}
	return native.ConstRealGetDouble(v.ref), nil
}

// AsString returns the raw bytes of a constant data array.
func (v *Value) AsString() ([]byte, error) {
	const api = "as_string"
	if err := v.expectKind(api, "a constant data array", ConstantDataArrayValueKind); err != nil {
		return nil, err
	}
	return native.GetAsString(v.ref), nil
}

// AggregateElement returns element i of a constant aggregate, or nil when
// the native library reports absence.
func (v *Value) AggregateElement(i int) (*Value, error) {
	const api = "aggregate_element"
	if err := v.expectKind(api, "a constant aggregate",
		ConstantArrayValueKind, ConstantDataArrayValueKind, ConstantStructValueKind); err != nil {
		return nil, err
	}
	if i < 0 {
		return nil, errors.OutOfRange(api, i, "num_elements", native.GetNumOperands(v.ref))
	}
	return wrapValue(v.tok, native.GetAggregateElement(v.ref, i)), nil
}

// MDStringValue returns the bytes of a metadata string, nil for nodes.
func (v *Value) MDStringValue() ([]byte, error) {
	const api = "md_string_value"
	if err := v.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return nil, err
	}
	return native.GetMDString(v.ref), nil
}

// Inline asm accessors.

// InlineAsmString returns the template bytes of an inline asm value.
func (v *Value) InlineAsmString() ([]byte, error) {
	const api = "inline_asm_string"
	if err := v.expectKind(api, "an inline asm value", InlineAsmValueKind); err != nil {
		return nil, err
	}
	return native.GetInlineAsmAsmString(v.ref), nil
}

// InlineAsmConstraints returns the constraint bytes of an inline asm value.
func (v *Value) InlineAsmConstraints() ([]byte, error) {
	const api = "inline_asm_constraints"
	if err := v.expectKind(api, "an inline asm value", InlineAsmValueKind); err != nil {
		return nil, err
	}
	return native.GetInlineAsmConstraintString(v.ref), nil
}

// InlineAsmHasSideEffects reports the side-effect flag of an inline asm value.
func (v *Value) InlineAsmHasSideEffects() (bool, error) {
	const api = "inline_asm_has_side_effects"
	if err := v.expectKind(api, "an inline asm value", InlineAsmValueKind); err != nil {
		return false, err
	}
	return native.GetInlineAsmHasSideEffects(v.ref), nil
}

// InlineAsmNeedsAlignedStack reports the aligned-stack flag of an inline
// asm value.
func (v *Value) InlineAsmNeedsAlignedStack() (bool, error) {
	const api = "inline_asm_needs_aligned_stack"
	if err := v.expectKind(api, "an inline asm value", InlineAsmValueKind); err != nil {
		return false, err
	}
	return native.GetInlineAsmNeedsAlignedStack(v.ref), nil
}

// Block bridging.

// IsBasicBlock reports whether the value is a block-as-value.
func (v *Value) IsBasicBlock() (bool, error) {
	if err := ensureHandle(v.tok, "is_basic_block"); err != nil {
		return false, err
	}
	return native.ValueIsBasicBlock(v.ref), nil
}

// AsBasicBlock returns the block behind a block value.
func (v *Value) AsBasicBlock() (*BasicBlock, error) {
	const api = "as_basic_block"
	if err := v.expectKind(api, "a basic block value", BasicBlockValueKind); err != nil {
		return nil, err
	}
	return wrapBlock(v.tok, native.ValueAsBasicBlock(v.ref)), nil
}

// Use is one operand edge: a user value and the value it uses.
type Use struct {
	tok *token
	ref native.UseRef
}

// User returns the value containing the use.
func (u *Use) User() (*Value, error) {
	if err := ensureHandle(u.tok, "get_user"); err != nil {
		return nil, err
	}
	return wrapValue(u.tok, native.GetUser(u.ref)), nil
}

// Used returns the value being used.
func (u *Use) Used() (*Value, error) {
	if err := ensureHandle(u.tok, "get_used_value"); err != nil {
		return nil, err
	}
	return wrapValue(u.tok, native.GetUsedValue(u.ref)), nil
}

// Attribute is an enum or string attribute created by a context.
type Attribute struct {
	tok *token
	ref native.AttributeRef
}

// IsString reports whether the attribute is a string attribute.
func (a *Attribute) IsString() (bool, error) {
	if err := ensureHandle(a.tok, "is_string_attribute"); err != nil {
		return false, err
	}
	return native.IsStringAttribute(a.ref), nil
}

// EnumKind returns the numeric kind of an enum attribute.
func (a *Attribute) EnumKind() (int, error) {
	const api = "enum_attribute_kind"
	if err := ensureHandle(a.tok, api); err != nil {
		return 0, err
	}
	if native.IsStringAttribute(a.ref) {
		return 0, errors.WrongKind(api, "an enum attribute")
	}
	return native.GetEnumAttributeKind(a.ref), nil
}

// EnumValue returns the payload of an enum attribute.
func (a *Attribute) EnumValue() (uint64, error) {
	const api = "enum_attribute_value"
	if err := ensureHandle(a.tok, api); err != nil {
		return 0, err
	}
	if native.IsStringAttribute(a.ref) {
		return 0, errors.WrongKind(api, "an enum attribute")
	}
	return native.GetEnumAttributeValue(a.ref), nil
}

// StringKind returns the kind bytes of a string attribute.
func (a *Attribute) StringKind() (string, error) {
	const api = "string_attribute_kind"
	if err := ensureHandle(a.tok, api); err != nil {
		return "", err
	}
	if !native.IsStringAttribute(a.ref) {
		return "", errors.WrongKind(api, "a string attribute")
	}
	return string(native.GetStringAttributeKind(a.ref)), nil
}

// StringValue returns the value bytes of a string attribute.
func (a *Attribute) StringValue() (string, error) {
	const api = "string_attribute_value"
	if err := ensureHandle(a.tok, api); err != nil {
		return "", err
	}
	if !native.IsStringAttribute(a.ref) {
		return "", errors.WrongKind(api, "a string attribute")
	}
	return string(native.GetStringAttributeValue(a.ref)), nil
}

// OperandBundle carries a tag plus argument values for call-like
// instructions.
type OperandBundle struct {
	tok *token
	ref native.OperandBundleRef
}

// Tag returns the bundle's tag.
func (b *OperandBundle) Tag() (string, error) {
	if err := ensureHandle(b.tok, "operand_bundle_tag"); err != nil {
		return "", err
	}
	return string(native.GetOperandBundleTag(b.ref)), nil
}

// NumArgs returns the bundle's argument count.
func (b *OperandBundle) NumArgs() (int, error) {
	if err := ensureHandle(b.tok, "operand_bundle_num_args"); err != nil {
		return 0, err
	}
	return native.GetNumOperandBundleArgs(b.ref), nil
}

// Arg returns bundle argument i.
func (b *OperandBundle) Arg(i int) (*Value, error) {
	const api = "operand_bundle_arg"
	if err := ensureHandle(b.tok, api); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_args", native.GetNumOperandBundleArgs(b.ref)); err != nil {
		return nil, err
	}
	return wrapValue(b.tok, native.GetOperandBundleArgAtIndex(b.ref, i)), nil
}

// MetadataEntries is a snapshot of a global's metadata attachments.
type MetadataEntries struct {
	tok     *token
	entries native.MetadataEntries
}

// Count returns the number of snapshot entries.
func (m *MetadataEntries) Count() (int, error) {
	if err := ensureHandle(m.tok, "metadata_entries_count"); err != nil {
		return 0, err
	}
	return len(m.entries), nil
}

// KindID returns the kind id of snapshot entry i.
func (m *MetadataEntries) KindID(i int) (int, error) {
	const api = "metadata_entry_kind"
	if err := ensureHandle(m.tok, api); err != nil {
		return 0, err
	}
	if err := checkIndex(api, i, "num_entries", len(m.entries)); err != nil {
		return 0, err
	}
	return native.ValueMetadataEntryKind(m.entries, i), nil
}

// Metadata returns the metadata value of snapshot entry i.
func (m *MetadataEntries) Metadata(i int) (*Value, error) {
	const api = "metadata_entry_metadata"
	if err := ensureHandle(m.tok, api); err != nil {
		return nil, err
	}
	if err := checkIndex(api, i, "num_entries", len(m.entries)); err != nil {
		return nil, err
	}
	return wrapValue(m.tok, native.ValueMetadataEntryMetadata(m.entries, i)), nil
}
