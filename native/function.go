package native

// AttributeFunctionIndex is the sentinel index addressing attributes on the
// function itself; 0 addresses the return value, 1..n the parameters.
const AttributeFunctionIndex = -1

// CountParams returns the parameter count. Unchecked.
func CountParams(fn ValueRef) int { return len(fn.args) }

// GetParam returns parameter i. Unchecked.
func GetParam(fn ValueRef, i int) ValueRef { return fn.args[i] }

// GetFirstParam returns the first parameter, nil when none.
func GetFirstParam(fn ValueRef) ValueRef { return first(fn.args) }

// GetLastParam returns the last parameter, nil when none.
func GetLastParam(fn ValueRef) ValueRef { return last(fn.args) }

// GetNextParam returns the parameter after arg, nil at the end. Unchecked.
func GetNextParam(arg ValueRef) ValueRef { return next(arg.argParent.args, arg) }

// GetPreviousParam returns the parameter before arg, nil at the start. Unchecked.
func GetPreviousParam(arg ValueRef) ValueRef { return prev(arg.argParent.args, arg) }

// GetParamParent returns the function owning an argument. Unchecked.
func GetParamParent(arg ValueRef) ValueRef { return arg.argParent }

// GetFunctionType returns the function's signature type. Unchecked.
func GetFunctionType(fn ValueRef) TypeRef { return fn.fnType }

// GetFunctionCallConv returns the calling convention id. Unchecked.
func GetFunctionCallConv(fn ValueRef) int { return fn.flags.callConv }

// SetFunctionCallConv sets the calling convention id. Unchecked.
func SetFunctionCallConv(fn ValueRef, cc int) { fn.flags.callConv = cc }

// GetGC returns the function's GC name, empty when unset. Unchecked.
func GetGC(fn ValueRef) []byte { return []byte(fn.gcName) }

// SetGC sets the function's GC name. Unchecked.
func SetGC(fn ValueRef, name []byte) { fn.gcName = string(name) }

// HasPersonalityFn reports whether a personality is attached. Unchecked.
func HasPersonalityFn(fn ValueRef) bool { return fn.personality != nil }

// GetPersonalityFn returns the personality function. Unchecked.
func GetPersonalityFn(fn ValueRef) ValueRef { return fn.personality }

// SetPersonalityFn attaches a personality function. Unchecked.
func SetPersonalityFn(fn ValueRef, p ValueRef) { fn.personality = p }

// HasPrefixData reports whether prefix data is attached. Unchecked.
func HasPrefixData(fn ValueRef) bool { return fn.prefixData != nil }

// GetPrefixData returns the prefix data. Unchecked.
func GetPrefixData(fn ValueRef) ValueRef { return fn.prefixData }

// SetPrefixData attaches prefix data. Unchecked.
func SetPrefixData(fn ValueRef, v ValueRef) { fn.prefixData = v }

// HasPrologueData reports whether prologue data is attached. Unchecked.
func HasPrologueData(fn ValueRef) bool { return fn.prologData != nil }

// GetPrologueData returns the prologue data. Unchecked.
func GetPrologueData(fn ValueRef) ValueRef { return fn.prologData }

// SetPrologueData attaches prologue data. Unchecked.
func SetPrologueData(fn ValueRef, v ValueRef) { fn.prologData = v }

// AddAttributeAtIndex attaches an attribute at a function/return/param index.
// Unchecked.
func AddAttributeAtIndex(fn ValueRef, idx int, a AttributeRef) {
	fn.attrs[idx] = append(fn.attrs[idx], a)
}

// GetAttributeCountAtIndex returns the attribute count at an index. Unchecked.
func GetAttributeCountAtIndex(fn ValueRef, idx int) int {
	return len(fn.attrs[idx])
}

// GetAttributesAtIndex returns the attributes at an index. Unchecked.
func GetAttributesAtIndex(fn ValueRef, idx int) []AttributeRef {
	return append([]AttributeRef(nil), fn.attrs[idx]...)
}

// GetEnumAttributeAtIndex returns the enum attribute of the given kind at an
// index, nil when absent. Unchecked.
func GetEnumAttributeAtIndex(fn ValueRef, idx, kindID int) AttributeRef {
	for _, a := range fn.attrs[idx] {
		if !a.isString && a.kindID == kindID {
			return a
		}
	}
	return nil
}

// GetStringAttributeAtIndex returns the string attribute of the given kind
// at an index, nil when absent. Unchecked.
func GetStringAttributeAtIndex(fn ValueRef, idx int, kind []byte) AttributeRef {
	for _, a := range fn.attrs[idx] {
		if a.isString && a.skind == string(kind) {
			return a
		}
	}
	return nil
}

// RemoveEnumAttributeAtIndex removes the enum attribute of the given kind at
// an index. Unchecked.
func RemoveEnumAttributeAtIndex(fn ValueRef, idx, kindID int) {
	list := fn.attrs[idx]
	for i, a := range list {
		if !a.isString && a.kindID == kindID {
			fn.attrs[idx] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// AppendBasicBlockInContext appends a fresh block to a function.
func AppendBasicBlockInContext(c ContextRef, fn ValueRef, name []byte) BasicBlockRef {
	bb := newBlock(c, fn, name)
	fn.blocks = append(fn.blocks, bb)
	return bb
}

// InsertBasicBlockAfter inserts a fresh block right after pos in its
// function. Unchecked.
func InsertBasicBlockAfter(c ContextRef, pos BasicBlockRef, name []byte) BasicBlockRef {
	fn := pos.fn
	bb := newBlock(c, fn, name)
	for i, b := range fn.blocks {
		if b == pos {
			fn.blocks = append(fn.blocks[:i+1], append([]*rawBlock{bb}, fn.blocks[i+1:]...)...)
			return bb
		}
	}
	return bb
}

// InsertBasicBlockBefore inserts a fresh block right before pos in its
// function. Unchecked.
func InsertBasicBlockBefore(c ContextRef, pos BasicBlockRef, name []byte) BasicBlockRef {
	fn := pos.fn
	bb := newBlock(c, fn, name)
	for i, b := range fn.blocks {
		if b == pos {
			fn.blocks = append(fn.blocks[:i], append([]*rawBlock{bb}, fn.blocks[i:]...)...)
			return bb
		}
	}
	return bb
}

func newBlock(c ContextRef, fn *rawValue, name []byte) *rawBlock {
	bb := &rawBlock{ctx: c, fn: fn, name: append([]byte(nil), name...)}
	bb.val = &rawValue{
		ctx:  c,
		kind: BasicBlockValueKind,
		typ:  LabelTypeInContext(c),
		name: bb.name,
		bb:   bb,
	}
	return bb
}

// CountBasicBlocks returns the block count. Unchecked.
func CountBasicBlocks(fn ValueRef) int { return len(fn.blocks) }

// GetEntryBasicBlock returns the entry block, nil for declarations.
func GetEntryBasicBlock(fn ValueRef) BasicBlockRef { return firstBlock(fn.blocks) }

// GetFirstBasicBlock returns the first block, nil for declarations.
func GetFirstBasicBlock(fn ValueRef) BasicBlockRef { return firstBlock(fn.blocks) }

// GetLastBasicBlock returns the last block, nil for declarations.
func GetLastBasicBlock(fn ValueRef) BasicBlockRef {
	if len(fn.blocks) == 0 {
		return nil
	}
	return fn.blocks[len(fn.blocks)-1]
}

// GetBasicBlocks returns the function's blocks in order.
func GetBasicBlocks(fn ValueRef) []BasicBlockRef {
	return append([]BasicBlockRef(nil), fn.blocks...)
}

func firstBlock(list []*rawBlock) *rawBlock {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}
