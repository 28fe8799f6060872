package native

type rawBlock struct {
	ctx    *rawContext
	fn     *rawValue
	name   []byte
	instrs []*rawValue
	val    *rawValue
}

// GetBasicBlockName returns the block's name bytes.
func GetBasicBlockName(bb BasicBlockRef) []byte { return bb.name }

// GetBasicBlockParent returns the owning function, nil when detached.
func GetBasicBlockParent(bb BasicBlockRef) ValueRef { return bb.fn }

// BasicBlockAsValue returns the block's value identity.
func BasicBlockAsValue(bb BasicBlockRef) ValueRef { return bb.val }

// ValueAsBasicBlock returns the block behind a block value. Unchecked.
func ValueAsBasicBlock(v ValueRef) BasicBlockRef { return v.bb }

// ValueIsBasicBlock reports whether v is a block value.
func ValueIsBasicBlock(v ValueRef) bool { return v.kind == BasicBlockValueKind }

// GetBasicBlockTerminator returns the block's terminator, nil when absent.
func GetBasicBlockTerminator(bb BasicBlockRef) ValueRef {
	if n := len(bb.instrs); n > 0 && bb.instrs[n-1].op.IsTerminator() {
		return bb.instrs[n-1]
	}
	return nil
}

// GetFirstInstruction returns the first instruction, nil when empty.
func GetFirstInstruction(bb BasicBlockRef) ValueRef { return first(bb.instrs) }

// GetLastInstruction returns the last instruction, nil when empty.
func GetLastInstruction(bb BasicBlockRef) ValueRef { return last(bb.instrs) }

// CountInstructions returns the instruction count.
func CountInstructions(bb BasicBlockRef) int { return len(bb.instrs) }

// GetInstructions returns the block's instructions in order.
func GetInstructions(bb BasicBlockRef) []ValueRef {
	return append([]ValueRef(nil), bb.instrs...)
}

// GetNextBasicBlock returns the block after bb, nil at the end. Unchecked.
func GetNextBasicBlock(bb BasicBlockRef) BasicBlockRef {
	blocks := bb.fn.blocks
	for i, b := range blocks {
		if b == bb && i+1 < len(blocks) {
			return blocks[i+1]
		}
	}
	return nil
}

// GetPreviousBasicBlock returns the block before bb, nil at the start. Unchecked.
func GetPreviousBasicBlock(bb BasicBlockRef) BasicBlockRef {
	blocks := bb.fn.blocks
	for i, b := range blocks {
		if b == bb && i > 0 {
			return blocks[i-1]
		}
	}
	return nil
}

// MoveBasicBlockBefore repositions bb before pos in its function. Unchecked.
func MoveBasicBlockBefore(bb, pos BasicBlockRef) {
	fn := bb.fn
	fn.blocks = removeBlock(fn.blocks, bb)
	for i, b := range fn.blocks {
		if b == pos {
			fn.blocks = append(fn.blocks[:i], append([]*rawBlock{bb}, fn.blocks[i:]...)...)
			return
		}
	}
	fn.blocks = append(fn.blocks, bb)
}

// MoveBasicBlockAfter repositions bb after pos in its function. Unchecked.
func MoveBasicBlockAfter(bb, pos BasicBlockRef) {
	fn := bb.fn
	fn.blocks = removeBlock(fn.blocks, bb)
	for i, b := range fn.blocks {
		if b == pos {
			fn.blocks = append(fn.blocks[:i+1], append([]*rawBlock{bb}, fn.blocks[i+1:]...)...)
			return
		}
	}
	fn.blocks = append(fn.blocks, bb)
}

// RemoveBasicBlockFromParent detaches bb without destroying it.
func RemoveBasicBlockFromParent(bb BasicBlockRef) {
	bb.fn.blocks = removeBlock(bb.fn.blocks, bb)
	bb.fn = nil
}

// DeleteBasicBlock detaches and destroys bb.
func DeleteBasicBlock(bb BasicBlockRef) {
	if bb.fn != nil {
		bb.fn.blocks = removeBlock(bb.fn.blocks, bb)
	}
	bb.instrs = nil
	bb.fn = nil
}

func removeBlock(list []*rawBlock, bb *rawBlock) []*rawBlock {
	for i, b := range list {
		if b == bb {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (bb *rawBlock) indexOf(inst *rawValue) int {
	for i, in := range bb.instrs {
		if in == inst {
			return i
		}
	}
	return -1
}

func (bb *rawBlock) insertAt(i int, inst *rawValue) {
	bb.instrs = append(bb.instrs[:i], append([]*rawValue{inst}, bb.instrs[i:]...)...)
	inst.parent = bb
}

func (bb *rawBlock) removeInstr(inst *rawValue) {
	if i := bb.indexOf(inst); i >= 0 {
		bb.instrs = append(bb.instrs[:i], bb.instrs[i+1:]...)
	}
	inst.parent = nil
}
