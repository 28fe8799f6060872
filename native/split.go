package native

// Block splitting. Both functions are unchecked: callers validate the
// split point first.

func newBr(c *rawContext, dest *rawBlock) *rawValue {
	br := &rawValue{
		ctx:  c,
		kind: InstructionValueKind,
		typ:  VoidTypeInContext(c),
		op:   Br,
	}
	br.addOperand(dest.val)
	return br
}

// SplitBasicBlock moves inst and everything after it into a fresh block
// inserted after bb, then terminates bb with a branch to the new block.
// Returns the new block.
func SplitBasicBlock(bb BasicBlockRef, inst ValueRef, name []byte) BasicBlockRef {
	idx := bb.indexOf(inst)
	tail := bb.instrs[idx:]
	newBB := InsertBasicBlockAfter(bb.ctx, bb, name)
	newBB.instrs = append([]*rawValue(nil), tail...)
	for _, in := range newBB.instrs {
		in.parent = newBB
	}
	bb.instrs = bb.instrs[:idx:idx]
	bb.insertAt(len(bb.instrs), newBr(bb.ctx, newBB))
	return newBB
}

// SplitBasicBlockBefore moves everything before inst into a fresh
// predecessor block inserted before bb, terminates it with a branch to bb,
// and rewires every edge that targeted bb (terminator successors, phi
// incoming blocks in bb) to the new block. Returns the new block.
func SplitBasicBlockBefore(bb BasicBlockRef, inst ValueRef, name []byte) BasicBlockRef {
	idx := bb.indexOf(inst)
	head := bb.instrs[:idx]
	newBB := InsertBasicBlockBefore(bb.ctx, bb, name)
	newBB.instrs = append([]*rawValue(nil), head...)
	for _, in := range newBB.instrs {
		in.parent = newBB
	}
	bb.instrs = bb.instrs[idx:]

	fn := bb.fn
	preds := map[*rawBlock]bool{}
	for _, blk := range fn.blocks {
		if blk == newBB {
			continue
		}
		n := len(blk.instrs)
		if n == 0 {
			continue
		}
		term := blk.instrs[n-1]
		if !term.op.IsTerminator() {
			continue
		}
		rewired := false
		for i, opnd := range term.operands {
			if opnd != nil && opnd.kind == BasicBlockValueKind && opnd.bb == bb {
				term.operands[i] = newBB.val
				rewired = true
			}
		}
		if term.normalDest == bb {
			term.normalDest = newBB
			rewired = true
		}
		if term.unwindDest == bb {
			term.unwindDest = newBB
			rewired = true
		}
		for i, d := range term.indirectDests {
			if d == bb {
				term.indirectDests[i] = newBB
				rewired = true
			}
		}
		if rewired {
			preds[blk] = true
		}
	}
	for _, in := range bb.instrs {
		if in.op != PHI {
			break
		}
		for i, ib := range in.inBlocks {
			if preds[ib] {
				in.inBlocks[i] = newBB
			}
		}
	}

	newBB.insertAt(len(newBB.instrs), newBr(newBB.ctx, bb))
	return newBB
}
