package native

import (
	"fmt"
	"strings"
)

// PrintModuleToString renders the module deterministically in IR-like
// syntax. The exact grammar is not a stable interface; byte-for-byte
// equality between two renderings of the same module state is.
func PrintModuleToString(m ModuleRef) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "; ModuleID = '%s'\n", m.name)
	fmt.Fprintf(&b, "source_filename = %q\n", m.name)
	if m.dataLayout != "" {
		fmt.Fprintf(&b, "target datalayout = %q\n", m.dataLayout)
	}
	if m.triple != "" {
		fmt.Fprintf(&b, "target triple = %q\n", m.triple)
	}

	for _, g := range m.globals {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "@%s = global %s", g.name, typeString(g.fnType))
		if init := GetInitializer(g); init != nil {
			b.WriteByte(' ')
			b.WriteString(valueBody(init))
		}
		b.WriteByte('\n')
	}
	for _, a := range m.aliases {
		fmt.Fprintf(&b, "@%s = alias %s, %s\n", a.name, typeString(a.fnType), valueString(a.operands[0], true))
	}
	for _, g := range m.ifuncs {
		fmt.Fprintf(&b, "@%s = ifunc %s, %s\n", g.name, typeString(g.fnType), valueString(g.operands[0], true))
	}

	for _, fn := range m.funcs {
		b.WriteByte('\n')
		printFunction(&b, fn)
	}

	for _, nmd := range m.namedMD {
		fmt.Fprintf(&b, "\n!%s = !{}\n", nmd.name)
	}

	return []byte(b.String())
}

func printFunction(b *strings.Builder, fn *rawValue) {
	keyword := "define"
	if len(fn.blocks) == 0 {
		keyword = "declare"
	}
	fmt.Fprintf(b, "%s %s @%s(", keyword, typeString(fn.fnType.ret), fn.name)
	for i, arg := range fn.args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s %%%s", typeString(arg.typ), arg.name)
	}
	b.WriteByte(')')
	if len(fn.blocks) == 0 {
		b.WriteByte('\n')
		return
	}
	b.WriteString(" {\n")
	for i, bb := range fn.blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(b, "%s:\n", bb.name)
		for _, inst := range bb.instrs {
			b.WriteString("  ")
			printInstruction(b, inst)
			b.WriteByte('\n')
		}
	}
	b.WriteString("}\n")
}

func printInstruction(b *strings.Builder, inst *rawValue) {
	if inst.typ != nil && inst.typ.kind != VoidTypeKind && len(inst.name) > 0 {
		fmt.Fprintf(b, "%%%s = ", inst.name)
	}
	b.WriteString(inst.op.String())

	switch inst.op {
	case ICmp:
		fmt.Fprintf(b, " %s", inst.flags.ipred)
	case FCmp:
		fmt.Fprintf(b, " %s", inst.flags.rpred)
	case AtomicRMW:
		fmt.Fprintf(b, " %s", inst.flags.rmwOp)
	case Add, Sub, Mul, Shl:
		if inst.flags.nuw {
			b.WriteString(" nuw")
		}
		if inst.flags.nsw {
			b.WriteString(" nsw")
		}
	case UDiv, SDiv, LShr, AShr:
		if inst.flags.exact {
			b.WriteString(" exact")
		}
	case Or:
		if inst.flags.disjoint {
			b.WriteString(" disjoint")
		}
	case ZExt:
		if inst.flags.nneg {
			b.WriteString(" nneg")
		}
	case GetElementPtr:
		if inst.flags.inBounds {
			b.WriteString(" inbounds")
		}
	case Alloca:
		fmt.Fprintf(b, " %s", typeString(inst.allocaTy))
		return
	case PHI:
		fmt.Fprintf(b, " %s ", typeString(inst.typ))
		for i := range inst.inBlocks {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "[ %s, %%%s ]", valueBody(inst.operands[i]), inst.inBlocks[i].name)
		}
		return
	case LandingPad:
		fmt.Fprintf(b, " %s", typeString(inst.typ))
		if inst.flags.cleanup {
			b.WriteString(" cleanup")
		}
		for _, cl := range inst.clauses {
			fmt.Fprintf(b, " catch %s", valueString(cl, true))
		}
		return
	case Invoke, Call, CallBr:
		fmt.Fprintf(b, " %s %s(", typeString(inst.fnType.ret), valueBody(GetCalledValue(inst)))
		for i := 0; i < inst.numArgs; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(valueString(inst.operands[i], true))
		}
		b.WriteByte(')')
		for _, bun := range inst.bundles {
			fmt.Fprintf(b, " [ %q(", bun.tag)
			for i, a := range bun.args {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(valueString(a, true))
			}
			b.WriteString(") ]")
		}
		if inst.op == Invoke {
			fmt.Fprintf(b, " to label %%%s unwind label %%%s", inst.normalDest.name, inst.unwindDest.name)
		}
		if inst.op == CallBr {
			fmt.Fprintf(b, " to label %%%s [", inst.normalDest.name)
			for i, d := range inst.indirectDests {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(b, "label %%%s", d.name)
			}
			b.WriteByte(']')
		}
		return
	case CatchSwitch:
		b.WriteString(" within none [")
		for i, h := range inst.handlers {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "label %%%s", h.name)
		}
		b.WriteByte(']')
		if inst.unwindDest != nil {
			fmt.Fprintf(b, " unwind label %%%s", inst.unwindDest.name)
		} else {
			b.WriteString(" unwind to caller")
		}
		return
	case ShuffleVector:
		fmt.Fprintf(b, " %s, %s, mask %v",
			valueString(inst.operands[0], true), valueString(inst.operands[1], true), inst.mask)
		return
	}

	for i, opnd := range inst.operands {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(valueString(opnd, true))
	}
}
