package native

import "fmt"

// Debug info builder. Emits opaque metadata nodes only; there is no DWARF
// model behind them.

type rawDIBuilder struct {
	mod     *rawModule
	ctx     *rawContext
	pending []*rawValue
}

// CreateDIBuilder allocates a debug info builder for a module.
func CreateDIBuilder(m ModuleRef) DIBuilderRef {
	return &rawDIBuilder{mod: m, ctx: m.ctx}
}

// DisposeDIBuilder frees the builder. One-shot.
func DisposeDIBuilder(d DIBuilderRef) {
	d.pending = nil
	d.mod = nil
}

func (d *rawDIBuilder) node(tag string, ops ...ValueRef) ValueRef {
	all := append([]ValueRef{MDStringInContext(d.ctx, []byte(tag))}, ops...)
	n := MDNodeInContext(d.ctx, all)
	d.pending = append(d.pending, n)
	return n
}

// DIBuilderCreateFile creates a file descriptor node.
func DIBuilderCreateFile(d DIBuilderRef, filename, directory []byte) ValueRef {
	return d.node("DIFile",
		MDStringInContext(d.ctx, filename),
		MDStringInContext(d.ctx, directory))
}

// DIBuilderCreateCompileUnit creates a compile unit node rooted at a file.
func DIBuilderCreateCompileUnit(d DIBuilderRef, lang int, file ValueRef, producer []byte, optimized bool) ValueRef {
	return d.node("DICompileUnit",
		MDStringInContext(d.ctx, []byte(fmt.Sprintf("lang=%d", lang))),
		file,
		MDStringInContext(d.ctx, producer),
		MDStringInContext(d.ctx, []byte(fmt.Sprintf("optimized=%t", optimized))))
}

// DIBuilderCreateFunction creates a subprogram node.
func DIBuilderCreateFunction(d DIBuilderRef, scope ValueRef, name, linkageName []byte, file ValueRef, line int) ValueRef {
	return d.node("DISubprogram",
		scope,
		MDStringInContext(d.ctx, name),
		MDStringInContext(d.ctx, linkageName),
		file,
		MDStringInContext(d.ctx, []byte(fmt.Sprintf("line=%d", line))))
}

// DIBuilderFinalize attaches every pending node to the module under the
// llvm.dbg.cu named metadata.
func DIBuilderFinalize(d DIBuilderRef) {
	md := GetOrInsertNamedMetadata(d.mod, []byte("llvm.dbg.cu"))
	for _, n := range d.pending {
		AddNamedMetadataOperand(md, n)
	}
	d.pending = nil
}
