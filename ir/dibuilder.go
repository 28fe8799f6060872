package ir

import (
	"github.com/wippyai/ir-bindings/errors"
	"github.com/wippyai/ir-bindings/native"
)

// DIBuilder emits debug info metadata for one module. The nodes it creates
// are ordinary metadata values; attachment to the module happens on
// Finalize.
type DIBuilder struct {
	tok  *token
	node *lifetimeNode
	ref  native.DIBuilderRef
	dead bool
}

// DIBuilderManager holds a DIBuilder behind the Created -> Entered ->
// Disposed protocol.
type DIBuilderManager struct {
	m   manager
	mod *Module
	d   *DIBuilder
}

// NewDIBuilderManager creates an unentered debug info builder manager for
// this module.
func (m *Module) NewDIBuilderManager() (*DIBuilderManager, error) {
	if err := ensureOwner(m.tok, "new_di_builder_manager"); err != nil {
		return nil, err
	}
	return &DIBuilderManager{m: newManager("DIBuilder"), mod: m}, nil
}

// Enter creates the builder. One-shot.
func (dm *DIBuilderManager) Enter() (*DIBuilder, error) {
	if err := dm.m.enter("DIBuilder.Enter"); err != nil {
		return nil, err
	}
	d, err := dm.mod.NewDIBuilder()
	if err != nil {
		dm.m.state = managerDisposed
		return nil, err
	}
	dm.d = d
	dm.m.node = d.node
	return d, nil
}

// Exit disposes the builder. Pending nodes that were never finalized are
// dropped. The owning module stays live.
func (dm *DIBuilderManager) Exit() error {
	if err := dm.m.exit("DIBuilder.Exit"); err != nil {
		return err
	}
	if dm.d != nil {
		dm.d.dead = true
	}
	return nil
}

// Dispose releases an unentered manager. After Enter, use Exit.
func (dm *DIBuilderManager) Dispose() error {
	return dm.m.dispose("DIBuilder.Dispose")
}

// With runs fn inside an Enter/Exit pair, exiting on every path. The
// callback error wins over the exit error.
func (dm *DIBuilderManager) With(fn func(*DIBuilder) error) error {
	d, err := dm.Enter()
	if err != nil {
		return err
	}
	err = fn(d)
	if xerr := dm.Exit(); err == nil {
		err = xerr
	}
	return err
}

// NewDIBuilder creates a debug info builder owned by this module.
func (m *Module) NewDIBuilder() (*DIBuilder, error) {
	if err := ensureOwner(m.tok, "create_di_builder"); err != nil {
		return nil, err
	}
	ref := native.CreateDIBuilder(m.ref)
	d := &DIBuilder{tok: m.tok, ref: ref}
	// The node carries no token: disposing the builder must not invalidate
	// the module it annotates. Post-dispose access is gated by the dead
	// flag.
	d.node = newLifetimeNode(nil, func() { native.DisposeDIBuilder(ref) })
	m.node.adopt(d.node)
	return d, nil
}

// Dispose releases the builder without finalizing. One-shot.
func (d *DIBuilder) Dispose() error {
	if d.dead {
		return errors.Memory("dispose", "DIBuilder has already been disposed")
	}
	if err := ensureOwner(d.tok, "dispose"); err != nil {
		return err
	}
	d.dead = true
	d.node.dispose()
	return nil
}

func (d *DIBuilder) ensure(api string) error {
	if d.dead {
		return errors.Memory(api, "DIBuilder has already been disposed")
	}
	return ensureOwner(d.tok, api)
}

// CreateFile creates a file descriptor node.
func (d *DIBuilder) CreateFile(filename, directory string) (*Value, error) {
	if err := d.ensure("di_create_file"); err != nil {
		return nil, err
	}
	return wrapValue(d.tok, native.DIBuilderCreateFile(d.ref, []byte(filename), []byte(directory))), nil
}

// CreateCompileUnit creates a compile unit node rooted at a file node.
func (d *DIBuilder) CreateCompileUnit(lang int, file *Value, producer string, optimized bool) (*Value, error) {
	const api = "di_create_compile_unit"
	if err := d.ensure(api); err != nil {
		return nil, err
	}
	if err := file.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return nil, err
	}
	return wrapValue(d.tok, native.DIBuilderCreateCompileUnit(d.ref, lang, file.ref, []byte(producer), optimized)), nil
}

// CreateFunction creates a subprogram node under a scope.
func (d *DIBuilder) CreateFunction(scope *Value, name, linkageName string, file *Value, line int) (*Value, error) {
	const api = "di_create_function"
	if err := d.ensure(api); err != nil {
		return nil, err
	}
	if err := scope.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return nil, err
	}
	if err := file.expectKind(api, "a metadata value", MetadataAsValueValueKind); err != nil {
		return nil, err
	}
	if line < 0 {
		return nil, errors.Assertion(api, "line %d invalid (line >= 0)", line)
	}
	return wrapValue(d.tok, native.DIBuilderCreateFunction(d.ref, scope.ref, []byte(name), []byte(linkageName), file.ref, line)), nil
}

// Finalize attaches every pending node to the module.
func (d *DIBuilder) Finalize() error {
	if err := d.ensure("di_finalize"); err != nil {
		return err
	}
	native.DIBuilderFinalize(d.ref)
	return nil
}
