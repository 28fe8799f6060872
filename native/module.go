package native

import "fmt"

type rawModule struct {
	ctx        *rawContext
	name       []byte
	dataLayout string
	triple     string

	funcs   []*rawValue
	globals []*rawValue
	aliases []*rawValue
	ifuncs  []*rawValue

	namedMD     []*rawNamedMD
	comdats     map[string]*rawComdat
	comdatOrder []string
}

// ModuleCreateWithNameInContext allocates a module owned by c.
func ModuleCreateWithNameInContext(name []byte, c ContextRef) ModuleRef {
	m := &rawModule{
		ctx:     c,
		name:    append([]byte(nil), name...),
		comdats: make(map[string]*rawComdat),
	}
	c.modules = append(c.modules, m)
	debugf("module created: %s", name)
	return m
}

// DisposeModule frees the module. One-shot.
func DisposeModule(m ModuleRef) {
	for i, owned := range m.ctx.modules {
		if owned == m {
			m.ctx.modules = append(m.ctx.modules[:i], m.ctx.modules[i+1:]...)
			break
		}
	}
	debugf("module disposed: %s", m.name)
}

// GetModuleContext returns the owning context.
func GetModuleContext(m ModuleRef) ContextRef { return m.ctx }

// GetModuleIdentifier returns the module name bytes.
func GetModuleIdentifier(m ModuleRef) []byte { return m.name }

// SetModuleIdentifier sets the module name bytes.
func SetModuleIdentifier(m ModuleRef, name []byte) {
	m.name = append([]byte(nil), name...)
}

// GetDataLayoutStr returns the data layout string.
func GetDataLayoutStr(m ModuleRef) []byte { return []byte(m.dataLayout) }

// SetDataLayout sets the data layout string.
func SetDataLayout(m ModuleRef, layout []byte) { m.dataLayout = string(layout) }

// GetTarget returns the target triple.
func GetTarget(m ModuleRef) []byte { return []byte(m.triple) }

// SetTarget sets the target triple.
func SetTarget(m ModuleRef, triple []byte) { m.triple = string(triple) }

// AddFunction declares a function in the module.
func AddFunction(m ModuleRef, name []byte, fnTy TypeRef) ValueRef {
	fn := &rawValue{
		ctx:    m.ctx,
		kind:   FunctionValueKind,
		typ:    PointerTypeInContext(m.ctx, 0),
		fnType: fnTy,
		name:   append([]byte(nil), name...),
		module: m,
		attrs:  make(map[int][]*rawAttribute),
	}
	for i, pt := range fnTy.params {
		arg := &rawValue{
			ctx:       m.ctx,
			kind:      ArgumentValueKind,
			typ:       pt,
			name:      []byte(fmt.Sprintf("%d", i)),
			argParent: fn,
			argIndex:  i,
		}
		fn.args = append(fn.args, arg)
	}
	m.funcs = append(m.funcs, fn)
	return fn
}

// GetNamedFunction looks a function up by name, nil when absent.
func GetNamedFunction(m ModuleRef, name []byte) ValueRef {
	return findNamed(m.funcs, name)
}

// GetFirstFunction returns the first function, nil when none.
func GetFirstFunction(m ModuleRef) ValueRef { return first(m.funcs) }

// GetLastFunction returns the last function, nil when none.
func GetLastFunction(m ModuleRef) ValueRef { return last(m.funcs) }

// GetNextFunction returns the function after fn, nil at the end.
func GetNextFunction(fn ValueRef) ValueRef { return next(fn.module.funcs, fn) }

// GetPreviousFunction returns the function before fn, nil at the start.
func GetPreviousFunction(fn ValueRef) ValueRef { return prev(fn.module.funcs, fn) }

// DeleteFunction erases a function from its module.
func DeleteFunction(fn ValueRef) {
	fn.module.funcs = remove(fn.module.funcs, fn)
}

// AddGlobal adds a global variable declaration.
func AddGlobal(m ModuleRef, ty TypeRef, name []byte) ValueRef {
	g := &rawValue{
		ctx:    m.ctx,
		kind:   GlobalVariableValueKind,
		typ:    PointerTypeInContext(m.ctx, 0),
		fnType: ty, // value type of the global
		name:   append([]byte(nil), name...),
		module: m,
	}
	m.globals = append(m.globals, g)
	return g
}

// GetNamedGlobal looks a global up by name, nil when absent.
func GetNamedGlobal(m ModuleRef, name []byte) ValueRef {
	return findNamed(m.globals, name)
}

// GetFirstGlobal returns the first global, nil when none.
func GetFirstGlobal(m ModuleRef) ValueRef { return first(m.globals) }

// GetLastGlobal returns the last global, nil when none.
func GetLastGlobal(m ModuleRef) ValueRef { return last(m.globals) }

// GetNextGlobal returns the global after g, nil at the end.
func GetNextGlobal(g ValueRef) ValueRef { return next(g.module.globals, g) }

// GetPreviousGlobal returns the global before g, nil at the start.
func GetPreviousGlobal(g ValueRef) ValueRef { return prev(g.module.globals, g) }

// DeleteGlobal erases a global variable from its module.
func DeleteGlobal(g ValueRef) {
	g.module.globals = remove(g.module.globals, g)
}

// GetInitializer returns the global's initializer, nil when a declaration.
func GetInitializer(g ValueRef) ValueRef {
	if len(g.operands) == 0 {
		return nil
	}
	return g.operands[0]
}

// SetInitializer sets the global's initializer.
func SetInitializer(g ValueRef, val ValueRef) {
	if len(g.operands) == 0 {
		g.addOperand(val)
		return
	}
	SetOperand(g, 0, val)
}

// AddAlias adds a global alias for aliasee.
func AddAlias(m ModuleRef, valueTy TypeRef, addrspace int, aliasee ValueRef, name []byte) ValueRef {
	a := &rawValue{
		ctx:    m.ctx,
		kind:   GlobalAliasValueKind,
		typ:    PointerTypeInContext(m.ctx, addrspace),
		fnType: valueTy,
		name:   append([]byte(nil), name...),
		module: m,
	}
	a.addOperand(aliasee)
	m.aliases = append(m.aliases, a)
	return a
}

// GetNamedGlobalAlias looks an alias up by name, nil when absent.
func GetNamedGlobalAlias(m ModuleRef, name []byte) ValueRef {
	return findNamed(m.aliases, name)
}

// GetFirstGlobalAlias returns the first alias, nil when none.
func GetFirstGlobalAlias(m ModuleRef) ValueRef { return first(m.aliases) }

// GetLastGlobalAlias returns the last alias, nil when none.
func GetLastGlobalAlias(m ModuleRef) ValueRef { return last(m.aliases) }

// GetNextGlobalAlias returns the alias after a, nil at the end.
func GetNextGlobalAlias(a ValueRef) ValueRef { return next(a.module.aliases, a) }

// GetPreviousGlobalAlias returns the alias before a, nil at the start.
func GetPreviousGlobalAlias(a ValueRef) ValueRef { return prev(a.module.aliases, a) }

// AliasGetAliasee returns the alias target. Unchecked.
func AliasGetAliasee(a ValueRef) ValueRef { return a.operands[0] }

// AliasSetAliasee replaces the alias target. Unchecked.
func AliasSetAliasee(a ValueRef, aliasee ValueRef) { SetOperand(a, 0, aliasee) }

// AddGlobalIFunc adds an ifunc with the given resolver.
func AddGlobalIFunc(m ModuleRef, name []byte, valueTy TypeRef, addrspace int, resolver ValueRef) ValueRef {
	g := &rawValue{
		ctx:    m.ctx,
		kind:   GlobalIFuncValueKind,
		typ:    PointerTypeInContext(m.ctx, addrspace),
		fnType: valueTy,
		name:   append([]byte(nil), name...),
		module: m,
	}
	g.addOperand(resolver)
	m.ifuncs = append(m.ifuncs, g)
	return g
}

// GetNamedGlobalIFunc looks an ifunc up by name, nil when absent.
func GetNamedGlobalIFunc(m ModuleRef, name []byte) ValueRef {
	return findNamed(m.ifuncs, name)
}

// GetFirstGlobalIFunc returns the first ifunc, nil when none.
func GetFirstGlobalIFunc(m ModuleRef) ValueRef { return first(m.ifuncs) }

// GetLastGlobalIFunc returns the last ifunc, nil when none.
func GetLastGlobalIFunc(m ModuleRef) ValueRef { return last(m.ifuncs) }

// GetNextGlobalIFunc returns the ifunc after g, nil at the end.
func GetNextGlobalIFunc(g ValueRef) ValueRef { return next(g.module.ifuncs, g) }

// GetPreviousGlobalIFunc returns the ifunc before g, nil at the start.
func GetPreviousGlobalIFunc(g ValueRef) ValueRef { return prev(g.module.ifuncs, g) }

// GetGlobalIFuncResolver returns the resolver function. Unchecked.
func GetGlobalIFuncResolver(g ValueRef) ValueRef { return g.operands[0] }

// SetGlobalIFuncResolver replaces the resolver. Unchecked.
func SetGlobalIFuncResolver(g ValueRef, resolver ValueRef) { SetOperand(g, 0, resolver) }

// EraseGlobalIFunc removes and destroys an ifunc.
func EraseGlobalIFunc(g ValueRef) {
	g.module.ifuncs = remove(g.module.ifuncs, g)
}

// RemoveGlobalIFunc detaches an ifunc from its module without destroying it.
func RemoveGlobalIFunc(g ValueRef) {
	g.module.ifuncs = remove(g.module.ifuncs, g)
}

// GetGlobalValueType returns the value type of a global. Unchecked.
func GetGlobalValueType(g ValueRef) TypeRef { return g.fnType }

// GetLinkage returns the global's linkage. Unchecked.
func GetLinkage(g ValueRef) Linkage { return g.linkage }

// SetLinkage sets the global's linkage. Unchecked.
func SetLinkage(g ValueRef, l Linkage) { g.linkage = l }

// GetUnnamedAddress returns the global's unnamed_addr. Unchecked.
func GetUnnamedAddress(g ValueRef) UnnamedAddr { return g.unnamedAddr }

// SetUnnamedAddress sets the global's unnamed_addr. Unchecked.
func SetUnnamedAddress(g ValueRef, u UnnamedAddr) { g.unnamedAddr = u }

// GetVisibility returns the global's visibility. Unchecked.
func GetVisibility(g ValueRef) Visibility { return g.visibility }

// SetVisibility sets the global's visibility. Unchecked.
func SetVisibility(g ValueRef, v Visibility) { g.visibility = v }

// GetSection returns the global's section name. Unchecked.
func GetSection(g ValueRef) []byte { return []byte(g.section) }

// SetSection sets the global's section name. Unchecked.
func SetSection(g ValueRef, s []byte) { g.section = string(s) }

// IsDeclaration reports whether the global has no body or initializer.
func IsDeclaration(g ValueRef) bool {
	switch g.kind {
	case FunctionValueKind:
		return len(g.blocks) == 0
	case GlobalVariableValueKind:
		return len(g.operands) == 0
	}
	return false
}

// MetadataEntries is a snapshot of metadata attachments, indexable only
// through the ValueMetadataEntry accessors.
type MetadataEntries = []mdEntry

// GlobalCopyAllMetadata snapshots a global's metadata attachments.
func GlobalCopyAllMetadata(g ValueRef) MetadataEntries {
	return append([]mdEntry(nil), g.mdEntries...)
}

// GlobalSetMetadata attaches metadata to a global under a kind id.
func GlobalSetMetadata(g ValueRef, kindID int, md ValueRef) {
	g.mdEntries = append(g.mdEntries, mdEntry{kindID: kindID, md: md})
}

// ValueMetadataEntryKind returns the kind id of snapshot entry i. Unchecked.
func ValueMetadataEntryKind(entries []mdEntry, i int) int { return entries[i].kindID }

// ValueMetadataEntryMetadata returns the metadata of snapshot entry i. Unchecked.
func ValueMetadataEntryMetadata(entries []mdEntry, i int) ValueRef { return entries[i].md }

// GetComdat returns the global's comdat, nil when unset.
func GetComdat(g ValueRef) ComdatRef { return g.comdat }

// SetComdat assigns a comdat to a global.
func SetComdat(g ValueRef, c ComdatRef) { g.comdat = c }

// GetOrInsertComdat returns the module's comdat of the given name.
func GetOrInsertComdat(m ModuleRef, name []byte) ComdatRef {
	key := string(name)
	if c, ok := m.comdats[key]; ok {
		return c
	}
	c := &rawComdat{name: key}
	m.comdats[key] = c
	m.comdatOrder = append(m.comdatOrder, key)
	return c
}

// GetOrInsertNamedMetadata returns the named metadata node of the given name.
func GetOrInsertNamedMetadata(m ModuleRef, name []byte) NamedMDRef {
	for _, nmd := range m.namedMD {
		if nmd.name == string(name) {
			return nmd
		}
	}
	nmd := &rawNamedMD{name: string(name)}
	m.namedMD = append(m.namedMD, nmd)
	return nmd
}

// GetNamedMetadata looks up a named metadata node, nil when absent.
func GetNamedMetadata(m ModuleRef, name []byte) NamedMDRef {
	for _, nmd := range m.namedMD {
		if nmd.name == string(name) {
			return nmd
		}
	}
	return nil
}

// GetNamedMetadataNumOperands returns the operand count of a named node.
func GetNamedMetadataNumOperands(nmd NamedMDRef) int { return len(nmd.operands) }

// GetNamedMetadataOperands returns the operands of a named node.
func GetNamedMetadataOperands(nmd NamedMDRef) []ValueRef {
	return append([]ValueRef(nil), nmd.operands...)
}

// AddNamedMetadataOperand appends an operand to a named node.
func AddNamedMetadataOperand(nmd NamedMDRef, md ValueRef) {
	nmd.operands = append(nmd.operands, md)
}

// GetNamedMetadataName returns the node's name bytes.
func GetNamedMetadataName(nmd NamedMDRef) []byte { return []byte(nmd.name) }

// NamedMetadataNames lists the module's named metadata in order.
func NamedMetadataNames(m ModuleRef) [][]byte {
	out := make([][]byte, len(m.namedMD))
	for i, nmd := range m.namedMD {
		out[i] = []byte(nmd.name)
	}
	return out
}

// CloneModule deep-copies the module skeleton: identifier, layout, triple,
// and global declarations. Instruction bodies are not cloned.
func CloneModule(m ModuleRef) ModuleRef {
	clone := ModuleCreateWithNameInContext(m.name, m.ctx)
	clone.dataLayout = m.dataLayout
	clone.triple = m.triple
	for _, fn := range m.funcs {
		AddFunction(clone, fn.name, fn.fnType)
	}
	for _, g := range m.globals {
		ng := AddGlobal(clone, g.fnType, g.name)
		ng.linkage = g.linkage
	}
	return clone
}

// VerifyModule checks structural well-formedness: every block must have a
// terminator and terminators may only appear last. Returns ok plus a
// diagnostic when not ok.
func VerifyModule(m ModuleRef) (bool, []byte) {
	for _, fn := range m.funcs {
		for _, bb := range fn.blocks {
			n := len(bb.instrs)
			if n == 0 || !bb.instrs[n-1].op.IsTerminator() {
				return false, []byte(fmt.Sprintf(
					"basic block %q in function %q does not end with a terminator",
					bb.name, fn.name))
			}
			for _, inst := range bb.instrs[:n-1] {
				if inst.op.IsTerminator() {
					return false, []byte(fmt.Sprintf(
						"terminator %q in the middle of basic block %q in function %q",
						inst.op, bb.name, fn.name))
				}
			}
		}
	}
	return true, nil
}

func findNamed(list []*rawValue, name []byte) *rawValue {
	for _, v := range list {
		if string(v.name) == string(name) {
			return v
		}
	}
	return nil
}

func first(list []*rawValue) *rawValue {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

func last(list []*rawValue) *rawValue {
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func next(list []*rawValue, v *rawValue) *rawValue {
	for i, e := range list {
		if e == v && i+1 < len(list) {
			return list[i+1]
		}
	}
	return nil
}

func prev(list []*rawValue, v *rawValue) *rawValue {
	for i, e := range list {
		if e == v && i > 0 {
			return list[i-1]
		}
	}
	return nil
}

func remove(list []*rawValue, v *rawValue) []*rawValue {
	for i, e := range list {
		if e == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
