package native

// Opaque reference types. Each is a pointer into context-owned storage;
// after the owning dispose call the pointee is garbage.
type (
	ContextRef            = *rawContext
	ModuleRef             = *rawModule
	TypeRef               = *rawType
	ValueRef              = *rawValue
	BasicBlockRef         = *rawBlock
	BuilderRef            = *rawBuilder
	AttributeRef          = *rawAttribute
	NamedMDRef            = *rawNamedMD
	ComdatRef             = *rawComdat
	OperandBundleRef      = *rawBundle
	UseRef                = *rawUse
	BinaryRef             = *rawBinary
	SectionIteratorRef    = *rawSectionIterator
	SymbolIteratorRef     = *rawSymbolIterator
	RelocationIteratorRef = *rawRelocationIterator
	DIBuilderRef          = *rawDIBuilder
)

type intKey struct {
	width  int
	value  uint64
	signed bool
}

type rawContext struct {
	voidTy     *rawType
	halfTy     *rawType
	floatTy    *rawType
	doubleTy   *rawType
	labelTy    *rawType
	tokenTy    *rawType
	metadataTy *rawType

	intTys    map[int]*rawType
	ptrTys    map[int]*rawType
	intConsts map[intKey]*rawValue

	syncScopes []string
	attrKinds  map[string]int

	modules []*rawModule
	dead    bool
}

// ContextCreate allocates a fresh context.
func ContextCreate() ContextRef {
	c := &rawContext{
		intTys:    make(map[int]*rawType),
		ptrTys:    make(map[int]*rawType),
		intConsts: make(map[intKey]*rawValue),
		// Scope 0 is singlethread, 1 is system, matching the native library.
		syncScopes: []string{"singlethread", ""},
		attrKinds:  make(map[string]int),
	}
	debugf("context created")
	return c
}

// ContextDispose frees the context and everything it owns. One-shot.
func ContextDispose(c ContextRef) {
	c.dead = true
	c.modules = nil
	debugf("context disposed")
}

// GetSyncScopeID interns a synchronization scope name.
func GetSyncScopeID(c ContextRef, name []byte) int {
	s := string(name)
	for i, existing := range c.syncScopes {
		if existing == s {
			return i
		}
	}
	c.syncScopes = append(c.syncScopes, s)
	return len(c.syncScopes) - 1
}

// GetEnumAttributeKindForName maps an attribute name to its numeric kind,
// or 0 when unknown.
func GetEnumAttributeKindForName(c ContextRef, name []byte) int {
	if id, ok := c.attrKinds[string(name)]; ok {
		return id
	}
	id := len(c.attrKinds) + 1
	c.attrKinds[string(name)] = id
	return id
}

// CreateEnumAttribute creates an enum attribute in the context.
func CreateEnumAttribute(c ContextRef, kindID int, val uint64) AttributeRef {
	return &rawAttribute{kindID: kindID, val: val}
}

// CreateStringAttribute creates a string attribute in the context.
func CreateStringAttribute(c ContextRef, kind, value []byte) AttributeRef {
	return &rawAttribute{isString: true, skind: string(kind), sval: string(value)}
}

// CreateOperandBundle packages a tag with bundle arguments.
func CreateOperandBundle(tag []byte, args []ValueRef) OperandBundleRef {
	return &rawBundle{tag: string(tag), args: append([]ValueRef(nil), args...)}
}

// GetOperandBundleTag returns the bundle tag bytes.
func GetOperandBundleTag(b OperandBundleRef) []byte {
	return []byte(b.tag)
}

// GetNumOperandBundleArgs returns the bundle argument count.
func GetNumOperandBundleArgs(b OperandBundleRef) int {
	return len(b.args)
}

// GetOperandBundleArgAtIndex returns bundle argument i. Unchecked.
func GetOperandBundleArgAtIndex(b OperandBundleRef, i int) ValueRef {
	return b.args[i]
}

type rawAttribute struct {
	isString bool
	kindID   int
	val      uint64
	skind    string
	sval     string
}

// IsStringAttribute reports whether a is a string attribute.
func IsStringAttribute(a AttributeRef) bool { return a.isString }

// GetEnumAttributeKind returns the numeric kind of an enum attribute.
func GetEnumAttributeKind(a AttributeRef) int { return a.kindID }

// GetEnumAttributeValue returns the payload of an enum attribute.
func GetEnumAttributeValue(a AttributeRef) uint64 { return a.val }

// GetStringAttributeKind returns the kind bytes of a string attribute.
func GetStringAttributeKind(a AttributeRef) []byte { return []byte(a.skind) }

// GetStringAttributeValue returns the value bytes of a string attribute.
func GetStringAttributeValue(a AttributeRef) []byte { return []byte(a.sval) }

type rawBundle struct {
	tag  string
	args []ValueRef
}

type rawUse struct {
	user *rawValue
	idx  int
}

// GetUser returns the value containing the use.
func GetUser(u UseRef) ValueRef { return u.user }

// GetUsedValue returns the value being used.
func GetUsedValue(u UseRef) ValueRef { return u.user.operands[u.idx] }

type rawComdat struct {
	name string
	kind ComdatSelectionKind
}

// GetComdatSelectionKind returns the comdat's resolution kind.
func GetComdatSelectionKind(c ComdatRef) ComdatSelectionKind { return c.kind }

// SetComdatSelectionKind sets the comdat's resolution kind.
func SetComdatSelectionKind(c ComdatRef, k ComdatSelectionKind) { c.kind = k }

// GetComdatName returns the comdat's name bytes.
func GetComdatName(c ComdatRef) []byte { return []byte(c.name) }

type rawNamedMD struct {
	name     string
	operands []*rawValue
}
