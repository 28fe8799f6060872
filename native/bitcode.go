package native

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Bitcode-like serialization. The wire format is private to this library:
// a magic header followed by length-prefixed records for the module
// identifier, layout, triple, global declarations, and function
// declarations with their textual type signatures. Function bodies are not
// serialized; parsed modules come back as lazily-materializable
// declarations.
var bitcodeMagic = []byte{'B', 'C', 0xC0, 0xDE}

// WriteBitcodeToMemory serializes the module skeleton.
func WriteBitcodeToMemory(m ModuleRef) []byte {
	var b bytes.Buffer
	b.Write(bitcodeMagic)
	putBytes(&b, m.name)
	putBytes(&b, []byte(m.dataLayout))
	putBytes(&b, []byte(m.triple))
	putU32(&b, uint32(len(m.globals)))
	for _, g := range m.globals {
		putBytes(&b, g.name)
		putBytes(&b, []byte(typeString(g.fnType)))
	}
	putU32(&b, uint32(len(m.funcs)))
	for _, fn := range m.funcs {
		putBytes(&b, fn.name)
		putBytes(&b, []byte(typeString(fn.fnType)))
	}
	return b.Bytes()
}

// ParseBitcodeInContext deserializes a module skeleton. On failure the
// returned ref is nil and the diagnostic describes the problem.
func ParseBitcodeInContext(c ContextRef, data []byte) (ModuleRef, []byte) {
	r := &byteReader{data: data}
	magic := r.take(4)
	if magic == nil || !bytes.Equal(magic, bitcodeMagic) {
		return nil, []byte("invalid bitcode signature")
	}
	name, ok1 := r.bytes()
	layout, ok2 := r.bytes()
	triple, ok3 := r.bytes()
	if !ok1 || !ok2 || !ok3 {
		return nil, []byte("truncated bitcode header")
	}

	m := ModuleCreateWithNameInContext(name, c)
	m.dataLayout = string(layout)
	m.triple = string(triple)

	nGlobals, ok := r.u32()
	if !ok {
		return nil, []byte("truncated global table")
	}
	for i := uint32(0); i < nGlobals; i++ {
		gname, ok1 := r.bytes()
		tyText, ok2 := r.bytes()
		if !ok1 || !ok2 {
			return nil, []byte(fmt.Sprintf("truncated global record %d", i))
		}
		ty, err := parseTypeText(c, string(tyText))
		if err != nil {
			return nil, []byte(fmt.Sprintf("global %q: %v", gname, err))
		}
		AddGlobal(m, ty, gname)
	}

	nFuncs, ok := r.u32()
	if !ok {
		return nil, []byte("truncated function table")
	}
	for i := uint32(0); i < nFuncs; i++ {
		fname, ok1 := r.bytes()
		tyText, ok2 := r.bytes()
		if !ok1 || !ok2 {
			return nil, []byte(fmt.Sprintf("truncated function record %d", i))
		}
		ty, err := parseTypeText(c, string(tyText))
		if err != nil {
			return nil, []byte(fmt.Sprintf("function %q: %v", fname, err))
		}
		if ty.kind != FunctionTypeKind {
			return nil, []byte(fmt.Sprintf("function %q: signature %q is not a function type", fname, tyText))
		}
		AddFunction(m, fname, ty)
	}
	return m, nil
}

// parseTypeText parses the subset of type syntax emitted by typeString.
func parseTypeText(c ContextRef, s string) (TypeRef, error) {
	p := &typeParser{ctx: c, src: s}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	// A trailing parameter list makes it a function type.
	if strings.HasPrefix(p.rest(), "(") {
		return p.parseFunction(t)
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("malformed type %q", s)
	}
	return t, nil
}

type typeParser struct {
	ctx ContextRef
	src string
	pos int
}

func (p *typeParser) rest() string { return p.src[p.pos:] }

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) eat(prefix string) bool {
	if strings.HasPrefix(p.rest(), prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *typeParser) parse() (TypeRef, error) {
	p.skipSpace()
	switch {
	case p.eat("void"):
		return VoidTypeInContext(p.ctx), nil
	case p.eat("half"):
		return HalfTypeInContext(p.ctx), nil
	case p.eat("float"):
		return FloatTypeInContext(p.ctx), nil
	case p.eat("double"):
		return DoubleTypeInContext(p.ctx), nil
	case p.eat("label"):
		return LabelTypeInContext(p.ctx), nil
	case p.eat("token"):
		return TokenTypeInContext(p.ctx), nil
	case p.eat("metadata"):
		return MetadataTypeInContext(p.ctx), nil
	case p.eat("ptr"):
		p.skipSpace()
		if p.eat("addrspace(") {
			n, err := p.number()
			if err != nil || !p.eat(")") {
				return nil, fmt.Errorf("malformed address space in %q", p.src)
			}
			return PointerTypeInContext(p.ctx, n), nil
		}
		return PointerTypeInContext(p.ctx, 0), nil
	case p.eat("i"):
		n, err := p.number()
		if err != nil {
			return nil, fmt.Errorf("malformed integer type in %q", p.src)
		}
		return IntTypeInContext(p.ctx, n), nil
	case p.eat("["):
		return p.parseSized("]", ArrayType)
	case p.eat("<{"):
		return p.parseStruct(true)
	case p.eat("<"):
		return p.parseSized(">", VectorType)
	case p.eat("{"):
		return p.parseStruct(false)
	case p.eat("%"):
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != ' ' && p.src[p.pos] != ',' && p.src[p.pos] != ')' {
			p.pos++
		}
		return StructCreateNamed(p.ctx, []byte(p.src[start:p.pos])), nil
	}
	return nil, fmt.Errorf("malformed type %q", p.src)
}

func (p *typeParser) parseSized(closer string, mk func(TypeRef, int) TypeRef) (TypeRef, error) {
	n, err := p.number()
	if err != nil {
		return nil, fmt.Errorf("malformed length in %q", p.src)
	}
	p.skipSpace()
	if !p.eat("x") {
		return nil, fmt.Errorf("malformed sized type in %q", p.src)
	}
	elem, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eat(closer) {
		return nil, fmt.Errorf("unterminated sized type in %q", p.src)
	}
	return mk(elem, n), nil
}

func (p *typeParser) parseStruct(packed bool) (TypeRef, error) {
	var fields []TypeRef
	p.skipSpace()
	closer := "}"
	if packed {
		closer = "}>"
	}
	if !p.eat(closer) {
		for {
			f, err := p.parse()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
			p.skipSpace()
			if p.eat(",") {
				continue
			}
			if p.eat(closer) {
				break
			}
			return nil, fmt.Errorf("unterminated struct in %q", p.src)
		}
	}
	return StructTypeInContext(p.ctx, fields, packed), nil
}

func (p *typeParser) parseFunction(ret TypeRef) (TypeRef, error) {
	if !p.eat("(") {
		return nil, fmt.Errorf("malformed function type in %q", p.src)
	}
	var params []TypeRef
	vararg := false
	p.skipSpace()
	if !p.eat(")") {
		for {
			p.skipSpace()
			if p.eat("...") {
				vararg = true
				p.skipSpace()
				if !p.eat(")") {
					return nil, fmt.Errorf("malformed varargs in %q", p.src)
				}
				break
			}
			t, err := p.parse()
			if err != nil {
				return nil, err
			}
			params = append(params, t)
			p.skipSpace()
			if p.eat(",") {
				continue
			}
			if p.eat(")") {
				break
			}
			return nil, fmt.Errorf("unterminated parameter list in %q", p.src)
		}
	}
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing data in type %q", p.src)
	}
	return FunctionType(ret, params, vararg), nil
}

func (p *typeParser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number")
	}
	return strconv.Atoi(p.src[start:p.pos])
}
