package native

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Object container format: "IROB" magic, version, section/symbol tables
// with length-prefixed byte strings, relocations attached per section.
var objectMagic = []byte("IROB")

const objectVersion = 1

// RelocationSpec describes one relocation when building an object.
type RelocationSpec struct {
	Offset      uint64
	Type        int
	TypeName    string
	SymbolIndex int
	ValueString string
}

// SectionSpec describes one section when building an object.
type SectionSpec struct {
	Name        []byte
	Address     uint64
	Size        uint64
	Contents    []byte
	Relocations []RelocationSpec
}

// SymbolSpec describes one symbol when building an object.
type SymbolSpec struct {
	Name         []byte
	Address      uint64
	Size         uint64
	SectionIndex int
}

// ObjectSpec describes a whole object file.
type ObjectSpec struct {
	Sections []SectionSpec
	Symbols  []SymbolSpec
}

type rawBinary struct {
	sections []SectionSpec
	symbols  []SymbolSpec
}

type rawSectionIterator struct {
	bin *rawBinary
	idx int
}

type rawSymbolIterator struct {
	bin *rawBinary
	idx int
}

type rawRelocationIterator struct {
	bin     *rawBinary
	sectIdx int
	idx     int
}

// WriteObject serializes an object description into the container format.
func WriteObject(spec ObjectSpec) []byte {
	var b bytes.Buffer
	b.Write(objectMagic)
	putU32(&b, objectVersion)
	putU32(&b, uint32(len(spec.Sections)))
	putU32(&b, uint32(len(spec.Symbols)))
	for _, s := range spec.Sections {
		putBytes(&b, s.Name)
		putU64(&b, s.Address)
		putU64(&b, s.Size)
		putBytes(&b, s.Contents)
		putU32(&b, uint32(len(s.Relocations)))
		for _, r := range s.Relocations {
			putU64(&b, r.Offset)
			putU32(&b, uint32(r.Type))
			putBytes(&b, []byte(r.TypeName))
			putU32(&b, uint32(r.SymbolIndex))
			putBytes(&b, []byte(r.ValueString))
		}
	}
	for _, s := range spec.Symbols {
		putBytes(&b, s.Name)
		putU64(&b, s.Address)
		putU64(&b, s.Size)
		putU32(&b, uint32(s.SectionIndex))
	}
	return b.Bytes()
}

// CreateBinary parses an object container. On failure the returned ref is
// nil and the diagnostic describes the problem.
func CreateBinary(data []byte) (BinaryRef, []byte) {
	r := &byteReader{data: data}
	magic := r.take(4)
	if magic == nil || !bytes.Equal(magic, objectMagic) {
		return nil, []byte("invalid object file magic")
	}
	version, ok := r.u32()
	if !ok || version != objectVersion {
		return nil, []byte(fmt.Sprintf("unsupported object version %d", version))
	}
	nSections, ok1 := r.u32()
	nSymbols, ok2 := r.u32()
	if !ok1 || !ok2 {
		return nil, []byte("truncated object header")
	}

	bin := &rawBinary{}
	for i := uint32(0); i < nSections; i++ {
		var s SectionSpec
		var nRelocs uint32
		if s.Name, ok = r.bytes(); !ok {
			return nil, []byte(fmt.Sprintf("truncated section %d", i))
		}
		if s.Address, ok = r.u64(); !ok {
			return nil, []byte(fmt.Sprintf("truncated section %d", i))
		}
		if s.Size, ok = r.u64(); !ok {
			return nil, []byte(fmt.Sprintf("truncated section %d", i))
		}
		if s.Contents, ok = r.bytes(); !ok {
			return nil, []byte(fmt.Sprintf("truncated section %d", i))
		}
		if nRelocs, ok = r.u32(); !ok {
			return nil, []byte(fmt.Sprintf("truncated section %d", i))
		}
		for j := uint32(0); j < nRelocs; j++ {
			var rel RelocationSpec
			var typ, symIdx uint32
			var tn, vs []byte
			if rel.Offset, ok = r.u64(); !ok {
				return nil, []byte(fmt.Sprintf("truncated relocation %d in section %d", j, i))
			}
			if typ, ok = r.u32(); !ok {
				return nil, []byte(fmt.Sprintf("truncated relocation %d in section %d", j, i))
			}
			if tn, ok = r.bytes(); !ok {
				return nil, []byte(fmt.Sprintf("truncated relocation %d in section %d", j, i))
			}
			if symIdx, ok = r.u32(); !ok {
				return nil, []byte(fmt.Sprintf("truncated relocation %d in section %d", j, i))
			}
			if vs, ok = r.bytes(); !ok {
				return nil, []byte(fmt.Sprintf("truncated relocation %d in section %d", j, i))
			}
			rel.Type = int(typ)
			rel.TypeName = string(tn)
			rel.SymbolIndex = int(symIdx)
			rel.ValueString = string(vs)
			s.Relocations = append(s.Relocations, rel)
		}
		bin.sections = append(bin.sections, s)
	}
	for i := uint32(0); i < nSymbols; i++ {
		var s SymbolSpec
		var sectIdx uint32
		if s.Name, ok = r.bytes(); !ok {
			return nil, []byte(fmt.Sprintf("truncated symbol %d", i))
		}
		if s.Address, ok = r.u64(); !ok {
			return nil, []byte(fmt.Sprintf("truncated symbol %d", i))
		}
		if s.Size, ok = r.u64(); !ok {
			return nil, []byte(fmt.Sprintf("truncated symbol %d", i))
		}
		if sectIdx, ok = r.u32(); !ok {
			return nil, []byte(fmt.Sprintf("truncated symbol %d", i))
		}
		if int(sectIdx) >= len(bin.sections) {
			return nil, []byte(fmt.Sprintf("symbol %d references section %d of %d", i, sectIdx, len(bin.sections)))
		}
		s.SectionIndex = int(sectIdx)
		bin.symbols = append(bin.symbols, s)
	}
	debugf("binary parsed: %d sections, %d symbols", len(bin.sections), len(bin.symbols))
	return bin, nil
}

// DisposeBinary frees the binary. One-shot.
func DisposeBinary(b BinaryRef) {
	b.sections = nil
	b.symbols = nil
}

// CopySectionIterator mints a section cursor at the first section.
func CopySectionIterator(b BinaryRef) SectionIteratorRef {
	return &rawSectionIterator{bin: b}
}

// IsSectionIteratorAtEnd reports whether the cursor has passed the last
// section.
func IsSectionIteratorAtEnd(it SectionIteratorRef) bool {
	return it.idx >= len(it.bin.sections)
}

// MoveToNextSection advances the cursor. Unchecked past the end.
func MoveToNextSection(it SectionIteratorRef) { it.idx++ }

// GetSectionName returns the current section name. Unchecked at end.
func GetSectionName(it SectionIteratorRef) []byte { return it.bin.sections[it.idx].Name }

// GetSectionAddress returns the current section address. Unchecked at end.
func GetSectionAddress(it SectionIteratorRef) uint64 { return it.bin.sections[it.idx].Address }

// GetSectionSize returns the current section size. Unchecked at end.
func GetSectionSize(it SectionIteratorRef) uint64 { return it.bin.sections[it.idx].Size }

// GetSectionContents returns the current section bytes. Unchecked at end.
func GetSectionContents(it SectionIteratorRef) []byte { return it.bin.sections[it.idx].Contents }

// SectionContainsSymbol reports whether the symbol lives in the current
// section. Unchecked at end.
func SectionContainsSymbol(it SectionIteratorRef, sym SymbolIteratorRef) bool {
	return it.bin.symbols[sym.idx].SectionIndex == it.idx
}

// MoveToContainingSection repositions the section cursor at the section
// holding the symbol. Unchecked at end.
func MoveToContainingSection(it SectionIteratorRef, sym SymbolIteratorRef) {
	it.idx = it.bin.symbols[sym.idx].SectionIndex
}

// CopySymbolIterator mints a symbol cursor at the first symbol.
func CopySymbolIterator(b BinaryRef) SymbolIteratorRef {
	return &rawSymbolIterator{bin: b}
}

// IsSymbolIteratorAtEnd reports whether the cursor has passed the last
// symbol.
func IsSymbolIteratorAtEnd(it SymbolIteratorRef) bool {
	return it.idx >= len(it.bin.symbols)
}

// MoveToNextSymbol advances the cursor. Unchecked past the end.
func MoveToNextSymbol(it SymbolIteratorRef) { it.idx++ }

// GetSymbolName returns the current symbol name. Unchecked at end.
func GetSymbolName(it SymbolIteratorRef) []byte { return it.bin.symbols[it.idx].Name }

// GetSymbolAddress returns the current symbol address. Unchecked at end.
func GetSymbolAddress(it SymbolIteratorRef) uint64 { return it.bin.symbols[it.idx].Address }

// GetSymbolSize returns the current symbol size. Unchecked at end.
func GetSymbolSize(it SymbolIteratorRef) uint64 { return it.bin.symbols[it.idx].Size }

// GetRelocations mints a relocation cursor over the current section.
// Unchecked at end.
func GetRelocations(it SectionIteratorRef) RelocationIteratorRef {
	return &rawRelocationIterator{bin: it.bin, sectIdx: it.idx}
}

// IsRelocationIteratorAtEnd reports whether the cursor has passed the last
// relocation of its section.
func IsRelocationIteratorAtEnd(it RelocationIteratorRef) bool {
	return it.idx >= len(it.bin.sections[it.sectIdx].Relocations)
}

// MoveToNextRelocation advances the cursor. Unchecked past the end.
func MoveToNextRelocation(it RelocationIteratorRef) { it.idx++ }

// GetRelocationOffset returns the current relocation offset. Unchecked at end.
func GetRelocationOffset(it RelocationIteratorRef) uint64 {
	return it.bin.sections[it.sectIdx].Relocations[it.idx].Offset
}

// GetRelocationType returns the current relocation type. Unchecked at end.
func GetRelocationType(it RelocationIteratorRef) int {
	return it.bin.sections[it.sectIdx].Relocations[it.idx].Type
}

// GetRelocationTypeName returns the current relocation type name. Unchecked
// at end.
func GetRelocationTypeName(it RelocationIteratorRef) []byte {
	return []byte(it.bin.sections[it.sectIdx].Relocations[it.idx].TypeName)
}

// GetRelocationValueString returns the current relocation value string.
// Unchecked at end.
func GetRelocationValueString(it RelocationIteratorRef) []byte {
	return []byte(it.bin.sections[it.sectIdx].Relocations[it.idx].ValueString)
}

func putU32(b *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.Write(tmp[:])
}

func putU64(b *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.Write(tmp[:])
}

func putBytes(b *bytes.Buffer, data []byte) {
	putU32(b, uint32(len(data)))
	b.Write(data)
}

type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) take(n int) []byte {
	if r.pos+n > len(r.data) {
		return nil
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *byteReader) u32() (uint32, bool) {
	b := r.take(4)
	if b == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (r *byteReader) u64() (uint64, bool) {
	b := r.take(8)
	if b == nil {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func (r *byteReader) bytes() ([]byte, bool) {
	n, ok := r.u32()
	if !ok {
		return nil, false
	}
	b := r.take(int(n))
	if b == nil {
		return nil, false
	}
	return append([]byte(nil), b...), true
}
