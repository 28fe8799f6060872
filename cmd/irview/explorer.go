package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ir-bindings/ir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	blockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateFunctions modelState = iota
	stateBlocks
	stateInstructions
)

// The explorer snapshots the module into plain structs at load time, so
// navigation never touches wrapper handles after the context manager
// exits.
type funcView struct {
	name   string
	blocks []blockView
}

type blockView struct {
	name   string
	instrs []string
}

type explorerModel struct {
	filename string
	demo     bool

	err    error
	funcs  []funcView
	filter textinput.Model

	state    modelState
	selFunc  int
	selBlock int
	selInstr int
}

func newExplorerModel(filename string, demo bool) *explorerModel {
	ti := textinput.New()
	ti.Placeholder = "filter functions"
	ti.Prompt = "/ "
	ti.Width = 40
	return &explorerModel{filename: filename, demo: demo, filter: ti}
}

type loadedMsg struct {
	err   error
	funcs []funcView
}

func (m *explorerModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *explorerModel) loadModule() tea.Msg {
	var funcs []funcView
	cm := ir.NewContext()
	err := cm.With(func(ctx *ir.Context) error {
		var (
			mod *ir.Module
			err error
		)
		if m.demo {
			mod, err = buildDemo(ctx)
		} else {
			var data []byte
			data, err = os.ReadFile(m.filename)
			if err != nil {
				return err
			}
			mod, err = ctx.ParseBitcode(data)
		}
		if err != nil {
			return err
		}

		fn, err := mod.FirstFunction()
		if err != nil {
			return err
		}
		for fn != nil {
			name, err := fn.Name()
			if err != nil {
				return err
			}
			fv := funcView{name: string(name)}
			blocks, err := fn.BasicBlocks()
			if err != nil {
				return err
			}
			for _, bb := range blocks {
				bname, err := bb.Name()
				if err != nil {
					return err
				}
				bv := blockView{name: string(bname)}
				instrs, err := bb.Instructions()
				if err != nil {
					return err
				}
				for _, in := range instrs {
					text, err := in.String()
					if err != nil {
						return err
					}
					bv.instrs = append(bv.instrs, text)
				}
				fv.blocks = append(fv.blocks, bv)
			}
			funcs = append(funcs, fv)
			if fn, err = fn.NextFunction(); err != nil {
				return err
			}
		}
		return nil
	})
	return loadedMsg{err: err, funcs: funcs}
}

func (m *explorerModel) visibleFuncs() []int {
	needle := strings.ToLower(m.filter.Value())
	var idx []int
	for i, f := range m.funcs {
		if needle == "" || strings.Contains(strings.ToLower(f.name), needle) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.filter.Focused() {
				return m, tea.Quit
			}

		case "/":
			if m.state == stateFunctions && !m.filter.Focused() {
				m.filter.Focus()
				return m, nil
			}

		case "up", "k":
			if !m.filter.Focused() {
				m.moveCursor(-1)
				return m, nil
			}

		case "down", "j":
			if !m.filter.Focused() {
				m.moveCursor(1)
				return m, nil
			}

		case "enter":
			if m.filter.Focused() {
				m.filter.Blur()
				m.selFunc = 0
				return m, nil
			}
			switch m.state {
			case stateFunctions:
				if len(m.visibleFuncs()) > 0 {
					m.state = stateBlocks
					m.selBlock = 0
				}
			case stateBlocks:
				if len(m.currentFunc().blocks) > 0 {
					m.state = stateInstructions
					m.selInstr = 0
				}
			}
			return m, nil

		case "esc":
			if m.filter.Focused() {
				m.filter.Blur()
				return m, nil
			}
			switch m.state {
			case stateInstructions:
				m.state = stateBlocks
			case stateBlocks:
				m.state = stateFunctions
			}
			return m, nil
		}

	case loadedMsg:
		m.err = msg.err
		m.funcs = msg.funcs
		return m, nil
	}

	if m.filter.Focused() {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *explorerModel) moveCursor(delta int) {
	switch m.state {
	case stateFunctions:
		m.selFunc = clamp(m.selFunc+delta, len(m.visibleFuncs()))
	case stateBlocks:
		m.selBlock = clamp(m.selBlock+delta, len(m.currentFunc().blocks))
	case stateInstructions:
		m.selInstr = clamp(m.selInstr+delta, len(m.currentBlock().instrs))
	}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n && n > 0 {
		return n - 1
	}
	if n == 0 {
		return 0
	}
	return v
}

func (m *explorerModel) currentFunc() funcView {
	vis := m.visibleFuncs()
	if len(vis) == 0 {
		return funcView{}
	}
	return m.funcs[vis[clamp(m.selFunc, len(vis))]]
}

func (m *explorerModel) currentBlock() blockView {
	f := m.currentFunc()
	if len(f.blocks) == 0 {
		return blockView{}
	}
	return f.blocks[clamp(m.selBlock, len(f.blocks))]
}

func (m *explorerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.funcs == nil {
		return "Loading module..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("IR Explorer"))
	b.WriteString(" ")
	if m.demo {
		b.WriteString("(demo)")
	} else {
		b.WriteString(m.filename)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateFunctions:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		vis := m.visibleFuncs()
		for i, fi := range vis {
			f := m.funcs[fi]
			line := fmt.Sprintf("%s (%d blocks)", funcStyle.Render(f.name), len(f.blocks))
			if i == clamp(m.selFunc, len(vis)) {
				b.WriteString(selectedStyle.Render("> " + f.name))
				b.WriteString(fmt.Sprintf(" (%d blocks)", len(f.blocks)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter blocks • / filter • q quit"))

	case stateBlocks:
		f := m.currentFunc()
		b.WriteString(fmt.Sprintf("Blocks of %s:\n\n", funcStyle.Render(f.name)))
		for i, bb := range f.blocks {
			line := fmt.Sprintf("%s (%d instructions)", blockStyle.Render(bb.name), len(bb.instrs))
			if i == clamp(m.selBlock, len(f.blocks)) {
				b.WriteString(selectedStyle.Render("> " + bb.name))
				b.WriteString(fmt.Sprintf(" (%d instructions)", len(bb.instrs)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter instructions • esc back • q quit"))

	case stateInstructions:
		f := m.currentFunc()
		bb := m.currentBlock()
		b.WriteString(fmt.Sprintf("%s / %s:\n\n", funcStyle.Render(f.name), blockStyle.Render(bb.name)))
		for i, in := range bb.instrs {
			if i == clamp(m.selInstr, len(bb.instrs)) {
				b.WriteString(selectedStyle.Render("> " + in))
			} else {
				b.WriteString("  " + in)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • esc back • q quit"))
	}

	return b.String()
}

// buildDemo assembles a small module with a branchy function, enough to
// give the explorer something to walk.
func buildDemo(ctx *ir.Context) (*ir.Module, error) {
	mod, err := ctx.NewModule("demo")
	if err != nil {
		return nil, err
	}
	i32, err := ctx.Int32Type()
	if err != nil {
		return nil, err
	}
	fnTy, err := ir.FunctionType(i32, []*ir.Type{i32}, false)
	if err != nil {
		return nil, err
	}
	fn, err := mod.AddFunction("clamp0", fnTy)
	if err != nil {
		return nil, err
	}
	entry, err := fn.AppendBasicBlock("entry")
	if err != nil {
		return nil, err
	}
	neg, err := fn.AppendBasicBlock("neg")
	if err != nil {
		return nil, err
	}
	done, err := fn.AppendBasicBlock("done")
	if err != nil {
		return nil, err
	}

	x, err := fn.Param(0)
	if err != nil {
		return nil, err
	}
	zero, err := ctx.ConstInt(i32, 0, false)
	if err != nil {
		return nil, err
	}

	bld, err := entry.NewBuilder()
	if err != nil {
		return nil, err
	}
	cond, err := bld.ICmp(ir.IntSLT, x, zero, "isneg")
	if err != nil {
		return nil, err
	}
	if _, err := bld.CondBr(cond, neg, done); err != nil {
		return nil, err
	}
	if err := bld.PositionAtEnd(neg); err != nil {
		return nil, err
	}
	if _, err := bld.Br(done); err != nil {
		return nil, err
	}
	if err := bld.PositionAtEnd(done); err != nil {
		return nil, err
	}
	phi, err := bld.Phi(i32, "out")
	if err != nil {
		return nil, err
	}
	if err := phi.AddIncoming([]*ir.Value{x, zero}, []*ir.BasicBlock{entry, neg}); err != nil {
		return nil, err
	}
	if _, err := bld.Ret(phi); err != nil {
		return nil, err
	}
	return mod, nil
}
