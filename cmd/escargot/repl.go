package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/escargot-js/escargot/ast"
	"github.com/escargot-js/escargot/bytecode"
	"github.com/escargot-js/escargot/value"
	"github.com/escargot-js/escargot/vm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// replState mirrors the teacher's modelState three-step flow
// (stateSelectFunc/stateInputArgs/stateShowResult), substituting the
// middle step for a bytecode/ESGraph inspector since these demo programs
// take no runtime arguments to collect.
type replState int

const (
	stateSelectDemo replState = iota
	stateShowBytecode
	stateShowResult
)

// demoItem adapts a demo name to bubbles/list's Item/DefaultItem contract,
// the role textinput.Model fills for the teacher's per-argument inputs in
// cmd/run/interactive.go.
type demoItem string

func (d demoItem) FilterValue() string { return string(d) }
func (d demoItem) Title() string       { return string(d) }
func (d demoItem) Description() string { return "" }

type replModel struct {
	machine *vm.VM
	list    list.Model
	state   replState

	cb     *bytecode.CodeBlock
	result string
	err    error
}

func newReplModel() *replModel {
	names := demoNames()
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = demoItem(name)
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 14)
	l.Title = "Select a demo program"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return &replModel{
		machine: vm.New(nil),
		list:    l,
		state:   stateSelectDemo,
	}
}

func (m *replModel) Init() tea.Cmd { return nil }

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(sizeMsg.Width, sizeMsg.Height-6)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "enter":
		switch m.state {
		case stateSelectDemo:
			m.compileSelected()
			m.state = stateShowBytecode
		case stateShowBytecode:
			m.runSelected()
			m.state = stateShowResult
		case stateShowResult:
			m.state = stateSelectDemo
			m.cb, m.result, m.err = nil, "", nil
		}
		return m, nil

	case "esc":
		if m.state != stateSelectDemo {
			m.state = stateSelectDemo
			m.cb, m.result, m.err = nil, "", nil
		}
		return m, nil
	}

	if m.state == stateSelectDemo {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *replModel) selectedName() string {
	item, ok := m.list.SelectedItem().(demoItem)
	if !ok {
		return ""
	}
	return string(item)
}

func (m *replModel) compileSelected() {
	d, _ := findDemo(m.selectedName())
	cb, err := ast.Compile(d.name, 0, d.program(), m.machine.Interpreter().Strings)
	m.cb, m.err = cb, err
}

func (m *replModel) runSelected() {
	if m.err != nil || m.cb == nil {
		return
	}
	result, err := m.machine.Run(m.cb, nil, value.Undefined, nil)
	if err != nil {
		m.err = err
		return
	}
	m.result = value.ToStringValue(result)
}

func (m *replModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("escargot debug REPL"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectDemo:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter compile • q quit"))

	case stateShowBytecode:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("compile error: %v", m.err)))
		} else {
			b.WriteString(bytecode.Disassemble(m.cb))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter run • esc back • q quit"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render("Result: " + m.result))
			b.WriteString("\n\n")
			if g, ok := m.machine.Graph(m.cb); ok {
				b.WriteString(g.String())
			} else {
				b.WriteString(helpStyle.Render("(never promoted past the interpreter)"))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back to list • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newReplModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
