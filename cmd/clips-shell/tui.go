package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// NewTUICommand creates the full-screen function browser command.
func NewTUICommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui",
		Short:         "Browse and call functions in a full-screen terminal UI",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newShellModel(rootOpts), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	return cmd
}

type shellModel struct {
	err      error
	opts     *RootOptions
	env      *runtime.Environment
	result   string
	funcs    []funcInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type funcInfo struct {
	name     string
	arity    string
	kinds    string
	params   []paramInfo
	variadic bool
}

type paramInfo struct {
	name string
	kind string
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

func newShellModel(opts *RootOptions) *shellModel {
	return &shellModel{opts: opts, state: stateSelectFunc}
}

type loadedMsg struct {
	err   error
	env   *runtime.Environment
	funcs []funcInfo
}

type callResultMsg struct {
	err    error
	result string
}

func (m *shellModel) Init() tea.Cmd {
	return m.loadEnvironment
}

func (m *shellModel) loadEnvironment() tea.Msg {
	env, err := m.opts.newEnvironment()
	if err != nil {
		return loadedMsg{err: err}
	}

	var funcs []funcInfo
	for _, fn := range env.Functions() {
		funcs = append(funcs, describeFunc(fn))
	}
	return loadedMsg{env: env, funcs: funcs}
}

// describeFunc flattens one function table entry for display. Fixed-arity
// functions get one input field per position; variadic ones take a free
// argument line.
func describeFunc(fn clipsruntime.Function) funcInfo {
	fi := funcInfo{
		name:     fn.Name,
		arity:    describeArity(fn),
		kinds:    describeKinds(fn),
		variadic: fn.MaxArgs < 0 || fn.MaxArgs != fn.MinArgs,
	}
	if !fi.variadic {
		for i := 0; i < fn.MaxArgs; i++ {
			kind := "ANY"
			if len(fn.ArgKinds) > 0 {
				j := i
				if j >= len(fn.ArgKinds) {
					j = len(fn.ArgKinds) - 1
				}
				kind = fn.ArgKinds[j].String()
			}
			fi.params = append(fi.params, paramInfo{
				name: fmt.Sprintf("arg%d", i+1),
				kind: kind,
			})
		}
	}
	return fi
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				if m.env != nil {
					m.env.Close()
				}
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.env = msg.env
		m.funcs = msg.funcs

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *shellModel) prepareInputs() {
	f := m.funcs[m.selected]

	if f.variadic {
		ti := textinput.New()
		ti.Placeholder = f.kinds
		ti.Prompt = "args: "
		ti.Width = 60
		ti.Focus()
		m.inputs = []textinput.Model{ti}
		m.focusIdx = 0
		return
	}

	m.inputs = make([]textinput.Model, len(f.params))
	for i, p := range f.params {
		ti := textinput.New()
		ti.Placeholder = p.kind
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *shellModel) callFunction() tea.Msg {
	if m.env == nil {
		return callResultMsg{err: fmt.Errorf("environment not ready")}
	}

	f := m.funcs[m.selected]
	parts := make([]string, 0, len(m.inputs))
	for _, input := range m.inputs {
		parts = append(parts, input.Value())
	}

	out, err := m.env.CallString(f.name, strings.Join(parts, " "))
	if err != nil {
		return callResultMsg{err: err}
	}
	if out.IsVoid() {
		return callResultMsg{result: "(void)"}
	}
	return callResultMsg{result: out.String()}
}

func (m *shellModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.funcs) == 0 {
		return "Starting engine..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("CLIPS Shell"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + m.formatFunc(f)))
			} else {
				b.WriteString(cursor + m.formatFunc(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			if !f.variadic {
				b.WriteString(" ")
				b.WriteString(typeStyle.Render(f.params[i].kind))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *shellModel) formatFunc(f funcInfo) string {
	if f.variadic {
		return funcStyle.Render(f.name) + "(" + typeStyle.Render(f.kinds) + ") " + helpStyle.Render(f.arity+" args")
	}
	var params []string
	for _, p := range f.params {
		params = append(params, p.name+": "+typeStyle.Render(p.kind))
	}
	return funcStyle.Render(f.name) + "(" + strings.Join(params, ", ") + ")"
}
