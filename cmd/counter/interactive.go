package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	hooks "github.com/wippyai/hooks-runtime"
	"github.com/wippyai/hooks-runtime/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// rerenderMsg carries an inbound RequestRerender signal onto the tea loop.
type rerenderMsg struct {
	id hooks.InstanceID
}

// effectErrMsg carries an inbound ReportEffectError signal onto the tea loop.
type effectErrMsg struct {
	id   hooks.InstanceID
	slot int
	err  error
}

// interactiveModel is the host renderer: it owns the tea loop, applies each
// instance's output to the screen, and answers the runtime's rerender
// requests.
type interactiveModel struct {
	rt       *runtime.Runtime
	counter  *runtime.Instance
	greeting *runtime.Instance
	outputs  map[hooks.InstanceID]string
	logs     []string
	label    string
	input    textinput.Model
	lastErr  error
}

func newInteractiveModel(tick time.Duration, host *hooks.HostFuncs) *interactiveModel {
	m := &interactiveModel{
		outputs: make(map[hooks.InstanceID]string),
		label:   "world",
	}

	m.input = textinput.New()
	m.input.Placeholder = "world"
	m.input.CharLimit = 32
	m.input.Focus()

	m.rt = runtime.New(host)
	m.counter = m.rt.Mount(counterComponent(tick))
	m.greeting = m.rt.Mount(greetingComponent(&m.label, m.logf))
	return m
}

func (m *interactiveModel) logf(format string, args ...any) {
	m.logs = append(m.logs, fmt.Sprintf(format, args...))
	if len(m.logs) > 6 {
		m.logs = m.logs[len(m.logs)-6:]
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return rerenderMsg{id: m.counter.ID()}
	}, func() tea.Msg {
		return rerenderMsg{id: m.greeting.ID()}
	})
}

// render drives one instance through a full render->commit pass and applies
// its output to the screen model.
func (m *interactiveModel) render(id hooks.InstanceID) {
	inst, ok := m.rt.Get(id)
	if !ok {
		return
	}
	out, err := inst.Render()
	if err != nil {
		m.lastErr = err
		return
	}
	if s, ok := out.(string); ok {
		m.outputs[id] = s
	}
	if err := inst.CommitApplied(); err != nil {
		m.lastErr = err
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.counter.Destroy()
			m.greeting.Destroy()
			return m, tea.Quit
		}

	case rerenderMsg:
		m.render(msg.id)
		return m, nil

	case effectErrMsg:
		m.lastErr = fmt.Errorf("effect at slot %d of instance %d: %w", msg.slot, msg.id, msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if v := m.input.Value(); v != "" && v != m.label {
		// The label is a prop: the host changed it, so the host re-renders
		// the component that consumes it.
		m.label = v
		m.render(m.greeting.ID())
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hooks-runtime demo"))
	b.WriteString("\n\n")

	b.WriteString(outputStyle.Render(m.outputs[m.counter.ID()]))
	b.WriteString("\n")
	b.WriteString(outputStyle.Render(m.outputs[m.greeting.ID()]))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("greet: "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for _, line := range m.logs {
		b.WriteString(logStyle.Render("  " + line))
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("type to change the greeting - esc/ctrl+c quits"))
	return b.String()
}

func runTUI(tick time.Duration) error {
	host := &hooks.HostFuncs{}
	m := newInteractiveModel(tick, host)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// The runtime signals back through p.Send. The program exists before
	// Run, and nothing renders until Run starts, so the closures never see
	// a nil p.
	host.Rerender = func(id hooks.InstanceID) {
		p.Send(rerenderMsg{id: id})
	}
	host.EffectError = func(id hooks.InstanceID, slot int, err error) {
		p.Send(effectErrMsg{id: id, slot: slot, err: err})
	}

	_, err := p.Run()
	return err
}
