// Package keypad is a terminal host for the calculator engine: it renders
// the keypad with lipgloss and forwards key presses to calculator.Apply.
package keypad

import (
	"context"
	"fmt"
	"io"
	"time"

	"calcpad/internal/calculator"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pulseDuration is how long the last pressed key stays highlighted.
const pulseDuration = 150 * time.Millisecond

// layout mirrors the mobile keypad, top row first.
var layout = [][]calculator.Key{
	{calculator.KeyClear, calculator.KeySign, calculator.KeyDelete, calculator.KeyDivide},
	{calculator.Key7, calculator.Key8, calculator.Key9, calculator.KeyMultiply},
	{calculator.Key4, calculator.Key5, calculator.Key6, calculator.KeySubtract},
	{calculator.Key1, calculator.Key2, calculator.Key3, calculator.KeyAdd},
	{calculator.Key0, calculator.KeyDecimal, calculator.KeyEquals},
}

type pulseEndMsg struct{ seq int }

// Model is the bubbletea model of one keypad session.
type Model struct {
	state    calculator.State
	feedback []calculator.Feedback

	keys keyMap
	help help.Model

	pressed calculator.Key
	seq     int
}

// New returns a keypad in the initial state. Every feedback runs after each
// transition.
func New(feedback ...calculator.Feedback) Model {
	return Model{
		state:    calculator.New(),
		feedback: feedback,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// State returns the current calculator state.
func (m Model) State() calculator.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		k, ok := m.keys.resolve(msg)
		if !ok {
			return m, nil
		}
		return m.press(k)

	case pulseEndMsg:
		if msg.seq == m.seq {
			m.pressed = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) press(k calculator.Key) (tea.Model, tea.Cmd) {
	m.state = calculator.Apply(m.state, k)
	m.pressed = k
	m.seq++

	view := calculator.Render(m.state)
	for _, fb := range m.feedback {
		fb(context.Background(), k, view)
	}

	seq := m.seq
	return m, tea.Tick(pulseDuration, func(time.Time) tea.Msg {
		return pulseEndMsg{seq: seq}
	})
}

func (m Model) View() string {
	view := calculator.Render(m.state)

	history := view.Pending
	if history == "" && view.LastOperation != "" {
		history = view.LastOperation + " ="
	}

	rows := make([]string, 0, len(layout))
	for _, row := range layout {
		buttons := make([]string, 0, len(row))
		for _, k := range row {
			buttons = append(buttons, m.renderButton(k))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		historyStyle.Render(history),
		displayStyle.Render(view.Display),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	return frameStyle.Render(body) + "\n" + m.help.View(m.keys) + "\n"
}

func (m Model) renderButton(k calculator.Key) string {
	style := buttonStyle
	switch {
	case k == calculator.KeyClear || k == calculator.KeySign || k == calculator.KeyDelete:
		style = functionButtonStyle
	case k == calculator.KeyEquals:
		style = operatorButtonStyle
	default:
		if _, ok := k.Operator(); ok {
			style = operatorButtonStyle
		}
	}

	// The zero key spans two columns.
	if k == calculator.Key0 {
		style = style.Width(2*buttonWidth + 1)
	}
	if k == m.pressed {
		style = style.Inherit(pressedStyle)
	}
	return style.Render(string(k))
}

// Bell returns a Feedback that rings the terminal bell on w.
func Bell(w io.Writer) calculator.Feedback {
	return func(context.Context, calculator.Key, calculator.View) {
		fmt.Fprint(w, "\a")
	}
}
