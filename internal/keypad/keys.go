package keypad

import (
	"calcpad/internal/calculator"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap binds the keyboard to keypad keys.
type keyMap struct {
	Digits   key.Binding
	Decimal  key.Binding
	Add      key.Binding
	Subtract key.Binding
	Multiply key.Binding
	Divide   key.Binding
	Equals   key.Binding
	Delete   key.Binding
	Clear    key.Binding
	Sign     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Decimal:  key.NewBinding(key.WithKeys(".", ","), key.WithHelp(".", "point")),
		Add:      key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add")),
		Subtract: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "subtract")),
		Multiply: key.NewBinding(key.WithKeys("*", "x"), key.WithHelp("*/x", "multiply")),
		Divide:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "divide")),
		Equals:   key.NewBinding(key.WithKeys("=", "enter"), key.WithHelp("=/enter", "equals")),
		Delete:   key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
		Clear:    key.NewBinding(key.WithKeys("c", "C", "esc"), key.WithHelp("c/esc", "clear")),
		Sign:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "+/-")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Decimal, k.Sign},
		{k.Add, k.Subtract, k.Multiply, k.Divide},
		{k.Equals, k.Delete, k.Clear},
		{k.Help, k.Quit},
	}
}

// resolve maps a terminal key press to a keypad key.
func (k keyMap) resolve(msg tea.KeyMsg) (calculator.Key, bool) {
	switch {
	case key.Matches(msg, k.Digits):
		return calculator.Key(msg.String()), true
	case key.Matches(msg, k.Decimal):
		return calculator.KeyDecimal, true
	case key.Matches(msg, k.Add):
		return calculator.KeyAdd, true
	case key.Matches(msg, k.Subtract):
		return calculator.KeySubtract, true
	case key.Matches(msg, k.Multiply):
		return calculator.KeyMultiply, true
	case key.Matches(msg, k.Divide):
		return calculator.KeyDivide, true
	case key.Matches(msg, k.Equals):
		return calculator.KeyEquals, true
	case key.Matches(msg, k.Delete):
		return calculator.KeyDelete, true
	case key.Matches(msg, k.Clear):
		return calculator.KeyClear, true
	case key.Matches(msg, k.Sign):
		return calculator.KeySign, true
	}
	return "", false
}
