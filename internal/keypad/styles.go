package keypad

import "github.com/charmbracelet/lipgloss"

// Colors follow the mobile keypad: grey function keys, orange operators.
var (
	colorDigit    = lipgloss.Color("#2F2F2F")
	colorFunction = lipgloss.Color("#AAAAAA")
	colorOperator = lipgloss.Color("#FF9900")
	colorFg       = lipgloss.Color("#FFFFFF")
	colorMuted    = lipgloss.Color("#6B7280")
)

const buttonWidth = 7

var (
	buttonStyle = lipgloss.NewStyle().
			Width(buttonWidth).
			Align(lipgloss.Center).
			Padding(1, 0).
			MarginRight(1).
			Bold(true).
			Foreground(colorFg).
			Background(colorDigit)

	functionButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#000000")).
				Background(colorFunction)

	operatorButtonStyle = buttonStyle.
				Background(colorOperator)

	// pressedStyle marks the key pressed last, the terminal's "pulse".
	pressedStyle = lipgloss.NewStyle().Reverse(true)

	displayStyle = lipgloss.NewStyle().
			Width(4*(buttonWidth+1) - 1).
			Align(lipgloss.Right).
			Foreground(colorFg).
			Bold(true).
			MarginBottom(1)

	historyStyle = lipgloss.NewStyle().
			Width(4*(buttonWidth+1) - 1).
			Align(lipgloss.Right).
			Foreground(colorMuted).
			Italic(true)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)
)
