package calculator

// Operator is a pending binary operation.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// State is the complete keypad state of one calculator session.
//
// Operator and FirstValue are set and cleared together. LastResult and
// LastOperation describe the most recent "=" evaluation and stay empty
// until one has happened.
type State struct {
	Display           string
	Operator          Operator
	FirstValue        string
	WaitingForOperand bool
	LastResult        string
	LastOperation     string
}

// New returns the initial state.
func New() State {
	return State{Display: "0"}
}

// Pending reports whether an operator is waiting for its second operand.
func (s State) Pending() bool {
	return s.Operator != OpNone
}

// HasResult reports whether the state still shows a completed evaluation.
func (s State) HasResult() bool {
	return s.LastResult != ""
}

// View is what a host renders for a state.
type View struct {
	Display       string `json:"display"`
	Pending       string `json:"pending"`
	LastResult    string `json:"last_result,omitempty"`
	LastOperation string `json:"last_operation,omitempty"`
}

// Render derives the host-facing view of s.
func Render(s State) View {
	v := View{
		Display:       s.Display,
		LastResult:    s.LastResult,
		LastOperation: s.LastOperation,
	}
	if s.Pending() {
		v.Pending = s.FirstValue + " " + string(s.Operator)
		if !s.WaitingForOperand {
			v.Pending += " " + s.Display
		}
	}
	return v
}
