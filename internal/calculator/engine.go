package calculator

import (
	"fmt"
	"strings"
)

// MaxDigits caps how many digits a typed operand may hold.
const MaxDigits = 7

// Apply returns the state that follows s after pressing k.
//
// Apply is pure and total: it never mutates s and accepts every key in every
// state. Keys outside the keypad leave the state unchanged.
func Apply(s State, k Key) State {
	if k.IsDigit() {
		return inputDigit(s, string(k))
	}
	if op, ok := k.Operator(); ok {
		return chooseOperator(s, op)
	}

	switch k {
	case KeyDecimal:
		return inputDecimal(s)
	case KeySign:
		return toggleSign(s)
	case KeyDelete:
		return deleteLast(s)
	case KeyClear:
		return New()
	case KeyEquals:
		return evaluate(s)
	}
	return s
}

// Run applies keys in order starting from s.
func Run(s State, keys ...Key) State {
	for _, k := range keys {
		s = Apply(s, k)
	}
	return s
}

func inputDigit(s State, d string) State {
	if s.HasResult() {
		return State{Display: d}
	}
	if s.WaitingForOperand {
		s.Display = d
		s.WaitingForOperand = false
		return s
	}

	switch s.Display {
	case "0":
		s.Display = d
		return s
	case "-0":
		s.Display = "-" + d
		return s
	}

	if digitCount(s.Display) >= MaxDigits {
		return s
	}
	s.Display += d
	return s
}

// inputDecimal starts a fresh "0." operand when the display holds a result or
// the first operand, and otherwise appends a decimal point.
func inputDecimal(s State) State {
	if s.HasResult() {
		return State{Display: "0."}
	}
	if s.WaitingForOperand {
		s.Display = "0."
		s.WaitingForOperand = false
		return s
	}
	// No second point, and none inside an exponent ("1e+21").
	if !strings.ContainsAny(s.Display, ".e") {
		s.Display += "."
	}
	return s
}

func toggleSign(s State) State {
	s = adoptResult(s)
	if strings.HasPrefix(s.Display, "-") {
		s.Display = s.Display[1:]
	} else {
		s.Display = "-" + s.Display
	}
	return s
}

func deleteLast(s State) State {
	s = adoptResult(s)
	if len(s.Display) <= 1 {
		s.Display = "0"
		return s
	}

	// An exponent loses its marker together with its last digit, so
	// "1e+2" becomes "1" rather than "1e+".
	s.Display = strings.TrimRight(s.Display[:len(s.Display)-1], "e+-")
	if s.Display == "" {
		s.Display = "0"
	}
	return s
}

// adoptResult turns a displayed result into a plain operand so that editing
// it keeps what a later operator captures in sync with what is shown.
func adoptResult(s State) State {
	if !s.HasResult() {
		return s
	}
	return State{Display: s.Display}
}

func chooseOperator(s State, op Operator) State {
	var seed string
	switch {
	case s.HasResult():
		seed = s.LastResult
	case s.Pending() && !s.WaitingForOperand:
		seed = evaluate(s).Display
	default:
		seed = s.Display
	}

	return State{
		Display:           seed,
		Operator:          op,
		FirstValue:        seed,
		WaitingForOperand: true,
	}
}

func evaluate(s State) State {
	if !s.Pending() || s.FirstValue == "" {
		return s
	}

	a := parseOperand(s.FirstValue)
	b := parseOperand(s.Display)
	result := FormatNumber(Compute(s.Operator, a, b))

	return State{
		Display:       result,
		LastResult:    result,
		LastOperation: fmt.Sprintf("%s %s %s", s.FirstValue, s.Operator, s.Display),
	}
}

// Compute applies op to a and b. Division by zero yields 0.
func Compute(op Operator, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSubtract:
		return a - b
	case OpMultiply:
		return a * b
	case OpDivide:
		if b == 0 {
			return 0
		}
		return a / b
	}
	return b
}

func digitCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
