// Package calculator implements a four-function keypad calculator as a pure
// state machine, plus the session store and HTTP handlers that host it.
//
// Apply maps a State and a Key to the next State; Render projects a State
// onto what a keypad shows. Keys behave like a pocket calculator, with a few
// rules worth spelling out:
//
//   - "." on a shown result, or while the second operand has not been typed
//     yet, starts a fresh "0." operand. So "5 + 3 = ." shows "0.", not "8.".
//   - "+/-" and "del" on a shown result turn it into a plain operand: the
//     result and its operation are cleared, and a following operator uses the
//     edited display.
//   - "del" removes an exponent marker together with its last digit, so a
//     result of "1e+21" becomes "1e+2" and then "1".
//   - Division by zero yields 0, and results that are not finite show "0".
//
// Typed operands hold at most MaxDigits digits; computed results may hold
// more.
package calculator
