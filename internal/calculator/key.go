package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned by ParseKey for identifiers outside the keypad.
var ErrUnknownKey = errors.New("unknown key")

// Key is a single keypad press.
type Key string

const (
	Key0 Key = "0"
	Key1 Key = "1"
	Key2 Key = "2"
	Key3 Key = "3"
	Key4 Key = "4"
	Key5 Key = "5"
	Key6 Key = "6"
	Key7 Key = "7"
	Key8 Key = "8"
	Key9 Key = "9"

	KeyDecimal  Key = "."
	KeyAdd      Key = "+"
	KeySubtract Key = "-"
	KeyMultiply Key = "×"
	KeyDivide   Key = "÷"
	KeyEquals   Key = "="
	KeyClear    Key = "C"
	KeyDelete   Key = "del"
	KeySign     Key = "+/-"
)

// keyAliases maps every accepted identifier onto its canonical Key.
var keyAliases = map[string]Key{
	"0": Key0, "1": Key1, "2": Key2, "3": Key3, "4": Key4,
	"5": Key5, "6": Key6, "7": Key7, "8": Key8, "9": Key9,
	".":   KeyDecimal,
	"+":   KeyAdd,
	"-":   KeySubtract,
	"x":   KeyMultiply,
	"×":   KeyMultiply,
	"*":   KeyMultiply,
	"÷":   KeyDivide,
	"/":   KeyDivide,
	"=":   KeyEquals,
	"C":   KeyClear,
	"c":   KeyClear,
	"del": KeyDelete,
	"+/-": KeySign,
}

// ParseKey maps a host key identifier to a Key.
func ParseKey(s string) (Key, error) {
	k, ok := keyAliases[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
	}
	return k, nil
}

// ParseKeys parses every identifier, failing on the first unknown one.
func ParseKeys(ids []string) ([]Key, error) {
	keys := make([]Key, 0, len(ids))
	for i, id := range ids {
		k, err := ParseKey(id)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool {
	return len(k) == 1 && k[0] >= '0' && k[0] <= '9'
}

// Operator returns the binary operator bound to k, if any.
func (k Key) Operator() (Operator, bool) {
	switch k {
	case KeyAdd:
		return OpAdd, true
	case KeySubtract:
		return OpSubtract, true
	case KeyMultiply:
		return OpMultiply, true
	case KeyDivide:
		return OpDivide, true
	}
	return OpNone, false
}
