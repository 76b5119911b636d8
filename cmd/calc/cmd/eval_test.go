package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"calcpad/internal/calculator"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	evalJSON = false
	t.Cleanup(func() { evalJSON = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "completed operation", args: []string{"eval", "1", "2", "+", "7", "="}, want: "12 + 7 = 19\n"},
		{name: "pending operation", args: []string{"eval", "5", "x", "3"}, want: "5 × 3\n"},
		{name: "plain operand", args: []string{"eval", "1", ".", "5", "+/-"}, want: "-1.5\n"},
		{name: "minus is a key", args: []string{"eval", "3", "-", "5", "="}, want: "3 - 5 = -2\n"},
		{name: "json", args: []string{"eval", "--json", "5", "÷", "0", "="}, want: `{"display":"0","pending":"","last_result":"0","last_operation":"5 ÷ 0"}` + "\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runCommand(t, tc.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEvalCommandRejectsUnknownKey(t *testing.T) {
	_, err := runCommand(t, "eval", "1", "%")
	if !errors.Is(err, calculator.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "calc v"+Version) {
		t.Fatalf("unexpected version output %q", got)
	}
}
