package cmd

import (
	"context"
	"fmt"
	"os"

	"calcpad/internal/calculator"
	"calcpad/internal/keypad"
	"calcpad/internal/observability"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logFile string
	bell    bool
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Keypad calculator for the terminal",
	Long: `calc opens an interactive keypad calculator.

Keys:
  0-9 .     digits and decimal point
  + - * /   operators (x also multiplies)
  = enter   evaluate
  backspace delete last character
  c esc     clear
  n         toggle sign
  q         quit`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logFile == "" {
			return nil
		}
		if err := observability.InitFileLogger(logFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.SyncLogger()
	},
	RunE: runKeypad,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().BoolVar(&bell, "bell", false, "ring the terminal bell on every key press")
}

func runKeypad(cmd *cobra.Command, args []string) error {
	feedback := []calculator.Feedback{logKeyPress}
	if bell {
		feedback = append(feedback, keypad.Bell(os.Stderr))
	}

	observability.Logger.Info("keypad started")

	p := tea.NewProgram(keypad.New(feedback...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("keypad: %w", err)
	}

	return nil
}

func logKeyPress(_ context.Context, k calculator.Key, v calculator.View) {
	observability.Logger.Info("key pressed",
		zap.String("key", string(k)),
		zap.String("display", v.Display),
		zap.String("pending", v.Pending),
	)
}
