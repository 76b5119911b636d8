package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"calcpad/internal/calculator"
	"calcpad/internal/observability"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evalJSON bool

var evalCmd = &cobra.Command{
	Use:   "eval KEY...",
	Short: "Press a sequence of keys and print the resulting display",
	Long: `eval replays key presses against a fresh keypad and prints the result.

Keys: 0-9 . + - x × * ÷ / = C del +/-

Example:
  calc eval 1 2 + 7 =
  calc eval --json 5 ÷ 0 =`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := calculator.ParseKeys(args)
		if err != nil {
			return err
		}

		view := calculator.Render(calculator.Run(calculator.New(), keys...))
		observability.Logger.Info("key sequence evaluated",
			zap.Int("keys", len(keys)),
			zap.String("display", view.Display),
		)

		return writeView(cmd.OutOrStdout(), view, evalJSON)
	},
}

func init() {
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the view as JSON")
	rootCmd.AddCommand(evalCmd)
}

func writeView(w io.Writer, v calculator.View, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}

	if v.LastOperation != "" {
		fmt.Fprintf(w, "%s = %s\n", v.LastOperation, v.Display)
		return nil
	}
	if v.Pending != "" {
		fmt.Fprintf(w, "%s\n", v.Pending)
		return nil
	}
	fmt.Fprintf(w, "%s\n", v.Display)
	return nil
}
