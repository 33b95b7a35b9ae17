package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// parseArgs decodes every argument that is valid JSON, so numbers and
// booleans reach the dispatcher typed. Anything else is passed as a string.
func parseArgs(raw []string) []any {
	args := make([]any, 0, len(raw))

	for _, r := range raw {
		var v any

		decoder := json.NewDecoder(strings.NewReader(r))
		decoder.UseNumber()

		if err := decoder.Decode(&v); err != nil || decoder.More() {
			args = append(args, r)
			continue
		}

		args = append(args, v)
	}

	return args
}

// creates and returns the "call" command
func call(props *CommandProps) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "call <action> [args...]",
		Short: "Runs a single session action and prints the result",
		Long: "Runs a single session action and prints the result envelope as JSON. " +
			"Connections do not outlive the command, use serve for multi step flows.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := props.NewCore()

			if err != nil {
				return err
			}

			defer appCore.Stop()

			appCore.StartDaemon()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result := appCore.Call(ctx, args[0], parseArgs(args[1:]))

			out, err := json.MarshalIndent(result, "", "  ")

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if !result.Success {
				cmd.SilenceUsage = true
				return errors.New(result.Error)
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "maximum time to wait for the action")

	return cmd
}
