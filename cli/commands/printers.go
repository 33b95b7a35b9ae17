package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/robgonnella/zlink/internal/printer"
	"github.com/spf13/cobra"
)

func writePrinters(w io.Writer, printers []*printer.Printer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tTRANSPORT\tHANDLE\tLAST SEEN")

	for _, p := range printers {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\n",
			p.ID,
			p.Transport,
			p.Handle,
			p.LastSeen.Format(time.RFC3339),
		)
	}

	return tw.Flush()
}

// creates and returns the "printers" command
func printers(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "printers",
		Short: "Lists printers recorded by previous discoveries",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := props.NewCore()

			if err != nil {
				return err
			}

			defer appCore.Stop()

			found, err := appCore.GetPrinters()

			if err != nil {
				return err
			}

			return writePrinters(cmd.OutOrStdout(), found)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Forgets a recorded printer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := props.NewCore()

			if err != nil {
				return err
			}

			defer appCore.Stop()

			return appCore.RemovePrinter(args[0])
		},
	})

	return cmd
}
