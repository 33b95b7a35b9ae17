package commands

import (
	"errors"
	"os"

	app_info "github.com/robgonnella/zlink/internal/app-info"
	"github.com/robgonnella/zlink/internal/core"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	// NewCore builds the app core on demand so commands that never touch a
	// printer do not open the database or the bluetooth adapter
	NewCore func() (*core.Core, error)
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool
	var logToFile bool

	cmd := &cobra.Command{
		Use:   app_info.NAME,
		Short: "Discover and drive Zebra label printers over wifi and bluetooth",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			if logToFile {
				logFile, ok := viper.Get("log-file").(string)

				if !ok {
					return errors.New("failed to find log file path")
				}

				file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)

				if err != nil {
					return err
				}

				logger.GlobalSetLogFile(file)
			}

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")
	cmd.PersistentFlags().BoolVar(&logToFile, "log-file", false, "write logs to the log file instead of stderr")

	cmd.AddCommand(version())
	cmd.AddCommand(clean())
	cmd.AddCommand(configure())
	cmd.AddCommand(call(props))
	cmd.AddCommand(serve(props))
	cmd.AddCommand(printers(props))

	return cmd
}
