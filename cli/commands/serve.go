package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robgonnella/zlink/internal/bridge"
	"github.com/spf13/cobra"
)

// creates and returns the "serve" command
func serve(props *CommandProps) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves session actions and events over websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			appCore, err := props.NewCore()

			if err != nil {
				return err
			}

			defer appCore.Stop()

			if listen == "" {
				listen = appCore.Conf().Server.Listen
			}

			appCore.StartDaemon()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := bridge.NewServer(listen, appCore, appCore.Events())

			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (defaults to server.listen in config)")

	return cmd
}
