package commands

import (
	"errors"
	"os"

	"github.com/robgonnella/zlink/internal/config"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// creates and returns the "config" command
func configure() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := viper.Get("config-file").(string)

			conf, err := config.Load(configFile)

			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)

			return encoder.Encode(conf)
		},
	}

	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Writes the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			configFile, _ := viper.Get("config-file").(string)

			if _, err := os.Stat(configFile); err == nil && !force {
				return errors.New("config file already exists, use --force to overwrite")
			}

			if err := config.Write(*config.Default()); err != nil {
				return err
			}

			log.Info().Str("file", configFile).Msg("wrote default config")

			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)

	return cmd
}
