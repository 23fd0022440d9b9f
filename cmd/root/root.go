// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/bank-csv/internal/config"
	"fjacquet/bank-csv/internal/logging"
)

// CommonFlags are shared by the subcommands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg holds the resolved configuration after PersistentPreRun.
	Cfg *config.Config

	// SharedFlags are the common flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "bank-csv",
		Short: "Normalize messy bank and card CSV exports into clean transaction data.",
		Long: `bank-csv ingests delimited-text exports with unknown encoding, delimiter,
and column layout, recovers what it can from corrupted rows, and emits
normalized, confidence-scored transactions as CSV.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to bank-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Error("Configuration is invalid")
				os.Exit(1)
			}
			Cfg = cfg
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default stdout)")
}

// Logger adapts the shared logrus instance to the internal logging contract.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
