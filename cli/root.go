// Package cli wires the analytics engine into the quant command tree.
// Commands load already-materialized inputs (SQLite ledger or CSV
// exports), run the pure analytics, and print JSON records.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/analytics/config"
)

// Root carries shared state for all subcommands.
type Root struct {
	ConfigPath string
	DBPath     string
	Verbose    bool

	Cfg *config.Config
	Log *logrus.Logger
}

// New builds the quant root command.
func New() *cobra.Command {
	rc := &Root{Log: logrus.New()}

	cmd := &cobra.Command{
		Use:           "quant",
		Short:         "Risk and performance analytics for trading accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rc.Log.SetOutput(os.Stderr)
			if rc.Verbose {
				rc.Log.SetLevel(logrus.DebugLevel)
			}
			if rc.ConfigPath == "" {
				rc.Cfg = config.Default()
				return nil
			}
			cfg, err := config.LoadFromFile(rc.ConfigPath)
			if err != nil {
				return err
			}
			rc.Cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&rc.ConfigPath, "config", "c", "", "analytics config file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "path to SQLite trade ledger")
	cmd.PersistentFlags().BoolVarP(&rc.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newReportCmd(rc),
		newSimulateCmd(rc),
		newPairsCmd(rc),
		newExposureCmd(rc),
	)

	return cmd
}

// emit writes a result record as indented JSON on stdout.
func emit(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Println(string(out))
	return err
}
