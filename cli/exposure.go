package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/analytics/exposure"
	"github.com/rustyeddy/analytics/internal/id"
	"github.com/rustyeddy/analytics/ledger"
)

// ExposureReport wraps the exposure calculator output.
type ExposureReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Account     string    `json:"account"`
	Balance     float64   `json:"balance"`

	exposure.Report
}

func newExposureCmd(rc *Root) *cobra.Command {
	var account, positionsCSV string
	var balance float64

	cmd := &cobra.Command{
		Use:   "exposure",
		Short: "Per-symbol and per-pair notional exposure with concentration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var positions []exposure.Position
			var err error

			switch {
			case positionsCSV != "":
				positions, err = ledger.ReadPositions(positionsCSV)
			case rc.DBPath != "":
				var db *ledger.SQLite
				if db, err = ledger.NewSQLite(rc.DBPath); err != nil {
					return fmt.Errorf("open ledger: %w", err)
				}
				defer db.Close()
				if account == "" {
					account = rc.Cfg.Account.ID
				}
				positions, err = db.Positions(account)
			default:
				return fmt.Errorf("either --db or --positions-csv is required")
			}
			if err != nil {
				return err
			}

			if balance == 0 {
				balance = rc.Cfg.Account.InitialBalance
			}
			rep := &ExposureReport{
				RunID:       id.New(),
				GeneratedAt: time.Now().UTC(),
				Account:     account,
				Balance:     balance,
				Report:      exposure.Calculate(positions, balance),
			}
			return emit(rep)
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "account name")
	cmd.Flags().StringVar(&positionsCSV, "positions-csv", "", "pair_id,symbol,quantity,price CSV")
	cmd.Flags().Float64Var(&balance, "balance", 0, "total portfolio balance for the concentration ratio")
	return cmd
}
