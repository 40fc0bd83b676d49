package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/analytics/internal/id"
	"github.com/rustyeddy/analytics/ledger"
	"github.com/rustyeddy/analytics/pairs"
	"github.com/rustyeddy/analytics/series"
)

// PairReport wraps the pair analyzer output.
type PairReport struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	X           string    `json:"x"`
	Y           string    `json:"y"`
	Window      int       `json:"window"`

	pairs.Result
}

func newPairsCmd(rc *Root) *cobra.Command {
	var xSym, ySym, xCSV, yCSV string

	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Rolling hedge ratio, spread z-score and cointegration diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := loadPair(rc, xSym, ySym, xCSV, yCSV)
			if err != nil {
				return err
			}

			pcfg := pairs.Config{
				Window:       rc.Cfg.Pairs.Window,
				Significance: rc.Cfg.Pairs.Significance,
			}
			rc.Log.WithField("x", len(x)).WithField("y", len(y)).Debug("aligned price bars")

			rep := &PairReport{
				RunID:       id.New(),
				GeneratedAt: time.Now().UTC(),
				X:           firstNonEmpty(xSym, xCSV),
				Y:           firstNonEmpty(ySym, yCSV),
				Window:      pcfg.Window,
				Result:      pairs.Analyze(x, y, pcfg),
			}
			return emit(rep)
		},
	}

	cmd.Flags().StringVar(&xSym, "x", "", "first instrument symbol (ledger prices table)")
	cmd.Flags().StringVar(&ySym, "y", "", "second instrument symbol (ledger prices table)")
	cmd.Flags().StringVar(&xCSV, "x-csv", "", "day,close CSV for the first instrument")
	cmd.Flags().StringVar(&yCSV, "y-csv", "", "day,close CSV for the second instrument")
	return cmd
}

func loadPair(rc *Root, xSym, ySym, xCSV, yCSV string) (x, y []series.DatedValue, err error) {
	switch {
	case xCSV != "" && yCSV != "":
		if x, err = ledger.ReadDatedValues(xCSV); err != nil {
			return nil, nil, err
		}
		if y, err = ledger.ReadDatedValues(yCSV); err != nil {
			return nil, nil, err
		}
		return x, y, nil

	case xSym != "" && ySym != "" && rc.DBPath != "":
		start, end := rc.Cfg.Account.Start, rc.Cfg.Account.End
		if start.IsZero() || end.IsZero() {
			return nil, nil, fmt.Errorf("account.start and account.end are required with --db")
		}
		db, err := ledger.NewSQLite(rc.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open ledger: %w", err)
		}
		defer db.Close()

		if x, err = db.Prices(xSym, start, end); err != nil {
			return nil, nil, err
		}
		if y, err = db.Prices(ySym, start, end); err != nil {
			return nil, nil, err
		}
		return x, y, nil
	}
	return nil, nil, fmt.Errorf("provide --x/--y with --db, or --x-csv/--y-csv")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
