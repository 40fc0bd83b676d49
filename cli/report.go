package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/analytics/drawdown"
	"github.com/rustyeddy/analytics/internal/id"
	"github.com/rustyeddy/analytics/ledger"
	"github.com/rustyeddy/analytics/rolling"
	"github.com/rustyeddy/analytics/series"
)

// Report is the full per-account performance record the dashboard
// consumes. Nil fields mean "not computable", never an error.
type Report struct {
	RunID       string    `json:"run_id"`
	Account     string    `json:"account"`
	GeneratedAt time.Time `json:"generated_at"`

	Daily          []series.DailyRow     `json:"daily"`
	Drawdown       drawdown.Stats        `json:"drawdown"`
	DrawdownPeriod *drawdown.Period      `json:"drawdown_period"`
	Streaks        drawdown.StreakStats  `json:"streaks"`
	Rolling        []rolling.Row         `json:"rolling"`
	Headline       *rolling.Row          `json:"headline"`
	ByYear         []rolling.YearRow     `json:"by_year"`
	Monthly        []drawdown.MonthlyRow `json:"monthly"`
	MTDReturn      *float64              `json:"mtd_return"`
	MTDDrawdown    float64               `json:"mtd_drawdown"`
	LosingDays     int                   `json:"losing_days"`
	LosingDayRatio float64               `json:"losing_day_ratio"`

	SymbolPnL       []series.SymbolPnLRow `json:"symbol_pnl,omitempty"`
	AccountPnLTotal map[string]float64    `json:"account_pnl_totals,omitempty"`
}

func newReportCmd(rc *Root) *cobra.Command {
	var accounts []string
	var pnlCSV string
	var upnl float64

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Daily series, drawdown, streak and rolling-risk report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := buildReport(rc, accounts, pnlCSV, upnl)
			if err != nil {
				return err
			}
			return emit(rep)
		},
	}

	cmd.Flags().StringSliceVarP(&accounts, "account", "a", nil, "account name (repeatable; multiple accounts are merged)")
	cmd.Flags().StringVar(&pnlCSV, "pnl-csv", "", "day,net_pnl CSV instead of the SQLite ledger")
	cmd.Flags().Float64Var(&upnl, "upnl", 0, "live unrealized P&L added onto the final day")
	return cmd
}

func buildReport(rc *Root, accounts []string, pnlCSV string, upnl float64) (*Report, error) {
	cfg := rc.Cfg
	start, end := cfg.Account.Start, cfg.Account.End

	var rows []series.DailyRow
	var symbolPnL []series.SymbolPnLRow
	var accountTotals map[string]float64
	label := cfg.Account.ID

	switch {
	case pnlCSV != "":
		net, err := ledger.ReadDatedValues(pnlCSV)
		if err != nil {
			return nil, err
		}
		if len(net) > 0 {
			if start.IsZero() {
				start = net[0].Day
			}
			if end.IsZero() {
				end = net[len(net)-1].Day
			}
		}
		if !start.IsZero() && !end.IsZero() {
			rows = series.Build(net, nil, start, end, cfg.Account.InitialBalance)
		}

	case rc.DBPath != "":
		if start.IsZero() || end.IsZero() {
			return nil, fmt.Errorf("account.start and account.end are required with --db")
		}
		db, err := ledger.NewSQLite(rc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open ledger: %w", err)
		}
		defer db.Close()

		if len(accounts) == 0 {
			accounts = []string{cfg.Account.ID}
		}
		perAccount := make([][]series.DailyRow, 0, len(accounts))
		for _, a := range accounts {
			gross, fees, err := db.DailyDeltas(a, start, end)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", a, err)
			}
			rc.Log.WithField("account", a).WithField("days", len(gross)).Debug("loaded deltas")
			perAccount = append(perAccount, series.Build(gross, fees, start, end, 0))
		}
		// Merge on calendar-day keys, then recompute everything on the
		// merged series; never average per-account ratios.
		rows = series.MergeRows(cfg.Account.InitialBalance, perAccount...)
		if len(accounts) == 1 {
			label = accounts[0]
		} else {
			label = "combined"
		}

		trades, err := db.TradePnL(accounts, start, end)
		if err != nil {
			return nil, err
		}
		symbolPnL, accountTotals = series.SymbolPnL(trades, accounts)

	default:
		return nil, fmt.Errorf("either --db or --pnl-csv is required")
	}

	series.InjectUnrealized(rows, upnl)

	curve := series.Curve(rows)
	stats, period := drawdown.Analyze(curve, cfg.Account.InitialBalance)
	streaks := drawdown.Streaks(series.Net(rows), drawdown.StreakOptions{
		Threshold:          cfg.Streaks.Threshold,
		IgnoreTrailingZero: true,
	})

	returns := series.Returns(rows)
	riskRows := rolling.Compute(returns, cfg.Frequency(), cfg.Rolling.Windows, cfg.Rolling.RiskFree)
	losing, ratio := drawdown.LosingDays(returns)

	return &Report{
		RunID:           id.New(),
		Account:         label,
		GeneratedAt:     time.Now().UTC(),
		Daily:           rows,
		Drawdown:        stats,
		DrawdownPeriod:  period,
		Streaks:         streaks,
		Rolling:         riskRows,
		Headline:        rolling.Headline(riskRows),
		ByYear:          rolling.ByYear(returns, cfg.Frequency(), cfg.Rolling.RiskFree),
		Monthly:         drawdown.Monthly(curve, cfg.Account.InitialBalance),
		MTDReturn:       drawdown.MTDReturn(curve),
		MTDDrawdown:     drawdown.MTDMaxDrawdown(returns),
		LosingDays:      losing,
		LosingDayRatio:  ratio,
		SymbolPnL:       symbolPnL,
		AccountPnLTotal: accountTotals,
	}, nil
}
