package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/analytics/bootstrap"
	"github.com/rustyeddy/analytics/internal/id"
	"github.com/rustyeddy/analytics/ledger"
)

// Simulation is the bootstrap output record.
type Simulation struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	PoolSize    int       `json:"pool_size"`
	Paths       int       `json:"paths"`

	Horizons  []bootstrap.HorizonDist   `json:"horizons"`
	Drawdowns []bootstrap.ExceedanceRow `json:"drawdown_exceedance"`
	LossRuns  []bootstrap.LossRunRow    `json:"loss_run_lengths"`
	Ruin      []bootstrap.RuinRow       `json:"ruin"`
}

func newSimulateCmd(rc *Root) *cobra.Command {
	var returnsCSV string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Stationary-bootstrap horizon, drawdown and ruin simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if returnsCSV == "" {
				return fmt.Errorf("--returns-csv is required")
			}
			pool, err := ledger.ReadDatedValues(returnsCSV)
			if err != nil {
				return err
			}
			vals := make([]float64, len(pool))
			for i, dv := range pool {
				vals[i] = dv.Value
			}

			bcfg := rc.Cfg.Bootstrap
			sim := &bootstrap.Simulator{
				Pool: vals,
				P:    bcfg.ContinuationProbability,
				Seed: bcfg.Seed,
			}
			rc.Log.WithField("pool", len(vals)).WithField("paths", bcfg.Paths).Debug("simulating")

			out := &Simulation{
				RunID:       id.New(),
				GeneratedAt: time.Now().UTC(),
				PoolSize:    len(vals),
				Paths:       bcfg.Paths,
				Horizons:    sim.HorizonDistributions(bcfg.Horizons, bcfg.Paths),
				Drawdowns:   sim.DrawdownExceedance(bcfg.Horizons, bcfg.DrawdownThresholds),
				LossRuns:    sim.LossRunLengths(bcfg.Horizons, bcfg.LossRunLengths),
			}
			if bcfg.RuinThresholdPct > 0 {
				out.Ruin = sim.RuinProbabilities(
					bcfg.Horizons, bcfg.Paths,
					rc.Cfg.Account.InitialBalance, bcfg.RuinThresholdPct,
				)
			}
			return emit(out)
		},
	}

	cmd.Flags().StringVar(&returnsCSV, "returns-csv", "", "day,return CSV forming the historical pool")
	return cmd
}
