package drawdown

import "github.com/rustyeddy/analytics/series"

// DefaultStreakThreshold is the losing-run length the dashboard alerts on.
const DefaultStreakThreshold = 4

// StreakOptions tunes losing-streak detection.
type StreakOptions struct {
	// Threshold the maximum run is compared against. Zero means
	// DefaultStreakThreshold.
	Threshold int
	// IncludeZero counts ~zero days as part of a losing run.
	IncludeZero bool
	// IgnoreTrailingZero skips untraded (~zero) days at the tail before
	// counting the current run.
	IgnoreTrailingZero bool
	// Epsilon below which a value counts as zero. Zero means 1e-9.
	Epsilon float64
}

// StreakStats reports consecutive losing-day runs over a net P&L series.
// TailDays carries the dated values of the current run, oldest first.
type StreakStats struct {
	Current        int                 `json:"current"`
	Max            int                 `json:"max"`
	MeetsThreshold bool                `json:"meets_threshold"`
	TailDays       []series.DatedValue `json:"tail_days,omitempty"`
}

// Streaks scans daily net values for consecutive losing days.
func Streaks(net []series.DatedValue, opts StreakOptions) StreakStats {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultStreakThreshold
	}
	if opts.Epsilon == 0 {
		opts.Epsilon = 1e-9
	}

	isZero := func(x float64) bool { return x <= opts.Epsilon && x >= -opts.Epsilon }
	isLoss := func(x float64) bool {
		if opts.IncludeZero {
			return x <= opts.Epsilon
		}
		return x < -opts.Epsilon
	}

	var stats StreakStats

	run := 0
	for _, dv := range net {
		if isLoss(dv.Value) {
			run++
			if run > stats.Max {
				stats.Max = run
			}
		} else {
			run = 0
		}
	}

	// Current run, counted backward from the last traded day.
	i := len(net) - 1
	if opts.IgnoreTrailingZero {
		for i >= 0 && isZero(net[i].Value) {
			i--
		}
	}
	end := i
	for i >= 0 && isLoss(net[i].Value) {
		stats.Current++
		i--
	}
	if stats.Current > 0 {
		stats.TailDays = append(stats.TailDays, net[end-stats.Current+1:end+1]...)
	}

	stats.MeetsThreshold = stats.Max >= opts.Threshold
	return stats
}
