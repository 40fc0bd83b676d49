//go:build blackbox

package blackbox

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testConfig = `
account:
  id: main
  initial_balance: 1000
rolling:
  frequency: daily
  windows:
    - periods: 3
      label: 3d
    - periods: 5
      label: 5d
bootstrap:
  continuation_probability: 1
  paths: 200
  seed: 7
  horizons:
    - periods: 4
      label: 4d
  drawdown_thresholds: [0.05]
  loss_run_lengths: [2]
  ruin_threshold_pct: 0.5
pairs:
  window: 5
  significance: 0.05
streaks:
  threshold: 2
`
