package pairs

import "math"

// fillReversion fits an AR(1) to the spread window and derives the
// reversion strength and half-life. phi is the lag-1 OLS coefficient;
// strength = 1 - phi; half-life = ln(0.5)/ln(phi), defined only for
// phi in (0, 1).
func fillReversion(row *ReversionRow, spread []float64) {
	if len(spread) < 3 {
		return
	}
	lagged := spread[:len(spread)-1]
	lead := spread[1:]

	ml := mean(lagged)
	me := mean(lead)
	var cov, vl float64
	for i := range lagged {
		d := lagged[i] - ml
		cov += d * (lead[i] - me)
		vl += d * d
	}
	if vl < 1e-12 {
		return
	}
	phi := cov / vl
	if p := finite(phi); p == nil {
		return
	}
	row.Phi = &phi

	strength := 1 - phi
	row.Strength = &strength

	if phi > 0 && phi < 1 {
		hl := math.Log(0.5) / math.Log(phi)
		row.HalfLifeDays = finite(hl)
	}
}
