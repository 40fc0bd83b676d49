package pairs

import "math"

// StationarityTest decides whether a spread window behaves as a
// stationary series. Implementations return approximate p-values for a
// unit-root test (adfP, small means stationary) and a stationarity test
// (kpssP, small means non-stationary); nil means not computable on this
// window.
type StationarityTest interface {
	Name() string
	Test(spread []float64) (adfP, kpssP *float64)
}

// ADFKPSS is the default stationarity strategy: an augmented
// Dickey-Fuller regression with one lagged difference and a constant,
// plus a KPSS level test with a Bartlett long-run variance. P-values are
// interpolated from the standard asymptotic tables, so they are
// approximate rather than exact finite-sample probabilities.
type ADFKPSS struct{}

func (ADFKPSS) Name() string { return "adf+kpss" }

func (ADFKPSS) Test(spread []float64) (adfP, kpssP *float64) {
	return adfPValue(spread), kpssPValue(spread)
}

func fillStationarity(row *StationarityRow, spread []float64, cfg Config) {
	row.ADFP, row.KPSSP = cfg.Test.Test(spread)
	if row.ADFP == nil || row.KPSSP == nil {
		return
	}
	alpha := cfg.Significance
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	// Stationary when ADF rejects the unit root and KPSS fails to
	// reject stationarity.
	pass := *row.ADFP <= alpha && *row.KPSSP >= alpha
	row.Pass = &pass
}

const minStationarityWindow = 8

// MacKinnon asymptotic percentiles of the Dickey-Fuller tau
// distribution, constant-only case.
var adfTable = []struct{ tau, p float64 }{
	{-4.30, 0.001},
	{-3.43, 0.010},
	{-3.12, 0.025},
	{-2.86, 0.050},
	{-2.57, 0.100},
	{-2.17, 0.250},
	{-1.57, 0.500},
	{-0.94, 0.750},
	{-0.44, 0.900},
	{-0.07, 0.950},
	{0.60, 0.990},
}

// adfPValue runs the regression
//
//	ds_t = c + gamma*s_{t-1} + delta*ds_{t-1} + e
//
// and maps the t-statistic of gamma onto the tau table.
func adfPValue(s []float64) *float64 {
	n := len(s)
	if n < minStationarityWindow {
		return nil
	}

	// Observations t = 2..n-1.
	m := n - 2
	y := make([]float64, m)
	x := make([][3]float64, m)
	for t := 2; t < n; t++ {
		i := t - 2
		y[i] = s[t] - s[t-1]
		x[i] = [3]float64{1, s[t-1], s[t-1] - s[t-2]}
	}

	beta, se, ok := ols3(x, y)
	if !ok || se[1] < 1e-12 {
		return nil
	}
	tau := beta[1] / se[1]
	p := interpolate(tau)
	return &p
}

func interpolate(tau float64) float64 {
	tbl := adfTable
	if tau <= tbl[0].tau {
		return tbl[0].p
	}
	if tau >= tbl[len(tbl)-1].tau {
		return tbl[len(tbl)-1].p
	}
	for i := 1; i < len(tbl); i++ {
		if tau <= tbl[i].tau {
			frac := (tau - tbl[i-1].tau) / (tbl[i].tau - tbl[i-1].tau)
			return tbl[i-1].p + frac*(tbl[i].p-tbl[i-1].p)
		}
	}
	return tbl[len(tbl)-1].p
}

// KPSS level-case critical values; p is clamped to [0.01, 0.10] as the
// published table only spans those tails.
var kpssTable = []struct{ stat, p float64 }{
	{0.347, 0.100},
	{0.463, 0.050},
	{0.574, 0.025},
	{0.739, 0.010},
}

func kpssPValue(s []float64) *float64 {
	n := len(s)
	if n < minStationarityWindow {
		return nil
	}

	m := mean(s)
	resid := make([]float64, n)
	for i, v := range s {
		resid[i] = v - m
	}

	// Partial sums and Bartlett-weighted long-run variance.
	lag := int(math.Floor(4 * math.Pow(float64(n)/100, 0.25)))
	lrv := 0.0
	for _, e := range resid {
		lrv += e * e
	}
	for l := 1; l <= lag; l++ {
		gamma := 0.0
		for t := l; t < n; t++ {
			gamma += resid[t] * resid[t-l]
		}
		lrv += 2 * (1 - float64(l)/float64(lag+1)) * gamma
	}
	lrv /= float64(n)
	if lrv < 1e-12 {
		return nil
	}

	var eta, cum float64
	for _, e := range resid {
		cum += e
		eta += cum * cum
	}
	eta /= float64(n) * float64(n) * lrv

	p := kpssInterpolate(eta)
	return &p
}

func kpssInterpolate(eta float64) float64 {
	tbl := kpssTable
	if eta <= tbl[0].stat {
		return tbl[0].p
	}
	if eta >= tbl[len(tbl)-1].stat {
		return tbl[len(tbl)-1].p
	}
	for i := 1; i < len(tbl); i++ {
		if eta <= tbl[i].stat {
			frac := (eta - tbl[i-1].stat) / (tbl[i].stat - tbl[i-1].stat)
			return tbl[i-1].p + frac*(tbl[i].p-tbl[i-1].p)
		}
	}
	return tbl[len(tbl)-1].p
}

// ols3 solves a three-regressor least squares fit via the normal
// equations and returns the coefficients with their standard errors.
func ols3(x [][3]float64, y []float64) (beta, se [3]float64, ok bool) {
	n := len(x)
	if n < 5 {
		return beta, se, false
	}

	var xtx [3][3]float64
	var xty [3]float64
	for i := range x {
		for a := 0; a < 3; a++ {
			xty[a] += x[i][a] * y[i]
			for b := 0; b < 3; b++ {
				xtx[a][b] += x[i][a] * x[i][b]
			}
		}
	}

	inv, ok := invert3(xtx)
	if !ok {
		return beta, se, false
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			beta[a] += inv[a][b] * xty[b]
		}
	}

	// Residual variance with dof = n - 3.
	var rss float64
	for i := range x {
		fit := 0.0
		for a := 0; a < 3; a++ {
			fit += x[i][a] * beta[a]
		}
		r := y[i] - fit
		rss += r * r
	}
	sigma2 := rss / float64(n-3)
	for a := 0; a < 3; a++ {
		v := sigma2 * inv[a][a]
		if v < 0 {
			return beta, se, false
		}
		se[a] = math.Sqrt(v)
	}
	return beta, se, true
}

func invert3(m [3][3]float64) ([3][3]float64, bool) {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return [3][3]float64{}, false
	}
	inv := [3][3]float64{
		{(e*i - f*h) / det, (c*h - b*i) / det, (b*f - c*e) / det},
		{(f*g - d*i) / det, (a*i - c*g) / det, (c*d - a*f) / det},
		{(d*h - e*g) / det, (b*g - a*h) / det, (a*e - b*d) / det},
	}
	return inv, true
}
