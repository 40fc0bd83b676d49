package series

// EquityPoint is one day on an equity curve.
type EquityPoint struct {
	Day    Date    `json:"day"`
	Equity float64 `json:"equity"`
}

// EquityCurve is an ordered day-by-day equity series.
type EquityCurve []EquityPoint

// Curve extracts the end-of-day equity curve from calendarized rows.
func Curve(rows []DailyRow) EquityCurve {
	out := make(EquityCurve, len(rows))
	for i, r := range rows {
		out[i] = EquityPoint{Day: r.Day, Equity: r.EndBalance}
	}
	return out
}

// CompoundReturns builds an equity curve by compounding a return series
// against an initial balance. Within floating tolerance it matches the
// curve produced by rolling balances directly.
func CompoundReturns(returns []DatedValue, initialBalance float64) EquityCurve {
	out := make(EquityCurve, len(returns))
	equity := initialBalance
	for i, r := range returns {
		equity *= 1 + r.Value
		out[i] = EquityPoint{Day: r.Day, Equity: equity}
	}
	return out
}

// PctChange converts an equity curve into a period-over-period return
// series. The first point has no predecessor and yields 0, matching the
// upstream fillna convention; a zero predecessor also yields 0.
func PctChange(curve EquityCurve) []DatedValue {
	out := make([]DatedValue, len(curve))
	for i, p := range curve {
		v := 0.0
		if i > 0 && curve[i-1].Equity != 0 {
			v = p.Equity/curve[i-1].Equity - 1
		}
		out[i] = DatedValue{Day: p.Day, Value: v}
	}
	return out
}
