// ledger/csv.go
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rustyeddy/analytics/exposure"
	"github.com/rustyeddy/analytics/series"
)

// ReadDatedValues reads a two-column CSV of day,value rows. A header row
// whose first field does not parse as a date is skipped.
func ReadDatedValues(path string) ([]series.DatedValue, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var out []series.DatedValue
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("%s line %d: want 2 columns, got %d", path, i+1, len(rec))
		}
		day, err := series.ParseDate(rec[0])
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		out = append(out, series.DatedValue{Day: day, Value: v})
	}
	series.Sort(out)
	return out, nil
}

// ReadPositions reads pair_id,symbol,quantity,price rows into pair
// positions, legs grouped by pair id in file order.
func ReadPositions(path string) ([]exposure.Position, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var out []exposure.Position
	byPair := make(map[string]int)
	for i, rec := range records {
		if len(rec) < 4 {
			return nil, fmt.Errorf("%s line %d: want 4 columns, got %d", path, i+1, len(rec))
		}
		qty, qerr := strconv.ParseFloat(rec[2], 64)
		price, perr := strconv.ParseFloat(rec[3], 64)
		if qerr != nil || perr != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%s line %d: bad numeric fields", path, i+1)
		}
		pairID := rec[0]
		idx, ok := byPair[pairID]
		if !ok {
			idx = len(out)
			byPair[pairID] = idx
			out = append(out, exposure.Position{PairID: pairID})
		}
		out[idx].Legs = append(out[idx].Legs, exposure.Leg{Symbol: rec[1], Quantity: qty, Price: price})
	}
	return out, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
