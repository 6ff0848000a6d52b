package forecast

import (
	"fmt"
	"time"

	"skywatch.app/pkg/errors"
)

// Entry is one (validTime, value) pair of a grid attribute. Value is nil when the
// provider publishes null.
type Entry struct {
	ValidTime string   `json:"validTime"`
	Value     *float64 `json:"value"`
}

// Series is the list of entries for one attribute. Order is not relied upon.
type Series []Entry

// FindPointValue returns the value of the first entry whose interval contains target.
// Entries with a null value never match.
func FindPointValue(series Series, target time.Time) (float64, error) {
	for i, entry := range series {
		interval, err := ParseInterval(entry.ValidTime)
		if err != nil {
			return 0, fmt.Errorf("series entry %d: %w", i, err)
		}
		if entry.Value == nil {
			continue
		}
		if interval.Contains(target) {
			return *entry.Value, nil
		}
	}

	return 0, errors.NewNoMatchingForecastError(
		fmt.Sprintf("no forecast interval contains %s", target.UTC().Format(time.RFC3339)))
}

// FindWindowValues samples the series hourly from start to end, both inclusive.
// Samples without a matching interval are skipped; an entirely empty window is an error.
func FindWindowValues(series Series, start, end time.Time) ([]float64, error) {
	var values []float64
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		value, err := FindPointValue(series, t)
		if err != nil {
			if errors.IsNoMatchingForecastError(err) {
				continue
			}
			return nil, err
		}
		values = append(values, value)
	}

	if len(values) == 0 {
		return nil, errors.NewEmptyWindowError(
			fmt.Sprintf("no forecast values between %s and %s",
				start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)))
	}

	return values, nil
}

// MinMax returns the smallest and largest of values. values must not be empty.
func MinMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
