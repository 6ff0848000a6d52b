package forecast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"skywatch.app/pkg/errors"
)

var durationPattern = regexp.MustCompile(`^PT([0-9]+)H$`)

// startLayouts are tried in order; values without an offset are read as UTC.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

const maxIntervalHours = math.MaxInt64 / int64(time.Hour)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t < End.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// ParseInterval parses "<ISO-8601 datetime>/PT<N>H". Only hour durations are supported.
func ParseInterval(s string) (Interval, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Interval{}, errors.NewMalformedIntervalError(
			fmt.Sprintf("interval %q must have the form <start>/<duration>", s), nil)
	}

	start, err := parseStart(parts[0])
	if err != nil {
		return Interval{}, errors.NewMalformedIntervalError(
			fmt.Sprintf("interval %q has an unparseable start", s), err)
	}

	match := durationPattern.FindStringSubmatch(parts[1])
	if match == nil {
		return Interval{}, errors.NewMalformedIntervalError(
			fmt.Sprintf("interval %q has unsupported duration %q", s, parts[1]), nil)
	}

	hours, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || hours > maxIntervalHours {
		return Interval{}, errors.NewMalformedIntervalError(
			fmt.Sprintf("interval %q has an out of range duration", s), err)
	}
	if hours == 0 {
		return Interval{}, errors.NewMalformedIntervalError(
			fmt.Sprintf("interval %q has zero length", s), nil)
	}

	return Interval{
		Start: start,
		End:   start.Add(time.Duration(hours) * time.Hour),
	}, nil
}

func parseStart(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
