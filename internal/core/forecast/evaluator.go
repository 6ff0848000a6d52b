package forecast

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const clockLayout = "15:04"

// Evaluator extracts condition readings from grid data and renders messages.
type Evaluator struct {
	displayZone *time.Location
}

// NewEvaluator creates an evaluator rendering times in displayZone (UTC when nil).
func NewEvaluator(displayZone *time.Location) *Evaluator {
	if displayZone == nil {
		displayZone = time.UTC
	}
	return &Evaluator{displayZone: displayZone}
}

// Evaluate reads every condition of loc from grid over span and judges the result.
func (e *Evaluator) Evaluate(loc Location, grid *GridData, span Span) (*Message, error) {
	windowed := loc.Windowed()
	readings := make([]Reading, 0, len(loc.Conditions))

	for _, condition := range loc.Conditions {
		series, err := grid.Series(condition.Attribute)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", condition.Attribute, err)
		}

		reading, err := extract(condition, series, span, windowed)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", condition.Attribute, err)
		}
		readings = append(readings, reading)
	}

	msg := &Message{
		Location:      loc,
		Readings:      readings,
		Span:          span,
		Windowed:      windowed,
		MeetsCriteria: MeetsCriteria(readings, windowed),
	}
	msg.Text = e.Render(msg)
	return msg, nil
}

func extract(condition Condition, series Series, span Span, windowed bool) (Reading, error) {
	if !windowed {
		value, err := FindPointValue(series, span.Start)
		if err != nil {
			return Reading{}, err
		}
		return Reading{Condition: condition, Value: value, Min: value, Max: value, Samples: 1}, nil
	}

	values, err := FindWindowValues(series, span.Start, span.End)
	if err != nil {
		return Reading{}, err
	}
	lo, hi := MinMax(values)
	return Reading{Condition: condition, Value: lo, Min: lo, Max: hi, Samples: len(values)}, nil
}

// MeetsCriteria decides a location's outcome. Point mode needs every reading strictly
// below its threshold; window mode needs any reading's minimum strictly below its threshold.
func MeetsCriteria(readings []Reading, windowed bool) bool {
	if windowed {
		for _, r := range readings {
			if r.Min < r.Condition.Threshold {
				return true
			}
		}
		return false
	}

	for _, r := range readings {
		if !(r.Value < r.Condition.Threshold) {
			return false
		}
	}
	return true
}

// Render builds the human readable text for msg.
func (e *Evaluator) Render(msg *Message) string {
	parts := make([]string, 0, len(msg.Readings))
	for _, r := range msg.Readings {
		parts = append(parts, RenderReading(r, msg.Windowed))
	}

	var when string
	if msg.Windowed {
		when = fmt.Sprintf("tomorrow between %s and %s", e.clock(msg.Span.Start), e.clock(msg.Span.End))
	} else {
		when = fmt.Sprintf("tomorrow at %s", e.clock(msg.Span.Start))
	}

	return fmt.Sprintf("%s will have %s %s", msg.Location.Name, strings.Join(parts, " and "), when)
}

// RenderReading renders "<attr> of <v><unit>" or "<attr> between <min><unit> and <max><unit>".
func RenderReading(r Reading, windowed bool) string {
	unit := UnitFor(r.Condition.Attribute)
	if windowed {
		return fmt.Sprintf("%s between %s%s and %s%s",
			r.Condition.Attribute, formatValue(r.Min), unit, formatValue(r.Max), unit)
	}
	return fmt.Sprintf("%s of %s%s", r.Condition.Attribute, formatValue(r.Value), unit)
}

func (e *Evaluator) clock(t time.Time) string {
	return t.In(e.displayZone).Format(clockLayout)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
