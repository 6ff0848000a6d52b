package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Grid forecast attributes understood by the evaluator.
const (
	AttributeSkyCover                   = "skyCover"
	AttributeWindSpeed                  = "windSpeed"
	AttributeWindGust                   = "windGust"
	AttributeProbabilityOfPrecipitation = "probabilityOfPrecipitation"
	AttributeRelativeHumidity           = "relativeHumidity"
)

const defaultUnit = "%"

// units holds the rendering unit per attribute; anything missing renders as a percentage.
var units = map[string]string{
	AttributeSkyCover:                   "%",
	AttributeWindSpeed:                  "mph",
	AttributeWindGust:                   "mph",
	AttributeProbabilityOfPrecipitation: "%",
	AttributeRelativeHumidity:           "%",
}

// UnitFor returns the display unit for a grid attribute.
func UnitFor(attribute string) string {
	if unit, ok := units[attribute]; ok {
		return unit
	}
	return defaultUnit
}

// KnownAttributes lists the attributes a Condition may reference, sorted.
func KnownAttributes() []string {
	attrs := make([]string, 0, len(units))
	for attr := range units {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)
	return attrs
}

// IsKnownAttribute reports whether the attribute has an entry in the unit table.
func IsKnownAttribute(attribute string) bool {
	_, ok := units[attribute]
	return ok
}

// Condition is met when the forecast value of Attribute is strictly below Threshold.
type Condition struct {
	Attribute string
	Threshold float64
}

// Window extends a location's start instant by HoursAfter hours.
type Window struct {
	HoursAfter int
}

// Location is a statically configured place to evaluate.
type Location struct {
	Name       string
	Latitude   float64
	Longitude  float64
	Conditions []Condition
	Start      TimeSpec
	Window     *Window
}

// Validate checks location invariants
func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("location name cannot be empty")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if len(l.Conditions) == 0 {
		return fmt.Errorf("at least one condition is required")
	}
	for _, c := range l.Conditions {
		if !IsKnownAttribute(c.Attribute) {
			return fmt.Errorf("unknown attribute %q", c.Attribute)
		}
	}
	if l.Start == nil {
		return fmt.Errorf("start time is required")
	}
	if l.Window != nil && l.Window.HoursAfter < 1 {
		return fmt.Errorf("window hours_after must be at least 1")
	}
	return nil
}

// Windowed reports whether the location is evaluated over a window.
func (l *Location) Windowed() bool {
	return l.Window != nil
}

// Span is the resolved time of interest. Start equals End in point mode.
type Span struct {
	Start time.Time
	End   time.Time
}

// Reading is the extracted value of one condition. In point mode Min and Max equal Value.
type Reading struct {
	Condition Condition
	Value     float64
	Min       float64
	Max       float64
	Samples   int
}

// Message is the evaluation result for one location.
type Message struct {
	Location      Location
	Readings      []Reading
	Span          Span
	Windowed      bool
	MeetsCriteria bool
	Text          string
}
