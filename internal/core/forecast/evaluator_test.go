package forecast

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skywatch.app/pkg/errors"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	zone, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return zone
}

// gridFrom builds a grid document from attribute series.
func gridFrom(t *testing.T, attrs map[string]Series) *GridData {
	t.Helper()
	properties := make(map[string]interface{}, len(attrs))
	for name, series := range attrs {
		properties[name] = map[string]interface{}{"values": series}
	}
	body, err := json.Marshal(map[string]interface{}{"properties": properties})
	require.NoError(t, err)

	grid, err := ParseGridData(body)
	require.NoError(t, err)
	return grid
}

func TestEvaluator_KeystoneSunriseWindow(t *testing.T) {
	rise := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	resolver := NewTimeResolver(TimeResolverParams{
		Clock: clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)),
		Sunrise: func(lat, lon float64, day time.Time) (time.Time, error) {
			return rise, nil
		},
	})

	keystone := Location{
		Name:      "Keystone",
		Latitude:  48.164146562311,
		Longitude: -122.6778767848785,
		Conditions: []Condition{
			{Attribute: AttributeSkyCover, Threshold: 60},
			{Attribute: AttributeWindSpeed, Threshold: 10},
		},
		Start:  SunriseRelative{},
		Window: &Window{HoursAfter: 2},
	}

	span, err := resolver.ResolveSpan(keystone)
	require.NoError(t, err)

	firstHour := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	grid := gridFrom(t, map[string]Series{
		AttributeSkyCover:  hourly(firstHour, 40, 55, 70),
		AttributeWindSpeed: hourly(firstHour, 5, 8, 15),
	})

	msg, err := NewEvaluator(pacific(t)).Evaluate(keystone, grid, span)
	require.NoError(t, err)

	require.Len(t, msg.Readings, 2)
	assert.Equal(t, float64(40), msg.Readings[0].Min)
	assert.Equal(t, float64(70), msg.Readings[0].Max)
	assert.Equal(t, 3, msg.Readings[0].Samples)
	assert.Equal(t, float64(5), msg.Readings[1].Min)
	assert.Equal(t, float64(15), msg.Readings[1].Max)

	assert.True(t, msg.Windowed)
	assert.True(t, msg.MeetsCriteria)
	assert.Contains(t, msg.Text, "skyCover between 40% and 70%")
	assert.Contains(t, msg.Text, "windSpeed between 5mph and 15mph")
	assert.Equal(t,
		"Keystone will have skyCover between 40% and 70% and windSpeed between 5mph and 15mph tomorrow between 05:30 and 07:30",
		msg.Text)
}

func TestEvaluator_PointMode(t *testing.T) {
	target := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	loc := Location{
		Name:       "Deer Lagoon",
		Conditions: []Condition{{Attribute: AttributeSkyCover, Threshold: 50}},
		Start:      FixedTimeOfDay{Hour: 14},
	}
	grid := gridFrom(t, map[string]Series{
		AttributeSkyCover: hourly(target.Add(-time.Hour), 90, 20, 90),
	})

	msg, err := NewEvaluator(pacific(t)).Evaluate(loc, grid, Span{Start: target, End: target})
	require.NoError(t, err)

	assert.False(t, msg.Windowed)
	assert.True(t, msg.MeetsCriteria)
	assert.Equal(t, "Deer Lagoon will have skyCover of 20% tomorrow at 07:00", msg.Text)
}

func TestEvaluator_Errors(t *testing.T) {
	target := time.Date(2024, 6, 2, 14, 0, 0, 0, time.UTC)
	evaluator := NewEvaluator(nil)

	tests := []struct {
		name      string
		loc       Location
		grid      map[string]Series
		errorType errors.ErrorType
	}{
		{
			name: "MissingAttribute",
			loc: Location{Name: "A", Start: FixedTimeOfDay{},
				Conditions: []Condition{{Attribute: AttributeWindSpeed, Threshold: 10}}},
			grid:      map[string]Series{AttributeSkyCover: hourly(target, 1)},
			errorType: errors.ErrorTypeMalformedResponse,
		},
		{
			name: "PointNoMatch",
			loc: Location{Name: "A", Start: FixedTimeOfDay{},
				Conditions: []Condition{{Attribute: AttributeSkyCover, Threshold: 10}}},
			grid:      map[string]Series{AttributeSkyCover: hourly(target.Add(5*time.Hour), 1)},
			errorType: errors.ErrorTypeNoMatchingForecast,
		},
		{
			name: "WindowEmpty",
			loc: Location{Name: "A", Start: FixedTimeOfDay{}, Window: &Window{HoursAfter: 2},
				Conditions: []Condition{{Attribute: AttributeSkyCover, Threshold: 10}}},
			grid:      map[string]Series{AttributeSkyCover: hourly(target.Add(5*time.Hour), 1)},
			errorType: errors.ErrorTypeEmptyWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := Span{Start: target, End: target}
			if tt.loc.Window != nil {
				span.End = target.Add(time.Duration(tt.loc.Window.HoursAfter) * time.Hour)
			}

			_, err := evaluator.Evaluate(tt.loc, gridFrom(t, tt.grid), span)
			require.Error(t, err)
			assert.Equal(t, tt.errorType, errors.TypeOf(err))
		})
	}
}

func TestMeetsCriteria_Point(t *testing.T) {
	sky := Condition{Attribute: AttributeSkyCover, Threshold: 60}
	wind := Condition{Attribute: AttributeWindSpeed, Threshold: 10}

	tests := []struct {
		name     string
		readings []Reading
		expected bool
	}{
		{"BelowThreshold", []Reading{{Condition: sky, Value: 59}}, true},
		{"EqualIsNotBelow", []Reading{{Condition: sky, Value: 60}}, false},
		{"AllBelow", []Reading{{Condition: sky, Value: 10}, {Condition: wind, Value: 9}}, true},
		{"OneAbove", []Reading{{Condition: sky, Value: 10}, {Condition: wind, Value: 12}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MeetsCriteria(tt.readings, false))
		})
	}
}

func TestMeetsCriteria_Window(t *testing.T) {
	sky := Condition{Attribute: AttributeSkyCover, Threshold: 60}
	wind := Condition{Attribute: AttributeWindSpeed, Threshold: 10}

	tests := []struct {
		name     string
		readings []Reading
		expected bool
	}{
		{
			name: "AnyMinBelow",
			readings: []Reading{
				{Condition: sky, Min: 50, Max: 80},
				{Condition: wind, Min: 12, Max: 20},
			},
			expected: true,
		},
		{
			name: "NoMinBelow",
			readings: []Reading{
				{Condition: sky, Min: 60, Max: 80},
				{Condition: wind, Min: 12, Max: 20},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MeetsCriteria(tt.readings, true))
		})
	}
}

func TestRenderReading(t *testing.T) {
	tests := []struct {
		name     string
		reading  Reading
		windowed bool
		expected string
	}{
		{
			name:     "PointPercent",
			reading:  Reading{Condition: Condition{Attribute: AttributeSkyCover}, Value: 20},
			expected: "skyCover of 20%",
		},
		{
			name:     "PointMph",
			reading:  Reading{Condition: Condition{Attribute: AttributeWindSpeed}, Value: 7.5},
			expected: "windSpeed of 7.5mph",
		},
		{
			name:     "WindowPercent",
			reading:  Reading{Condition: Condition{Attribute: AttributeRelativeHumidity}, Min: 40, Max: 95},
			windowed: true,
			expected: "relativeHumidity between 40% and 95%",
		},
		{
			name:     "UnknownAttributeDefaultsToPercent",
			reading:  Reading{Condition: Condition{Attribute: "somethingElse"}, Value: 1},
			expected: "somethingElse of 1%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderReading(tt.reading, tt.windowed))
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	valid := Location{
		Name:       "Duckabush",
		Latitude:   47.68,
		Longitude:  -123.03,
		Conditions: []Condition{{Attribute: AttributeSkyCover, Threshold: 50}},
		Start:      FixedTimeOfDay{Hour: 10},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(l *Location)
	}{
		{"EmptyName", func(l *Location) { l.Name = " " }},
		{"Latitude", func(l *Location) { l.Latitude = 90.5 }},
		{"Longitude", func(l *Location) { l.Longitude = -181 }},
		{"NoConditions", func(l *Location) { l.Conditions = nil }},
		{"UnknownAttribute", func(l *Location) { l.Conditions = []Condition{{Attribute: "temperature"}} }},
		{"NoStart", func(l *Location) { l.Start = nil }},
		{"ZeroWindow", func(l *Location) { l.Window = &Window{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := valid
			tt.mutate(&loc)
			assert.Error(t, loc.Validate())
		})
	}
}

func TestKnownAttributes(t *testing.T) {
	attrs := KnownAttributes()
	assert.Contains(t, attrs, AttributeSkyCover)
	assert.Contains(t, attrs, AttributeWindSpeed)
	assert.IsIncreasing(t, attrs)
	assert.Equal(t, "mph", UnitFor(AttributeWindSpeed))
	assert.Equal(t, "%", UnitFor(AttributeSkyCover))
}
