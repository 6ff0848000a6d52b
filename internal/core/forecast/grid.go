package forecast

import (
	"encoding/json"
	"fmt"
	"math"

	"skywatch.app/pkg/errors"
)

const (
	uomKilometersPerHour = "wmoUnit:km_h-1"
	kmhToMph             = 0.621371
)

// GridData is a decoded grid forecast document. Attributes are decoded on demand.
type GridData struct {
	properties map[string]json.RawMessage
}

type gridDocument struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

type gridLayer struct {
	UOM    string  `json:"uom"`
	Values *Series `json:"values"`
}

// ParseGridData decodes the body returned by a grid forecast endpoint.
func ParseGridData(body []byte) (*GridData, error) {
	var doc gridDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.NewMalformedResponseError("grid forecast is not valid JSON", err)
	}
	if doc.Properties == nil {
		return nil, errors.NewMalformedResponseError("grid forecast has no properties", nil)
	}
	return &GridData{properties: doc.Properties}, nil
}

// Series returns the entries for attribute. Wind speeds published in km/h are converted
// to mph so values match their rendered unit.
func (g *GridData) Series(attribute string) (Series, error) {
	raw, ok := g.properties[attribute]
	if !ok {
		return nil, errors.NewMalformedResponseError(
			fmt.Sprintf("grid forecast has no %s attribute", attribute), nil)
	}

	var layer gridLayer
	if err := json.Unmarshal(raw, &layer); err != nil {
		return nil, errors.NewMalformedResponseError(
			fmt.Sprintf("grid forecast attribute %s is malformed", attribute), err)
	}
	if layer.Values == nil {
		return nil, errors.NewMalformedResponseError(
			fmt.Sprintf("grid forecast attribute %s has no values", attribute), nil)
	}

	series := *layer.Values
	if UnitFor(attribute) == "mph" && layer.UOM == uomKilometersPerHour {
		series = convertSeries(series, func(v float64) float64 {
			return math.Round(v*kmhToMph*10) / 10
		})
	}
	return series, nil
}

func convertSeries(series Series, fn func(float64) float64) Series {
	converted := make(Series, len(series))
	for i, entry := range series {
		converted[i] = Entry{ValidTime: entry.ValidTime}
		if entry.Value != nil {
			v := fn(*entry.Value)
			converted[i].Value = &v
		}
	}
	return converted
}
