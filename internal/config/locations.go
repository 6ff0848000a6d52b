package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"skywatch.app/internal/core/forecast"
	"skywatch.app/pkg/errors"
	"skywatch.app/pkg/validation"
)

const sunriseKeyword = "sunrise"

// LocationsFile is the YAML document listing the places to evaluate.
type LocationsFile struct {
	Locations []LocationConfig `yaml:"locations" validate:"required,min=1,unique=Name,dive"`
}

type LocationConfig struct {
	Name       string            `yaml:"name" validate:"required"`
	Latitude   float64           `yaml:"latitude" validate:"min=-90,max=90"`
	Longitude  float64           `yaml:"longitude" validate:"min=-180,max=180"`
	Start      TimeSpecConfig    `yaml:"start"`
	Window     *WindowConfig     `yaml:"window,omitempty"`
	Conditions []ConditionConfig `yaml:"conditions" validate:"required,min=1,dive"`
}

type WindowConfig struct {
	HoursAfter int `yaml:"hours_after" validate:"min=1"`
}

type ConditionConfig struct {
	Attribute string  `yaml:"attribute" validate:"required,oneof=skyCover windSpeed windGust probabilityOfPrecipitation relativeHumidity"`
	Threshold float64 `yaml:"threshold"`
}

// TimeSpecConfig holds either the scalar "sunrise" or an {hour, minute, second} mapping.
type TimeSpecConfig struct {
	Spec forecast.TimeSpec
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *TimeSpecConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if strings.EqualFold(strings.TrimSpace(node.Value), sunriseKeyword) {
			t.Spec = forecast.SunriseRelative{}
			return nil
		}
		return errors.NewUnsupportedTimeSpecError(
			fmt.Sprintf("line %d: start %q is neither %q nor a time of day", node.Line, node.Value, sunriseKeyword))

	case yaml.MappingNode:
		for i := 0; i < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "hour", "minute", "second":
			default:
				return errors.NewUnsupportedTimeSpecError(
					fmt.Sprintf("line %d: unknown start field %q", node.Content[i].Line, key))
			}
		}

		var fixed struct {
			Hour   int `yaml:"hour"`
			Minute int `yaml:"minute"`
			Second int `yaml:"second"`
		}
		if err := node.Decode(&fixed); err != nil {
			return errors.Wrap(errors.ErrorTypeUnsupportedTimeSpec,
				fmt.Sprintf("line %d: invalid time of day", node.Line), err)
		}

		spec := forecast.FixedTimeOfDay{Hour: fixed.Hour, Minute: fixed.Minute, Second: fixed.Second}
		if err := spec.Validate(); err != nil {
			return err
		}
		t.Spec = spec
		return nil

	default:
		return errors.NewUnsupportedTimeSpecError(fmt.Sprintf("line %d: unsupported start value", node.Line))
	}
}

// MarshalYAML implements yaml.Marshaler
func (t TimeSpecConfig) MarshalYAML() (interface{}, error) {
	switch spec := t.Spec.(type) {
	case forecast.SunriseRelative:
		return sunriseKeyword, nil
	case forecast.FixedTimeOfDay:
		return map[string]int{"hour": spec.Hour, "minute": spec.Minute, "second": spec.Second}, nil
	default:
		return nil, errors.NewUnsupportedTimeSpecError("start is not set")
	}
}

// LoadLocations reads and validates the location list at path.
func LoadLocations(path string) ([]forecast.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to read locations file %s", path), err)
	}

	locations, err := ParseLocations(data)
	if err != nil {
		return nil, fmt.Errorf("locations file %s: %w", path, err)
	}
	return locations, nil
}

// ParseLocations decodes a YAML location list. Time specs are checked while decoding,
// so an unsupported start fails here rather than during a run.
func ParseLocations(data []byte) ([]forecast.Location, error) {
	var file LocationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		if errors.IsUnsupportedTimeSpecError(err) {
			return nil, err
		}
		return nil, errors.NewConfigurationError("failed to parse locations", err)
	}

	if err := validation.Struct(file); err != nil {
		return nil, err
	}

	return file.ToLocations()
}

// ToLocations converts the validated document to domain locations.
func (f LocationsFile) ToLocations() ([]forecast.Location, error) {
	locations := make([]forecast.Location, 0, len(f.Locations))
	for _, lc := range f.Locations {
		if lc.Start.Spec == nil {
			return nil, errors.NewUnsupportedTimeSpecError(fmt.Sprintf("location %s: start is required", lc.Name))
		}

		loc := forecast.Location{
			Name:       strings.TrimSpace(lc.Name),
			Latitude:   lc.Latitude,
			Longitude:  lc.Longitude,
			Start:      lc.Start.Spec,
			Conditions: make([]forecast.Condition, 0, len(lc.Conditions)),
		}
		for _, c := range lc.Conditions {
			loc.Conditions = append(loc.Conditions, forecast.Condition{Attribute: c.Attribute, Threshold: c.Threshold})
		}
		if lc.Window != nil {
			loc.Window = &forecast.Window{HoursAfter: lc.Window.HoursAfter}
		}

		if err := loc.Validate(); err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("location %s: %s", lc.Name, err))
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
