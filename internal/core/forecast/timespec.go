package forecast

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nathan-osman/go-sunrise"
	"skywatch.app/pkg/errors"
)

// TimeSpec selects the target instant of a location: FixedTimeOfDay or SunriseRelative.
type TimeSpec interface {
	isTimeSpec()
	String() string
}

// FixedTimeOfDay is tomorrow (UTC) at the given wall-clock time.
type FixedTimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

func (FixedTimeOfDay) isTimeSpec() {}

func (f FixedTimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", f.Hour, f.Minute, f.Second)
}

// Validate checks the clock fields are in range
func (f FixedTimeOfDay) Validate() error {
	if f.Hour < 0 || f.Hour > 23 || f.Minute < 0 || f.Minute > 59 || f.Second < 0 || f.Second > 59 {
		return errors.NewUnsupportedTimeSpecError(fmt.Sprintf("time of day %s is out of range", f))
	}
	return nil
}

// SunriseRelative is today's astronomical sunrise at the location, advanced by one day.
type SunriseRelative struct{}

func (SunriseRelative) isTimeSpec() {}

func (SunriseRelative) String() string {
	return "sunrise"
}

// SunriseFunc returns the sunrise instant at lat/lon on the calendar date of day.
type SunriseFunc func(lat, lon float64, day time.Time) (time.Time, error)

// AstronomicalSunrise computes sunrise with the NOAA solar equations.
func AstronomicalSunrise(lat, lon float64, day time.Time) (time.Time, error) {
	rise, _ := sunrise.SunriseSunset(lat, lon, day.Year(), day.Month(), day.Day())
	if rise.IsZero() {
		return time.Time{}, errors.NewUnsupportedTimeSpecError(
			fmt.Sprintf("no sunrise at %g,%g on %s", lat, lon, day.Format(time.DateOnly)))
	}
	return rise, nil
}

// TimeResolver turns a TimeSpec into concrete instants relative to its clock.
type TimeResolver struct {
	clock    clockwork.Clock
	sunrise  SunriseFunc
	dateZone *time.Location
}

// TimeResolverParams holds parameters for creating a TimeResolver
type TimeResolverParams struct {
	Clock   clockwork.Clock
	Sunrise SunriseFunc
	// DateZone decides which calendar date "today" is for sunrise lookups. Defaults to UTC.
	DateZone *time.Location
}

// NewTimeResolver creates a resolver; nil fields fall back to the real clock and AstronomicalSunrise.
func NewTimeResolver(params TimeResolverParams) *TimeResolver {
	r := &TimeResolver{
		clock:    params.Clock,
		sunrise:  params.Sunrise,
		dateZone: params.DateZone,
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.sunrise == nil {
		r.sunrise = AstronomicalSunrise
	}
	if r.dateZone == nil {
		r.dateZone = time.UTC
	}
	return r
}

// Resolve returns the start instant for spec at the given coordinates.
func (r *TimeResolver) Resolve(spec TimeSpec, lat, lon float64) (time.Time, error) {
	switch s := spec.(type) {
	case FixedTimeOfDay:
		if err := s.Validate(); err != nil {
			return time.Time{}, err
		}
		tomorrow := r.clock.Now().UTC().AddDate(0, 0, 1)
		return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(),
			s.Hour, s.Minute, s.Second, 0, time.UTC), nil
	case SunriseRelative:
		rise, err := r.sunrise(lat, lon, r.clock.Now().In(r.dateZone))
		if err != nil {
			return time.Time{}, err
		}
		return rise.UTC().Add(24 * time.Hour), nil
	default:
		return time.Time{}, errors.NewUnsupportedTimeSpecError(fmt.Sprintf("unsupported time spec %v", spec))
	}
}

// ResolveSpan resolves the location's start and, when a window is configured,
// its end at start + hours_after.
func (r *TimeResolver) ResolveSpan(loc Location) (Span, error) {
	start, err := r.Resolve(loc.Start, loc.Latitude, loc.Longitude)
	if err != nil {
		return Span{}, err
	}

	span := Span{Start: start, End: start}
	if loc.Window != nil {
		span.End = start.Add(time.Duration(loc.Window.HoursAfter) * time.Hour)
	}
	return span, nil
}
