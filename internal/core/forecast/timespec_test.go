package forecast

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skywatch.app/pkg/errors"
)

func TestTimeResolver_FixedTimeOfDay(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 23, 45, 12, 345, time.UTC))
	resolver := NewTimeResolver(TimeResolverParams{Clock: clock})

	start, err := resolver.Resolve(FixedTimeOfDay{Hour: 7}, 48.1, -122.6)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC), start)
}

func TestTimeResolver_FixedTimeOfDay_UsesUTCDate(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	// 20:00 in Los Angeles is already the next day in UTC.
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 20, 0, 0, 0, la))
	resolver := NewTimeResolver(TimeResolverParams{Clock: clock})

	start, err := resolver.Resolve(FixedTimeOfDay{Hour: 10, Minute: 30, Second: 5}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 30, 5, 0, time.UTC), start)
}

func TestTimeResolver_FixedTimeOfDay_OutOfRange(t *testing.T) {
	resolver := NewTimeResolver(TimeResolverParams{Clock: clockwork.NewFakeClock()})

	for _, spec := range []FixedTimeOfDay{{Hour: 24}, {Minute: 60}, {Second: -1}} {
		_, err := resolver.Resolve(spec, 0, 0)
		assert.True(t, errors.IsUnsupportedTimeSpecError(err), spec.String())
	}
}

func TestTimeResolver_Sunrise(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	rise := time.Date(2024, 6, 1, 12, 14, 0, 0, time.UTC)

	var gotLat, gotLon float64
	var gotDay time.Time
	resolver := NewTimeResolver(TimeResolverParams{
		Clock: clockwork.NewFakeClockAt(now),
		Sunrise: func(lat, lon float64, day time.Time) (time.Time, error) {
			gotLat, gotLon, gotDay = lat, lon, day
			return rise, nil
		},
	})

	start, err := resolver.Resolve(SunriseRelative{}, 48.16, -122.68)
	require.NoError(t, err)

	assert.Equal(t, rise.Add(24*time.Hour), start)
	assert.Equal(t, 48.16, gotLat)
	assert.Equal(t, -122.68, gotLon)
	assert.Equal(t, 1, gotDay.Day())
}

func TestTimeResolver_Sunrise_DateZone(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	var gotDay time.Time
	resolver := NewTimeResolver(TimeResolverParams{
		// 03:00 UTC on June 2nd is still June 1st in Los Angeles.
		Clock:    clockwork.NewFakeClockAt(time.Date(2024, 6, 2, 3, 0, 0, 0, time.UTC)),
		DateZone: la,
		Sunrise: func(lat, lon float64, day time.Time) (time.Time, error) {
			gotDay = day
			return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC), nil
		},
	})

	start, err := resolver.Resolve(SunriseRelative{}, 48, -122)
	require.NoError(t, err)
	assert.Equal(t, 1, gotDay.Day())
	assert.Equal(t, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC), start)
}

func TestAstronomicalSunrise(t *testing.T) {
	// Keystone ferry terminal, Whidbey Island.
	day := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	rise, err := AstronomicalSunrise(48.164146562311, -122.6778767848785, day)
	require.NoError(t, err)

	// Summer solstice sunrise there is a little after 05:10 PDT (12:10 UTC).
	expected := time.Date(2024, 6, 21, 12, 10, 0, 0, time.UTC)
	assert.WithinDuration(t, expected, rise, 15*time.Minute)
}

func TestAstronomicalSunrise_PolarNight(t *testing.T) {
	_, err := AstronomicalSunrise(89.9, 0, time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.IsUnsupportedTimeSpecError(err))
}

type bogusSpec struct{}

func (bogusSpec) isTimeSpec()    {}
func (bogusSpec) String() string { return "bogus" }

func TestTimeResolver_UnsupportedSpec(t *testing.T) {
	resolver := NewTimeResolver(TimeResolverParams{Clock: clockwork.NewFakeClock()})

	_, err := resolver.Resolve(bogusSpec{}, 0, 0)
	assert.True(t, errors.IsUnsupportedTimeSpecError(err))

	_, err = resolver.Resolve(nil, 0, 0)
	assert.True(t, errors.IsUnsupportedTimeSpecError(err))
}

func TestTimeResolver_ResolveSpan(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	resolver := NewTimeResolver(TimeResolverParams{Clock: clock})

	point := Location{Name: "Mt Erie", Start: FixedTimeOfDay{Hour: 7}}
	span, err := resolver.ResolveSpan(point)
	require.NoError(t, err)
	assert.Equal(t, span.Start, span.End)

	windowed := Location{Name: "Mt Erie", Start: FixedTimeOfDay{Hour: 7}, Window: &Window{HoursAfter: 2}}
	span, err = resolver.ResolveSpan(windowed)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC), span.Start)
	assert.Equal(t, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), span.End)
}

func TestTimeSpec_String(t *testing.T) {
	assert.Equal(t, "07:05:00", FixedTimeOfDay{Hour: 7, Minute: 5}.String())
	assert.Equal(t, "sunrise", SunriseRelative{}.String())
}
