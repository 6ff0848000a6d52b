package notification

import (
	"strings"
	"time"

	"skywatch.app/internal/core/forecast"
)

const subjectPrefix = "Weather notification"

// RunParams describes one notification run
type RunParams struct {
	Locations []forecast.Location
	// DryRun evaluates and logs the digest without sending it.
	DryRun bool
}

// RunResult summarizes a completed run
type RunResult struct {
	RunID      string
	StartedAt  time.Time
	Messages   []*forecast.Message
	Qualifying []*forecast.Message
	Digest     *Digest
	Sent       bool
}

// QualifyingNames returns the names of locations that met their criteria, in run order.
func (r *RunResult) QualifyingNames() []string {
	names := make([]string, 0, len(r.Qualifying))
	for _, msg := range r.Qualifying {
		names = append(names, msg.Location.Name)
	}
	return names
}

// Digest is the email produced for the qualifying locations of a run
type Digest struct {
	Subject string
	Body    string
}

// BuildDigest returns nil when nothing qualified.
func BuildDigest(qualifying []*forecast.Message) *Digest {
	if len(qualifying) == 0 {
		return nil
	}

	names := make([]string, 0, len(qualifying))
	lines := make([]string, 0, len(qualifying))
	for _, msg := range qualifying {
		names = append(names, msg.Location.Name)
		lines = append(lines, msg.Text)
	}

	return &Digest{
		Subject: subjectPrefix + ": " + strings.Join(names, ", "),
		Body:    strings.Join(lines, "\n"),
	}
}
