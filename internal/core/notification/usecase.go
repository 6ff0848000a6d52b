package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"skywatch.app/internal/core/forecast"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// UseCase drives a notification run: evaluate every location in order, then email the
// qualifying ones. Locations are processed sequentially and the first error aborts the run.
type UseCase struct {
	forecastProvider ports.ForecastProvider
	emailProvider    ports.EmailProvider
	resolver         *forecast.TimeResolver
	evaluator        *forecast.Evaluator
	recipients       []string
	clock            clockwork.Clock
	logger           ports.Logger
	metrics          ports.MetricsCollector
}

type UseCaseDependencies struct {
	ForecastProvider ports.ForecastProvider
	EmailProvider    ports.EmailProvider
	Resolver         *forecast.TimeResolver
	Evaluator        *forecast.Evaluator
	Recipients       []string
	Clock            clockwork.Clock
	Logger           ports.Logger
	Metrics          ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.ForecastProvider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.EmailProvider == nil {
		return nil, errors.NewValidationError("email provider is required")
	}
	if deps.Resolver == nil {
		return nil, errors.NewValidationError("time resolver is required")
	}
	if deps.Evaluator == nil {
		return nil, errors.NewValidationError("evaluator is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &UseCase{
		forecastProvider: deps.ForecastProvider,
		emailProvider:    deps.EmailProvider,
		resolver:         deps.Resolver,
		evaluator:        deps.Evaluator,
		recipients:       deps.Recipients,
		clock:            clock,
		logger:           deps.Logger,
		metrics:          deps.Metrics,
	}, nil
}

// EvaluateLocation fetches the grid forecast for loc and evaluates its conditions.
func (uc *UseCase) EvaluateLocation(ctx context.Context, loc forecast.Location) (*forecast.Message, error) {
	span, err := uc.resolver.ResolveSpan(loc)
	if err != nil {
		return nil, fmt.Errorf("resolve target time: %w", err)
	}

	body, err := uc.forecastProvider.GetGridData(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, fmt.Errorf("get grid forecast: %w", err)
	}

	grid, err := forecast.ParseGridData(body)
	if err != nil {
		return nil, fmt.Errorf("parse grid forecast: %w", err)
	}

	msg, err := uc.evaluator.Evaluate(loc, grid, span)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordEvaluation(ctx, loc.Name, msg.MeetsCriteria)
	return msg, nil
}

// Evaluate runs EvaluateLocation over locations in order and stops at the first error.
func (uc *UseCase) Evaluate(ctx context.Context, locations []forecast.Location) ([]*forecast.Message, error) {
	messages := make([]*forecast.Message, 0, len(locations))
	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := uc.EvaluateLocation(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("evaluate location %s: %w", loc.Name, err)
		}

		uc.logger.Debug("Location evaluated",
			ports.F("location", loc.Name),
			ports.F("meets_criteria", msg.MeetsCriteria),
			ports.F("message", msg.Text))
		messages = append(messages, msg)
	}
	return messages, nil
}

// Run evaluates params.Locations and emails the qualifying messages.
func (uc *UseCase) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	if len(params.Locations) == 0 {
		return nil, errors.NewValidationError("at least one location is required")
	}
	if !params.DryRun && len(uc.recipients) == 0 {
		return nil, errors.NewValidationError("email recipient is required")
	}

	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: uc.clock.Now(),
	}

	uc.logger.Info("Starting notification run",
		ports.F("run_id", result.RunID),
		ports.F("locations", len(params.Locations)),
		ports.F("dry_run", params.DryRun))

	messages, err := uc.Evaluate(ctx, params.Locations)
	if err != nil {
		return nil, err
	}
	result.Messages = messages

	for _, msg := range messages {
		if msg.MeetsCriteria {
			result.Qualifying = append(result.Qualifying, msg)
		}
	}

	result.Digest = BuildDigest(result.Qualifying)
	if result.Digest == nil {
		uc.logger.Info("No locations matching criteria tomorrow", ports.F("run_id", result.RunID))
		uc.metrics.RecordNotification(ctx, false)
		return result, nil
	}

	if params.DryRun {
		uc.logger.Info("Dry run, notification not sent",
			ports.F("run_id", result.RunID),
			ports.F("subject", result.Digest.Subject),
			ports.F("body", result.Digest.Body))
		uc.metrics.RecordNotification(ctx, false)
		return result, nil
	}

	uc.logger.Info("Sending notification",
		ports.F("run_id", result.RunID),
		ports.F("subject", result.Digest.Subject),
		ports.F("body", result.Digest.Body))

	if err := uc.emailProvider.SendEmail(ctx, ports.EmailParams{
		To:      uc.recipients,
		Subject: result.Digest.Subject,
		Body:    result.Digest.Body,
	}); err != nil {
		return nil, fmt.Errorf("send notification email: %w", err)
	}

	result.Sent = true
	uc.metrics.RecordNotification(ctx, true)
	uc.logger.Info("Notification run completed",
		ports.F("run_id", result.RunID),
		ports.F("qualifying", len(result.Qualifying)),
		ports.F("sent", result.Sent))
	return result, nil
}
