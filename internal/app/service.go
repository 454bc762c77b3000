// Package app wires the assessment pipeline: fetch every patient record,
// fold the set into alert buckets, submit the result once.
package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/medwatch/triage/internal/domain/model"
	"github.com/medwatch/triage/internal/domain/triage"
	"github.com/medwatch/triage/pkg/logger"
	"github.com/medwatch/triage/pkg/metrics"
)

// Client is the slice of the API adapter the pipeline needs.
type Client interface {
	FetchAllPatients(ctx context.Context) ([]model.Patient, error)
	SubmitAssessment(ctx context.Context, payload model.AlertPayload) (json.RawMessage, error)
}

// Service runs the fetch-score-submit pipeline. Strictly sequential: no
// page fetch, retry wait, or submission overlaps with another.
type Service struct {
	client Client
	log    logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets the assessment API client.
func WithClient(client Client) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a Service. A client must be supplied via WithClient
// before Run is called.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full assessment: fetch all pages, aggregate, submit.
// It returns the submitted payload and the API's raw response.
// Submission happens exactly once, only after the entire patient set has
// been fetched and scored; a fetch failure therefore never produces a
// partial submission.
func (s *Service) Run(ctx context.Context) (model.AlertPayload, json.RawMessage, error) {
	runID := uuid.NewString()
	start := time.Now()

	s.info(ctx, "starting assessment run", logger.String("run_id", runID))

	patients, err := s.client.FetchAllPatients(ctx)
	if err != nil {
		return model.AlertPayload{}, nil, err
	}

	s.info(ctx, "fetched patient records",
		logger.String("run_id", runID),
		logger.Int("patients", len(patients)),
	)

	payload := triage.Aggregate(patients)

	s.info(ctx, "aggregated alert buckets",
		logger.String("run_id", runID),
		logger.Int("high_risk", len(payload.HighRisk)),
		logger.Int("fever", len(payload.Fever)),
		logger.Int("data_quality", len(payload.DataQuality)),
	)

	resp, err := s.client.SubmitAssessment(ctx, payload)
	if err != nil {
		return model.AlertPayload{}, nil, err
	}

	elapsed := time.Since(start)
	metrics.ObserveRunDuration(elapsed)
	s.info(ctx, "assessment submitted",
		logger.String("run_id", runID),
		logger.Duration("elapsed", elapsed),
	)

	return payload, resp, nil
}

func (s *Service) info(ctx context.Context, msg string, fields ...logger.Field) {
	if s.log != nil {
		s.log.Info(ctx, msg, fields...)
	}
}
