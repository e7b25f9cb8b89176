package service

import (
	"context"
	"esports-tracker/internal/analytics"
	"esports-tracker/internal/constants"
	"esports-tracker/internal/domain"
	"fmt"

	"github.com/rs/zerolog"
)

// RecordSource is the read surface the report pipeline needs from storage.
type RecordSource interface {
	FetchRecords(ctx context.Context, r domain.DateRange) ([]domain.MatchRecord, error)
}

// ReportService runs the stateless report pipeline: one read, one
// aggregation pass, one sort. Nothing survives between calls.
type ReportService struct {
	records RecordSource
	logger  zerolog.Logger
}

func NewReportService(records RecordSource, logger zerolog.Logger) *ReportService {
	return &ReportService{records: records, logger: logger}
}

func (s *ReportService) Report(ctx context.Context, r domain.DateRange) (*domain.RankedReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ReportTimeout)
	defer cancel()

	logger := requestLogger(ctx, s.logger)

	records, err := s.records.FetchRecords(ctx, r)
	if err != nil {
		logger.Error().
			Err(err).
			Str("start", r.StartString()).
			Str("end", r.EndString()).
			Msg("failed to fetch records for report")
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	report := analytics.Build(records, r, logger)

	event := logger.Info().
		Str("start", r.StartString()).
		Str("end", r.EndString()).
		Int("records", len(records)).
		Int("players", len(report.Entries)).
		Int("excluded", report.Excluded)
	if top, ok := report.TopPerformer(); ok {
		event = event.Str("top_performer", top.Name)
	}
	event.Msg("report built")

	return &report, nil
}

// Leaderboard is the all-time report.
func (s *ReportService) Leaderboard(ctx context.Context) (*domain.RankedReport, error) {
	return s.Report(ctx, domain.DateRange{})
}

// requestLogger prefers the request-scoped logger (carrying request_id) put
// on the context by the middleware.
func requestLogger(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}
