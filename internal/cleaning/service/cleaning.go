package service

import (
	"context"
	"errors"
	"time"

	cleaningerrors "datacleaner/internal/cleaning/errors"
	"datacleaner/internal/cleaning/metrics"
	"datacleaner/internal/cleaning/repository"
	"datacleaner/internal/cleaning/validator"
	"datacleaner/pkg/config"
	apperrors "datacleaner/pkg/errors"
	"datacleaner/pkg/model"
	"datacleaner/pkg/table"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const runStore = "Cleaning run store"

type CleaningService interface {
	CleanRecords(ctx context.Context, req *model.CleanRecordsRequest) (*model.CleanRecordsResponse, error)
	CleanTable(ctx context.Context, t *table.Table, source string) (*model.CleaningRun, error)
	CleanMessage(ctx context.Context, msg *model.RecordMessage) (*model.CleanedRecordMessage, error)

	GetRun(ctx context.Context, id string) (*model.CleaningRun, error)
	ListRuns(ctx context.Context, limit int, offset int64) ([]*model.CleaningRun, int64, error)
}

type cleaningService struct {
	repo      repository.CleaningRunRepository
	validator *validator.CleaningValidator
	metrics   *metrics.Metrics
	cfg       *config.Config
	opts      Options
	rules     []Rule
	now       func() time.Time
}

// NewCleaningService builds the service. repo may be nil, in which case runs
// get a random id and are not stored.
func NewCleaningService(
	repo repository.CleaningRunRepository,
	validator *validator.CleaningValidator,
	metrics *metrics.Metrics,
	cfg *config.Config,
) CleaningService {
	return &cleaningService{
		repo:      repo,
		validator: validator,
		metrics:   metrics,
		cfg:       cfg,
		opts:      OptionsFromConfig(cfg),
		rules:     DefaultRules,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *cleaningService) CleanRecords(ctx context.Context, req *model.CleanRecordsRequest) (*model.CleanRecordsResponse, error) {
	if err := s.validator.ValidateCleanRequest(req, s.cfg.MaxBatchRecords); err != nil {
		s.cfg.Log.Warn("Clean request validation failed", "error", err)
		return nil, apperrors.Validation("Clean request validation failed", validationDetails(err))
	}

	run, outcome, err := s.run(ctx, model.SourceAPIRecords, req.Records, ColumnsOf(req.Records))
	if err != nil {
		return nil, err
	}

	return &model.CleanRecordsResponse{
		RunID:   run.ID,
		Records: outcome.Records,
		Summary: *run,
	}, nil
}

// CleanTable cleans t in place: rows are replaced by their cleaned copies and
// the derived columns are appended after the raw ones.
func (s *cleaningService) CleanTable(ctx context.Context, t *table.Table, source string) (*model.CleaningRun, error) {
	run, outcome, err := s.run(ctx, source, t.Rows, t.Columns)
	if err != nil {
		return nil, err
	}

	t.Rows = outcome.Records
	for _, rule := range outcome.Applied {
		t.AppendColumn(rule.Field)
	}
	return run, nil
}

// CleanMessage cleans a single streamed record. Nothing is stored.
func (s *cleaningService) CleanMessage(ctx context.Context, msg *model.RecordMessage) (*model.CleanedRecordMessage, error) {
	if err := s.validator.ValidateMessage(msg); err != nil {
		return nil, apperrors.Validation("Record message validation failed", validationDetails(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	columns := ColumnsOf([]model.Record{msg.Fields})
	applied, skipped := SplitRules(s.rules, columns)
	valid := make([]int, len(applied))
	cleaned := CleanRecord(msg.Fields, applied, s.opts, valid)

	run := s.newRun(model.SourceStream, 1, &Outcome{
		Skipped:     skipped,
		Overwritten: OverwrittenFields(applied, columns),
		Columns:     reports(applied, valid, 1),
	}, time.Since(start))
	s.metrics.ObserveRun(run, time.Since(start))

	var invalid []string
	for _, rule := range applied {
		if cleaned[rule.Field] == nil {
			invalid = append(invalid, rule.Field)
		}
	}

	return &model.CleanedRecordMessage{
		ID:             msg.ID,
		Fields:         cleaned,
		InvalidFields:  invalid,
		SkippedColumns: skipped,
		CleanedAt:      s.now(),
	}, nil
}

func (s *cleaningService) run(ctx context.Context, source string, records []model.Record, columns []string) (*model.CleaningRun, *Outcome, error) {
	start := time.Now()

	outcome, err := Clean(ctx, records, columns, s.rules, s.opts)
	if err != nil {
		s.metrics.RunFailed(source)
		s.cfg.Log.Error("Cleaning run failed",
			"source", source,
			"records", len(records),
			"error", err,
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, apperrors.Timeout("Cleaning run timed out")
		}
		return nil, nil, apperrors.Internal("Cleaning run failed", err)
	}

	for _, col := range outcome.Skipped {
		s.cfg.Log.Warn("Column not found, skipping rule", "column", col, "source", source)
	}
	for _, field := range outcome.Overwritten {
		s.cfg.Log.Warn("Input column replaced by cleaned values", "field", field, "source", source)
	}

	elapsed := time.Since(start)
	run := s.newRun(source, len(records), outcome, elapsed)

	if err := s.saveRun(ctx, run); err != nil {
		s.metrics.RunFailed(source)
		return nil, nil, err
	}
	s.metrics.ObserveRun(run, elapsed)

	s.cfg.Log.Info("Cleaning run completed",
		"run_id", run.ID,
		"source", source,
		"records", run.RecordCount,
		"skipped_columns", len(run.SkippedColumns),
		"duration_ms", run.DurationMs,
	)

	return run, outcome, nil
}

func (s *cleaningService) newRun(source string, count int, outcome *Outcome, elapsed time.Duration) *model.CleaningRun {
	return &model.CleaningRun{
		Source:             source,
		RecordCount:        count,
		Columns:            outcome.Columns,
		SkippedColumns:     outcome.Skipped,
		OverwrittenFields:  outcome.Overwritten,
		AgeMin:             s.opts.AgeRange.Min,
		AgeMax:             s.opts.AgeRange.Max,
		QuantityMin:        s.opts.QuantityRange.Min,
		QuantityMax:        s.opts.QuantityRange.Max,
		OrderDateFixedYear: s.opts.OrderDateFixedYear,
		DurationMs:         elapsed.Milliseconds(),
		CreatedAt:          s.now(),
	}
}

func (s *cleaningService) saveRun(ctx context.Context, run *model.CleaningRun) error {
	if err := s.validator.ValidateRun(run); err != nil {
		s.cfg.Log.Error("Cleaning run summary is invalid", "source", run.Source, "error", err)
		return apperrors.Internal("Cleaning run summary is invalid", err)
	}

	if s.repo == nil {
		run.ID = uuid.NewString()
		return nil
	}

	if err := s.repo.Create(ctx, run); err != nil {
		s.cfg.Log.Error("Failed to store cleaning run",
			"source", run.Source,
			"records", run.RecordCount,
			"error", err,
		)
		return apperrors.Unavailable(runStore)
	}
	return nil
}

func (s *cleaningService) GetRun(ctx context.Context, id string) (*model.CleaningRun, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Cleaning run ID cannot be empty")
	}
	if s.repo == nil {
		return nil, apperrors.Unavailable(runStore)
	}

	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, cleaningerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Cleaning run", id)
		}
		if errors.Is(err, cleaningerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid cleaning run ID format")
		}
		s.cfg.Log.Error("Failed to get cleaning run by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve cleaning run", err)
	}

	return run, nil
}

func (s *cleaningService) ListRuns(ctx context.Context, limit int, offset int64) ([]*model.CleaningRun, int64, error) {
	if s.repo == nil {
		return nil, 0, apperrors.Unavailable(runStore)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		runs  []*model.CleaningRun
		count int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		runs, err = s.repo.FindAll(gctx, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.cfg.Log.Error("Failed to list cleaning runs",
			"limit", limit,
			"offset", offset,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve cleaning runs", err)
	}

	if runs == nil {
		runs = []*model.CleaningRun{}
	}
	return runs, count, nil
}

func reports(applied []Rule, valid []int, total int) []model.ColumnReport {
	out := make([]model.ColumnReport, len(applied))
	for i, rule := range applied {
		out[i] = model.ColumnReport{
			Column:  rule.Column,
			Field:   rule.Field,
			Valid:   valid[i],
			Invalid: total - valid[i],
		}
	}
	return out
}

func validationDetails(err error) map[string]any {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errs.Details()
	}
	return map[string]any{"error": err.Error()}
}
