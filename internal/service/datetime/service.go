package datetime

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"mapkit/internal/pkg/database"
	"mapkit/internal/pkg/encoder"
	"mapkit/internal/pkg/errorsx"
	"mapkit/internal/pkg/logger"
	"mapkit/internal/pkg/mapper"
	"mapkit/internal/pkg/normalizer"
	"mapkit/internal/pkg/retry"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrRowSourceUnavailable is returned by ExportRows when no database is wired
var ErrRowSourceUnavailable = errors.New("datetime: row source unavailable")

var timeType = reflect.TypeOf(time.Time{})

// fetchPolicy retries row queries that failed with a retryable error
var fetchPolicy = retry.ExponentialBackoff(200*time.Millisecond, 2*time.Second, true, 3)

// Description is the decoded form of a date-time value
type Description struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

type describeInput struct {
	Value time.Time `json:"value" validate:"required"`
}

// DateTimeService converts date-time values between representations
type DateTimeService struct {
	datetime *normalizer.DateTimeNormalizer
	rows     *normalizer.RowNormalizer
	mapper   *mapper.Mapper
	encoders *encoder.Registry
	source   database.RowSource
	fetch    retry.Policy
	logger   *logger.Logger
}

// ServiceParams holds the service dependencies. Source is only present
// when the database module is part of the app.
type ServiceParams struct {
	fx.In

	DateTime *normalizer.DateTimeNormalizer
	Rows     *normalizer.RowNormalizer
	Mapper   *mapper.Mapper
	Encoders *encoder.Registry
	Source   database.RowSource `optional:"true"`
	Logger   *logger.Logger
}

// NewDateTimeService creates a new date-time service
func NewDateTimeService(p ServiceParams) *DateTimeService {
	return &DateTimeService{
		datetime: p.DateTime,
		rows:     p.Rows,
		mapper:   p.Mapper,
		encoders: p.Encoders,
		source:   p.Source,
		fetch:    fetchPolicy,
		logger:   p.Logger,
	}
}

// Convert reads value with the from context and renders it with the to context
func (s *DateTimeService) Convert(value any, from, to normalizer.Context) (any, error) {
	t, err := s.datetime.Denormalize(value, timeType, from)
	if err != nil {
		return nil, err
	}
	return s.datetime.Normalize(t, to)
}

// Describe decodes value through the mapper and reports the instant and its zone
func (s *DateTimeService) Describe(value any, ctx normalizer.Context) (*Description, error) {
	in, err := mapper.MapTo[describeInput](s.mapper, map[string]any{"value": value}, ctx)
	if err != nil {
		return nil, err
	}
	return &Description{
		Time:     in.Value.Format(time.RFC3339Nano),
		Timezone: normalizer.ZoneName(in.Value),
	}, nil
}

// ExportRows fetches rows of table and normalizes them with ctx
func (s *DateTimeService) ExportRows(ctx context.Context, table string, limit int, normCtx normalizer.Context) ([]any, error) {
	if s.source == nil {
		return nil, ErrRowSourceUnavailable
	}

	rows, err := retry.Do(ctx, s.fetch, func(ctx context.Context) ([]normalizer.Row, error) {
		rows, err := s.source.FetchRows(ctx, table, limit)
		if err != nil && errorsx.IsRetryable(err) {
			s.logger.Warn("Row fetch failed", zap.String("table", table), zap.Error(err))
		}
		return rows, err
	}, errorsx.IsRetryable)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(rows))
	for i, row := range rows {
		normalized, err := s.rows.Normalize(row, normCtx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, normalized)
	}

	s.logger.Debug("Rows exported", zap.String("table", table), zap.Int("count", len(out)))
	return out, nil
}

// Encode writes data in the given format
func (s *DateTimeService) Encode(format string, data any) ([]byte, error) {
	enc, err := s.encoders.Get(format)
	if err != nil {
		return nil, err
	}
	return enc.Encode(data)
}

// Decode reads a value written in the given format
func (s *DateTimeService) Decode(format string, in []byte) (any, error) {
	enc, err := s.encoders.Get(format)
	if err != nil {
		return nil, err
	}
	return enc.Decode(in)
}
