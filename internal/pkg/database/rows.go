package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"mapkit/internal/pkg/errorsx"
	"mapkit/internal/pkg/normalizer"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

var (
	// ErrInvalidConfig indicates database settings that cannot open a connection
	ErrInvalidConfig = errors.New("database: invalid configuration")

	// ErrInvalidTable indicates a table name that is not a plain identifier
	ErrInvalidTable = errors.New("database: invalid table name")
)

// tableName accepts "table" and "schema.table"
var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// RowSource reads raw rows from a table
type RowSource interface {
	FetchRows(ctx context.Context, table string, limit int) ([]normalizer.Row, error)
}

var _ RowSource = (*Database)(nil)

// FetchRows returns up to limit rows of table; limit <= 0 returns all rows.
// Connection and timeout failures are marked retryable; a bad table name and
// SQL errors such as an undefined table are permanent.
func (d *Database) FetchRows(ctx context.Context, table string, limit int) ([]normalizer.Row, error) {
	if !tableName.MatchString(table) {
		return nil, errorsx.WrapPermanent(fmt.Errorf("%w: %q", ErrInvalidTable, table))
	}

	query := d.DB.WithContext(ctx).Table(table)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []map[string]any
	if err := query.Find(&records).Error; err != nil {
		return nil, classifyQueryError(fmt.Errorf("failed to fetch rows from %s: %w", table, err))
	}

	return lo.Map(records, func(record map[string]any, _ int) normalizer.Row {
		return normalizer.Row(record)
	}), nil
}

// retryableSQLStates holds the SQLSTATE classes and codes where a second attempt can succeed
var retryableSQLStates = []string{"08", "53", "57P01", "57P02", "57P03", "40001", "40P01"}

func classifyQueryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		retryable := lo.ContainsBy(retryableSQLStates, func(prefix string) bool {
			return strings.HasPrefix(pgErr.Code, prefix)
		})
		if retryable {
			return errorsx.WrapRetryable(err)
		}
		return errorsx.WrapPermanent(err)
	}

	var netErr net.Error
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) || errors.As(err, &netErr) {
		return errorsx.WrapRetryable(err)
	}
	return err
}
