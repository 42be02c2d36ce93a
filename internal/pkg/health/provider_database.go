package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Pinger is the part of *sql.DB the database check needs
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DatabaseProvider checks that the row source database answers
type DatabaseProvider struct {
	name     string
	db       Pinger
	degraded time.Duration
}

// NewDatabaseProvider creates a database health provider; degraded <= 0 means one second
func NewDatabaseProvider(name string, db Pinger, degraded time.Duration) *DatabaseProvider {
	if name == "" {
		name = "database"
	}
	if degraded <= 0 {
		degraded = time.Second
	}
	return &DatabaseProvider{name: name, db: db, degraded: degraded}
}

// Name returns the provider name
func (p *DatabaseProvider) Name() string {
	return p.name
}

// Check pings the database and reports pool statistics when available
func (p *DatabaseProvider) Check(ctx context.Context) HealthCheckResult {
	result := HealthCheckResult{
		Name:      p.name,
		CheckedAt: time.Now(),
		Details:   make(map[string]any),
	}

	start := time.Now()
	err := p.db.PingContext(ctx)
	latency := time.Since(start)

	result.Details["latency_ms"] = latency.Milliseconds()

	if err != nil {
		result.Status = StatusDown
		result.Error = fmt.Sprintf("failed to ping database: %v", err)
		return result
	}

	if sqlDB, ok := p.db.(*sql.DB); ok {
		stats := sqlDB.Stats()
		result.Details["open_connections"] = stats.OpenConnections
		result.Details["in_use"] = stats.InUse
		result.Details["idle"] = stats.Idle
	}

	if latency > p.degraded {
		result.Status = StatusDegraded
		result.Details["message"] = "high latency detected"
		return result
	}

	result.Status = StatusUp
	return result
}
