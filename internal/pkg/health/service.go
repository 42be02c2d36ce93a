package health

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout bounds a single provider check
const DefaultTimeout = 5 * time.Second

// Service runs every registered provider and aggregates the results
type Service struct {
	timeout   time.Duration
	providers []HealthProvider
	mu        sync.RWMutex
}

// NewService creates a health service; timeout <= 0 uses DefaultTimeout
func NewService(timeout time.Duration, providers ...HealthProvider) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		timeout:   timeout,
		providers: append([]HealthProvider(nil), providers...),
	}
}

// RegisterProvider registers a health provider
func (s *Service) RegisterProvider(p HealthProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, p)
}

// Check runs all providers in parallel. A provider that does not answer
// within the timeout is reported DOWN.
func (s *Service) Check(ctx context.Context) ([]HealthCheckResult, HealthStatus) {
	s.mu.RLock()
	providers := s.providers
	s.mu.RUnlock()

	if len(providers) == 0 {
		return []HealthCheckResult{}, StatusDown
	}

	results := make([]HealthCheckResult, len(providers))
	var wg sync.WaitGroup

	for i, provider := range providers {
		wg.Add(1)
		go func(idx int, p HealthProvider) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			resultCh := make(chan HealthCheckResult, 1)
			go func() {
				resultCh <- p.Check(checkCtx)
			}()

			select {
			case result := <-resultCh:
				results[idx] = result
			case <-checkCtx.Done():
				results[idx] = HealthCheckResult{
					Name:      p.Name(),
					Status:    StatusDown,
					CheckedAt: time.Now(),
					Error:     "health check timeout",
				}
			}
		}(i, provider)
	}

	wg.Wait()

	return results, aggregate(results)
}

// Response runs the checks and wraps them for the HTTP endpoint
func (s *Service) Response(ctx context.Context) HealthResponse {
	results, status := s.Check(ctx)
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// aggregate is DOWN if any check is down, DEGRADED if any is degraded
func aggregate(results []HealthCheckResult) HealthStatus {
	status := StatusUp
	for _, result := range results {
		switch result.Status {
		case StatusDown:
			return StatusDown
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
