package health

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"mapkit/internal/pkg/normalizer"
)

var probeInstant = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NormalizerProvider round-trips a fixed instant through the configured
// date-time normalizer. It fails when the configured defaults can no
// longer read back what they write.
type NormalizerProvider struct {
	normalizer *normalizer.DateTimeNormalizer
}

// NewNormalizerProvider creates the normalizer readiness check
func NewNormalizerProvider(n *normalizer.DateTimeNormalizer) *NormalizerProvider {
	return &NormalizerProvider{normalizer: n}
}

// Name returns the provider name
func (p *NormalizerProvider) Name() string {
	return "normalizer"
}

// Check performs the round trip
func (p *NormalizerProvider) Check(_ context.Context) HealthCheckResult {
	result := HealthCheckResult{
		Name:      p.Name(),
		CheckedAt: time.Now(),
		Details:   map[string]any{"format": p.normalizer.Defaults().Format},
	}

	if err := p.roundTrip(); err != nil {
		result.Status = StatusDown
		result.Error = err.Error()
		return result
	}

	result.Status = StatusUp
	return result
}

func (p *NormalizerProvider) roundTrip() error {
	encoded, err := p.normalizer.Normalize(probeInstant, nil)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	decoded, err := p.normalizer.Denormalize(encoded, reflect.TypeOf(time.Time{}), nil)
	if err != nil {
		return fmt.Errorf("denormalize: %w", err)
	}
	got, ok := decoded.(time.Time)
	if !ok || got.Unix() != probeInstant.Unix() {
		return fmt.Errorf("round trip returned %v", decoded)
	}
	return nil
}
