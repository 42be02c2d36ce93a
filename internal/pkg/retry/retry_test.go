package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFlaky = errors.New("flaky")

func TestPolicy_Delay(t *testing.T) {
	p := ExponentialBackoff(10*time.Millisecond, 50*time.Millisecond, false, 0)

	assert.Equal(t, 10*time.Millisecond, p.Delay(0))
	assert.Equal(t, 10*time.Millisecond, p.Delay(1))
	assert.Equal(t, 20*time.Millisecond, p.Delay(2))
	assert.Equal(t, 40*time.Millisecond, p.Delay(3))
	assert.Equal(t, 50*time.Millisecond, p.Delay(4))
}

func TestPolicy_DelayJitter(t *testing.T) {
	p := ExponentialBackoff(100*time.Millisecond, time.Second, true, 0)

	for i := 0; i < 20; i++ {
		d := p.Delay(1)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.Less(t, d, 120*time.Millisecond)
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), ExponentialBackoff(time.Millisecond, time.Millisecond, false, 5),
		func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errFlaky
			}
			return calls, nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	_, err := Do(context.Background(), ExponentialBackoff(time.Millisecond, time.Millisecond, false, 5),
		func(context.Context) (struct{}, error) {
			calls++
			return struct{}{}, permanent
		}, func(err error) bool { return !errors.Is(err, permanent) })

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ReturnsLastErrorWhenAttemptsRunOut(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), ExponentialBackoff(time.Millisecond, time.Millisecond, false, 3),
		func(context.Context) (string, error) {
			calls++
			return "", errFlaky
		}, nil)

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, ExponentialBackoff(time.Millisecond, time.Millisecond, false, 0),
		func(context.Context) (int, error) { return 1, nil }, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
