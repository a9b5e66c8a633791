package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unavailable")

// fakeClock 手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := New("order-events", cfg)
	cb.now = clock.Now
	cb.toNewGeneration(clock.Now())
	return cb, clock
}

func fail(context.Context) error    { return errBroker }
func succeed(context.Context) error { return nil }

func TestClosedState(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3)})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, cb.Execute(ctx, succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(5), cb.Counts().TotalSuccesses)
}

func TestTripsAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3), Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errBroker)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestHalfOpenRecovers(t *testing.T) {
	cb, clock := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(1), Timeout: 10 * time.Second})
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))
	require.Equal(t, StateOpen, cb.State())

	clock.Advance(11 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ctx, succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(1), Timeout: 10 * time.Second})
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))
	clock.Advance(11 * time.Second)

	require.Error(t, cb.Execute(ctx, fail))
	assert.Equal(t, StateOpen, cb.State())
}

func TestIntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(3), Interval: time.Minute})
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, fail))
	require.Error(t, cb.Execute(ctx, fail))
	clock.Advance(2 * time.Minute)
	require.Error(t, cb.Execute(ctx, fail))

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCanceledContextNotCounted(t *testing.T) {
	cb, _ := newTestBreaker(Config{ReadyToTrip: ConsecutiveFailures(1)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cb.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Counts().Requests)
}

func TestStateChangeCallback(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		ReadyToTrip: ConsecutiveFailures(1),
		Timeout:     time.Second,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.Advance(2 * time.Second)
	_ = cb.Execute(ctx, succeed)

	assert.Equal(t, []string{
		"order-events:CLOSED->OPEN",
		"order-events:OPEN->HALF_OPEN",
		"order-events:HALF_OPEN->CLOSED",
	}, transitions)
}

func TestFailureRate(t *testing.T) {
	assert.Equal(t, float64(0), Counts{}.FailureRate())
	assert.Equal(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate())
}

func TestConcurrentExecute(t *testing.T) {
	cb := New("concurrent", Config{ReadyToTrip: ConsecutiveFailures(1000)})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cb.Execute(ctx, succeed)
		}()
	}
	wg.Wait()
	assert.Equal(t, uint32(50), cb.Counts().TotalSuccesses)
}
