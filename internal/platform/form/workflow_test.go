package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"scopdash/internal/platform/clock"
	apperrors "scopdash/internal/platform/errors"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (c *fakeClock) Now() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

func (c *fakeClock) fire() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.fn()
		}
	}
}

func xConfig(save SaveFunc) Config {
	return Config{
		Title:   "Edit x",
		Fields:  []Field{{Key: "x", Label: "X", Kind: KindNumber, Required: true, Min: Bound(0)}},
		Initial: Values{"x": "5"},
		Save:    save,
	}
}

func TestCancelThenReopenRestoresInitialValues(t *testing.T) {
	t.Parallel()
	saves := 0
	cfg := xConfig(func(context.Context, Values) error { saves++; return nil })
	w := NewWorkflow(&fakeClock{}, time.Second)

	require.NoError(t, w.Open(cfg))
	require.NoError(t, w.Set("x", "99"))
	require.Equal(t, "99", w.View().Values["x"])
	w.Cancel()
	require.Equal(t, StateClosed, w.State())
	require.Empty(t, w.View().Values)

	require.NoError(t, w.Open(cfg))
	require.Equal(t, Values{"x": "5"}, w.View().Values)
	require.Equal(t, Values{"x": "5"}, cfg.Initial, "initial values must not be mutated")
	require.Equal(t, 0, saves)
}

func TestSubmitWithFieldErrorsStaysOpenWithoutSaving(t *testing.T) {
	t.Parallel()
	saves := 0
	w := NewWorkflow(&fakeClock{}, time.Second)
	require.NoError(t, w.Open(xConfig(func(context.Context, Values) error { saves++; return nil })))
	require.NoError(t, w.Set("x", "-3"))

	err := w.Submit(context.Background())
	verr, ok := IsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.Contains(t, verr.Fields["x"], "X must be greater than or equal to 0")
	require.Equal(t, StateOpen, w.State())
	require.Equal(t, 0, saves)

	require.NoError(t, w.Set("x", "3"))
	require.Empty(t, w.View().Errors, "editing a field clears its error")
}

func TestSaveFailureKeepsFormOpenWithGeneralError(t *testing.T) {
	t.Parallel()
	w := NewWorkflow(&fakeClock{}, time.Second)
	rule := errors.New("secured financing cannot exceed total financing")
	require.NoError(t, w.Open(xConfig(func(context.Context, Values) error { return rule })))

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, rule)
	view := w.View()
	require.Equal(t, StateOpen, view.State)
	require.Equal(t, rule.Error(), view.General)
	require.Equal(t, "5", view.Values["x"])
}

func TestSuccessAutoClosesAfterDelay(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	var got Values
	w := NewWorkflow(clk, 1500*time.Millisecond)
	require.NoError(t, w.Open(xConfig(func(_ context.Context, v Values) error { got = v; return nil })))
	require.NoError(t, w.Set("x", "7"))

	require.NoError(t, w.Submit(context.Background()))
	require.Equal(t, Values{"x": "7"}, got)
	require.Equal(t, StateSuccess, w.State())
	require.Equal(t, []time.Duration{1500 * time.Millisecond}, clk.delays)

	clk.fire()
	require.Equal(t, StateClosed, w.State())
}

func TestReopenDuringSuccessStopsStaleTimer(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{}
	w := NewWorkflow(clk, time.Second)
	cfg := xConfig(func(context.Context, Values) error { return nil })
	require.NoError(t, w.Open(cfg))
	require.NoError(t, w.Submit(context.Background()))
	require.NoError(t, w.Open(cfg))
	clk.fire()
	require.Equal(t, StateOpen, w.State(), "stale success timer must not close the new form")
}

func TestSetAndSubmitRequireOpenForm(t *testing.T) {
	t.Parallel()
	w := NewWorkflow(&fakeClock{}, time.Second)
	require.ErrorIs(t, w.Set("x", "1"), apperrors.ErrWorkflowClosed)
	require.ErrorIs(t, w.Submit(context.Background()), apperrors.ErrWorkflowClosed)

	require.NoError(t, w.Open(xConfig(func(context.Context, Values) error { return nil })))
	require.ErrorIs(t, w.Set("y", "1"), apperrors.ErrInvalidInput)
}

func TestOpenRequiresSaveAndTitle(t *testing.T) {
	t.Parallel()
	w := NewWorkflow(&fakeClock{}, time.Second)
	require.ErrorIs(t, w.Open(Config{Title: "t"}), apperrors.ErrInvalidInput)
	require.ErrorIs(t, w.Open(Config{Save: func(context.Context, Values) error { return nil }}), apperrors.ErrInvalidInput)
}

func TestCancelDuringSaveCancelsContextAndDiscardsResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	w := NewWorkflow(&fakeClock{}, time.Second)
	require.NoError(t, w.Open(xConfig(func(ctx context.Context, _ Values) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))

	done := make(chan error, 1)
	go func() { done <- w.Submit(context.Background()) }()
	<-started
	require.Equal(t, StateSaving, w.State())
	require.ErrorIs(t, w.Open(xConfig(func(context.Context, Values) error { return nil })), apperrors.ErrWorkflowBusy)

	w.Cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, apperrors.ErrSaveCancelled)
	case <-time.After(2 * time.Second):
		t.Fatalf("submit did not return after cancel")
	}
	require.Equal(t, StateClosed, w.State())
	require.Empty(t, w.View().General)
}
