package eventbus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManualBus(t *testing.T) (*Bus, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	bus := New(sched, zap.NewNop())
	t.Cleanup(bus.Close)
	return bus, sched
}

func TestNotifyCollapsesWithinOneWindow(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	var calls int
	var last Event
	bus.Subscribe("financing-sync", "chart", func(ev Event) error {
		calls++
		last = ev
		return nil
	})

	for i := 0; i < 5; i++ {
		bus.Notify("financing-sync")
	}
	require.Equal(t, 1, sched.Pending())
	require.Equal(t, 1, sched.Drain())
	require.Equal(t, 1, calls)
	require.Equal(t, 5, last.Collapsed)

	bus.Notify("financing-sync")
	sched.Drain()
	require.Equal(t, 2, calls, "a notify after delivery starts a new window")
}

func TestChannelsDebounceIndependently(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	got := map[Channel]int{}
	for _, ch := range []Channel{"a", "b"} {
		bus.Subscribe(ch, "v", func(ev Event) error {
			got[ev.Channel]++
			return nil
		})
	}
	bus.Notify("a")
	bus.Notify("b")
	bus.Notify("a")
	require.Equal(t, 2, sched.Drain())
	require.Equal(t, map[Channel]int{"a": 1, "b": 1}, got)
}

func TestFailingSubscriberIsIsolatedAndLogged(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.ErrorLevel)
	sched := NewManualScheduler()
	bus := New(sched, zap.New(core))
	defer bus.Close()

	var order []string
	bus.Subscribe("steps-sync", "erroring", func(Event) error {
		order = append(order, "erroring")
		return errors.New("render failed")
	})
	bus.Subscribe("steps-sync", "panicking", func(Event) error {
		order = append(order, "panicking")
		panic("boom")
	})
	bus.Subscribe("steps-sync", "healthy", func(Event) error {
		order = append(order, "healthy")
		return nil
	})

	bus.Notify("steps-sync")
	sched.Drain()

	require.Equal(t, []string{"erroring", "panicking", "healthy"}, order)
	entries := logs.FilterMessage("sync subscriber failed").All()
	require.Len(t, entries, 2)
	require.Equal(t, "erroring", entries[0].ContextMap()["subscriber"])
	require.Equal(t, "panicking", entries[1].ContextMap()["subscriber"])
}

func TestResubscribeWithSameIDReplaces(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	var first, second int
	unsubFirst := bus.Subscribe("engagement", "chart", func(Event) error { first++; return nil })
	bus.Subscribe("engagement", "chart", func(Event) error { second++; return nil })
	require.Equal(t, 1, bus.Subscribers("engagement"))

	bus.Notify("engagement")
	sched.Drain()
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)

	unsubFirst()
	require.Equal(t, 1, bus.Subscribers("engagement"), "stale unsubscribe must not drop the replacement")
}

func TestResubscribeDuringDeliveryKeepsSlot(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	var calls []string
	bus.Subscribe("documents", "a", func(Event) error {
		calls = append(calls, "a")
		bus.Subscribe("documents", "b", func(Event) error {
			calls = append(calls, "b-new")
			return nil
		})
		return nil
	})
	bus.Subscribe("documents", "b", func(Event) error {
		calls = append(calls, "b-old")
		return nil
	})

	bus.Notify("documents")
	sched.Drain()
	require.Equal(t, []string{"a", "b-new"}, calls)
	require.Equal(t, 2, bus.Subscribers("documents"))
}

func TestUnsubscribeAfterReplaceRemovesCurrentHandler(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	var calls int
	bus.Subscribe("project", "header", func(Event) error { calls++; return nil })
	unsub := bus.Subscribe("project", "header", func(Event) error { calls++; return nil })
	unsub()
	unsub()
	require.Equal(t, 0, bus.Subscribers("project"))

	bus.Notify("project")
	sched.Drain()
	require.Equal(t, 0, calls)
}

func TestUnsubscribeDuringDelivery(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)

	var calls []string
	var unsubSelf, unsubLater func()
	unsubSelf = bus.Subscribe("documents", "self", func(Event) error {
		calls = append(calls, "self")
		unsubSelf()
		return nil
	})
	bus.Subscribe("documents", "next", func(Event) error {
		calls = append(calls, "next")
		unsubLater()
		return nil
	})
	unsubLater = bus.Subscribe("documents", "later", func(Event) error {
		calls = append(calls, "later")
		return nil
	})
	bus.Subscribe("documents", "last", func(Event) error {
		calls = append(calls, "last")
		return nil
	})

	bus.Notify("documents")
	sched.Drain()
	require.Equal(t, []string{"self", "next", "last"}, calls)

	calls = nil
	bus.Notify("documents")
	sched.Drain()
	require.Equal(t, []string{"next", "last"}, calls)
}

func TestNotifyWithoutSubscribersIsNoop(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)
	bus.Notify("nobody")
	require.Equal(t, 1, sched.Drain())
	require.Equal(t, 0, bus.Subscribers("nobody"))
}

func TestClearDropsSubscriptionsAndPending(t *testing.T) {
	t.Parallel()
	bus, sched := newManualBus(t)
	var calls int
	bus.Subscribe("project", "header", func(Event) error { calls++; return nil })
	bus.Notify("project")
	bus.Clear()
	sched.Drain()
	require.Equal(t, 0, calls)
	require.Equal(t, 0, bus.Subscribers("project"))
}

func TestTimerSchedulerDeliversOnce(t *testing.T) {
	t.Parallel()
	sched := NewTimerScheduler(20 * time.Millisecond)
	bus := New(sched, zap.NewNop())

	var calls atomic.Int32
	done := make(chan struct{}, 4)
	bus.Subscribe("engagement", "chart", func(Event) error {
		calls.Add(1)
		done <- struct{}{}
		return nil
	})
	for i := 0; i < 10; i++ {
		bus.Notify("engagement")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("delivery did not happen")
	}
	bus.Close()
	sched.Wait()
	require.Equal(t, int32(1), calls.Load())
}
