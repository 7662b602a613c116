// Package eventbus is an in-process publish/subscribe notifier. Producers
// notify named channels; subscribers are invoked once per delivery cycle no
// matter how many notifications were collapsed into it.
package eventbus

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Channel names a notification topic.
type Channel string

// Event is passed to handlers on delivery. Collapsed counts how many Notify
// calls were folded into this delivery.
type Event struct {
	Channel   Channel
	Collapsed int
}

// Handler reacts to a delivery. A returned error or a panic is logged and
// does not stop delivery to the other subscribers.
type Handler func(Event) error

// subscription keeps its slot for the lifetime of an id on a channel. A
// re-subscribe swaps handler and bumps gen so stale unsubscribes are ignored.
type subscription struct {
	id      string
	handler Handler
	gen     uint64
	removed bool
}

// Bus is safe for concurrent use. Construct one per application and pass it
// to producers and consumers.
type Bus struct {
	mu        sync.Mutex
	subs      map[Channel][]*subscription
	pending   map[Channel]int
	scheduler Scheduler
	logger    *zap.Logger
	inflight  sync.WaitGroup
}

func New(scheduler Scheduler, logger *zap.Logger) *Bus {
	if scheduler == nil {
		scheduler = NewManualScheduler()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:      map[Channel][]*subscription{},
		pending:   map[Channel]int{},
		scheduler: scheduler,
		logger:    logger,
	}
}

// Subscribe registers handler under channel. Re-subscribing with the same id
// replaces the handler in place, keeping the delivery position, so a delivery
// already running calls the new handler. The returned func removes this
// registration only and may be called more than once.
func (b *Bus) Subscribe(channel Channel, id string, handler Handler) func() {
	b.mu.Lock()
	var sub *subscription
	for _, existing := range b.subs[channel] {
		if existing.id == id {
			sub = existing
			break
		}
	}
	if sub == nil {
		sub = &subscription{id: id}
		b.subs[channel] = append(b.subs[channel], sub)
	}
	sub.gen++
	sub.handler = handler
	gen := sub.gen
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(channel, sub, gen) })
	}
}

func (b *Bus) remove(channel Channel, sub *subscription, gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.gen != gen || sub.removed {
		return
	}
	sub.removed = true
	list := b.subs[channel]
	for i, existing := range list {
		if existing == sub {
			b.subs[channel] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[channel]) == 0 {
		delete(b.subs, channel)
	}
}

// Notify schedules a delivery for channel unless one is already pending.
func (b *Bus) Notify(channel Channel) {
	b.mu.Lock()
	if count, ok := b.pending[channel]; ok {
		b.pending[channel] = count + 1
		b.mu.Unlock()
		return
	}
	b.pending[channel] = 1
	b.inflight.Add(1)
	b.mu.Unlock()

	b.scheduler.Schedule(func() {
		defer b.inflight.Done()
		b.deliver(channel)
	})
}

// Subscribers reports how many registrations channel currently has.
func (b *Bus) Subscribers(channel Channel) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[channel])
}

// Clear drops every subscription and every pending notification. Deliveries
// already scheduled find nothing to call.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.subs {
		for _, sub := range list {
			sub.removed = true
		}
	}
	b.subs = map[Channel][]*subscription{}
	b.pending = map[Channel]int{}
}

// Close clears the bus and waits for scheduled deliveries to finish. A
// ManualScheduler queue is drained here, which is a no-op after the Clear.
func (b *Bus) Close() {
	b.Clear()
	if manual, ok := b.scheduler.(*ManualScheduler); ok {
		manual.Drain()
	}
	b.inflight.Wait()
}

func (b *Bus) deliver(channel Channel) {
	b.mu.Lock()
	collapsed, ok := b.pending[channel]
	delete(b.pending, channel)
	snapshot := append([]*subscription(nil), b.subs[channel]...)
	b.mu.Unlock()
	if !ok {
		return
	}

	ev := Event{Channel: channel, Collapsed: collapsed}
	for _, sub := range snapshot {
		handler, ok := b.current(sub)
		if !ok {
			continue
		}
		if err := invoke(handler, ev); err != nil {
			b.logger.Error("sync subscriber failed",
				zap.String("channel", string(channel)),
				zap.String("subscriber", sub.id),
				zap.Error(err),
			)
		}
	}
}

// current returns the handler sub holds right now, or false once removed.
func (b *Bus) current(sub *subscription) (Handler, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sub.handler, !sub.removed
}

func invoke(handler Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ev)
}
