package out

import (
	"scopdash/internal/modules/project/domain"
	projectout "scopdash/internal/modules/project/port/out"
	"scopdash/internal/platform/eventbus"
)

type BusNotifier struct {
	bus *eventbus.Bus
}

func NewBusNotifier(bus *eventbus.Bus) projectout.Notifier {
	return BusNotifier{bus: bus}
}

func (n BusNotifier) Notify(channel domain.Channel) {
	n.bus.Notify(eventbus.Channel(channel))
}
