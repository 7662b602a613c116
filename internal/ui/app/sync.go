package app

import (
	tea "github.com/charmbracelet/bubbletea"

	projectdomain "scopdash/internal/modules/project/domain"
	"scopdash/internal/platform/eventbus"
	"scopdash/internal/platform/id"
)

// SyncMsg tells the root model that a channel a view listens on was
// delivered. It arrives from a bus timer goroutine through program.Send.
type SyncMsg struct {
	View    string
	Channel string
}

const (
	viewDashboard = "dashboard"
	viewDocuments = "documents"
	viewPrint     = "print"
)

var viewChannels = map[string][]projectdomain.Channel{
	viewDashboard: {
		projectdomain.ChannelEngagement,
		projectdomain.ChannelFinancing,
		projectdomain.ChannelSteps,
		projectdomain.ChannelProject,
		projectdomain.ChannelAnalysis,
		projectdomain.ChannelNextSteps,
	},
	viewDocuments: {
		projectdomain.ChannelDocuments,
		projectdomain.ChannelSteps,
	},
	viewPrint: projectdomain.AllChannels,
}

// BridgeBus subscribes every view to its channels and forwards deliveries to
// send. The returned func drops all subscriptions.
func BridgeBus(bus *eventbus.Bus, ids id.Generator, send func(tea.Msg)) func() {
	var unsubs []func()
	for view, channels := range viewChannels {
		subscriber := view + ":" + ids.New()
		for _, ch := range channels {
			unsubs = append(unsubs, bus.Subscribe(eventbus.Channel(ch), subscriber, func(ev eventbus.Event) error {
				send(SyncMsg{View: view, Channel: string(ev.Channel)})
				return nil
			}))
		}
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
