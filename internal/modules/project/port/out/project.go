package out

import "scopdash/internal/modules/project/domain"

// Notifier announces that the records behind a channel changed.
type Notifier interface {
	Notify(channel domain.Channel)
}
