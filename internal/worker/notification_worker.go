package worker

import (
	"github.com/vcsystems/incident-service/internal/events"
	"github.com/vcsystems/incident-service/internal/notify"
)

// StartNotificationWorker subscribes the composer to lifecycle events.
func StartNotificationWorker(dispatcher events.Dispatcher, composer *notify.Composer) {
	if dispatcher == nil || composer == nil {
		return
	}
	composer.RegisterHandlers(dispatcher)
}
