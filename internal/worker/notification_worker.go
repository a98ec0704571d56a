package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/events"
	"github.com/spec-kit/smartcity/internal/service"
)

// StartNotificationWorker hooks the notification handlers onto the
// dispatcher. Dispatch is synchronous and in-process, so there is no goroutine
// to manage here; this is the single place the subscriptions are made.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	notifications := service.NewNotificationService(logger)
	notifications.Subscribe(dispatcher)
	logger.Info("notification worker subscribed")
}
