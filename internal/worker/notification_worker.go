package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to the
// registration and appointment events.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker subscribed to events")
}
