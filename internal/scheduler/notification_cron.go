package cron

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/services"
)

// StartNotificationCronJobs schedules the periodic cleanup of expired
// notifications.
func StartNotificationCronJobs(notificationService *services.NotificationService) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		if err := notificationService.DeleteExpired(context.Background()); err != nil {
			logrus.WithError(err).Error("DeleteExpired notifications failed")
		}
	})

	c.Start()
}
