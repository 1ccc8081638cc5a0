// file: internals/features/home/notifications/route/notification_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationCtrl "schoolku_backend/internals/features/home/notifications/controller"
)

// NotificationGuardianRoutes: kotak masuk wali.
func NotificationGuardianRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := notificationCtrl.NewNotificationController(db)

	notif := r.Group("/notifications")
	notif.Get("/", ctrl.GetMyNotifications)
	notif.Get("/unread-count", ctrl.GetUnreadCount)
	notif.Patch("/:id/read", ctrl.MarkRead)
	notif.Patch("/read-all", ctrl.MarkAllRead)
}

// NotificationAdminRoutes: trigger manual + housekeeping.
func NotificationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := notificationCtrl.NewNotificationController(db)

	notif := r.Group("/notifications")
	notif.Post("/trigger/:evaluation_id", ctrl.TriggerLowGradeCheck)
	notif.Delete("/prune", ctrl.PruneReadNotifications)
}
