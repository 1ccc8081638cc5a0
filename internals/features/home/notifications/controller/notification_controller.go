// file: internals/features/home/notifications/controller/notification_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	notificationService "schoolku_backend/internals/features/home/notifications/service"
	helper "schoolku_backend/internals/helpers"
)

type NotificationController struct {
	DB            *gorm.DB
	Notifications *notificationService.NotificationService
	Trigger       *notificationService.NotificationTrigger
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{
		DB:            db,
		Notifications: notificationService.NewNotificationService(db),
		Trigger:       notificationService.NewNotificationTrigger(db),
	}
}

/* =========================
   Wali
========================= */

// GetMyNotifications: notifikasi wali yang login
// (?unread=true, ?page=&per_page= atau alias ?limit=).
func (ctrl *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	guardianID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	unreadOnly := c.Query("unread") == "true"
	p := helper.ResolvePaging(c, 20, 200)

	notifications, total, err := ctrl.Notifications.ListForGuardian(guardianID, unreadOnly, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	return helper.JsonList(c, "OK", notifications, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

func (ctrl *NotificationController) GetUnreadCount(c *fiber.Ctx) error {
	guardianID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	count, err := ctrl.Notifications.UnreadCount(guardianID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}
	return helper.JsonOK(c, "OK", fiber.Map{"unread_count": count})
}

func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	guardianID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id notifikasi tidak valid")
	}

	ok, err := ctrl.Notifications.MarkRead(guardianID, notificationID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai dibaca", nil)
}

func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	guardianID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	updated, err := ctrl.Notifications.MarkAllRead(guardianID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai dibaca", fiber.Map{"updated": updated})
}

/* =========================
   Admin
========================= */

// TriggerLowGradeCheck: jalankan trigger manual terhadap satu evaluasi,
// opsional dengan ambang custom (?threshold=60).
func (ctrl *NotificationController) TriggerLowGradeCheck(c *fiber.Ctx) error {
	evaluationID, err := uuid.Parse(c.Params("evaluation_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "evaluation_id tidak valid")
	}

	var ev evaluationModel.EvaluationModel
	if err := ctrl.DB.First(&ev, "evaluation_id = ?", evaluationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Evaluasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil evaluasi")
	}

	trigger := ctrl.Trigger
	if v := c.QueryFloat("threshold", -1); v >= 0 {
		custom := *trigger
		custom.Threshold = v
		trigger = &custom
	}

	created, err := trigger.OnGradeWritten(&ev)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menjalankan trigger")
	}
	return helper.JsonOK(c, "Trigger selesai", fiber.Map{"created_notification_ids": created})
}

// PruneReadNotifications: hapus notifikasi dibaca yang lebih tua dari
// ?days= (default 90).
func (ctrl *NotificationController) PruneReadNotifications(c *fiber.Ctx) error {
	days := c.QueryInt("days", 90)
	if days < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "days minimal 1")
	}

	deleted, err := ctrl.Notifications.PruneRead(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus notifikasi")
	}
	return helper.JsonDeleted(c, "Notifikasi lama dihapus", fiber.Map{"deleted": deleted})
}
