// file: internals/features/home/notifications/service/notification_service.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationModel "schoolku_backend/internals/features/home/notifications/model"
)

/* =========================
   NotificationService (query surface wali)
========================= */

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// ListForGuardian: notifikasi seorang wali, terbaru dulu, dengan
// offset/limit + total untuk pagination.
func (s *NotificationService) ListForGuardian(guardianID uuid.UUID, unreadOnly bool, offset, limit int) ([]notificationModel.NotificationModel, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	q := s.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_guardian_id = ?", guardianID)
	if unreadOnly {
		q = q.Where("notification_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []notificationModel.NotificationModel
	err := q.Order("notification_created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, total, err
}

func (s *NotificationService) UnreadCount(guardianID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_guardian_id = ? AND notification_read = ?", guardianID, false).
		Count(&count).Error
	return count, err
}

// MarkRead menandai satu notifikasi milik wali tsb sebagai dibaca.
// RowsAffected 0 berarti bukan miliknya atau tidak ada.
func (s *NotificationService) MarkRead(guardianID, notificationID uuid.UUID) (bool, error) {
	res := s.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_id = ? AND notification_guardian_id = ?", notificationID, guardianID).
		Update("notification_read", true)
	return res.RowsAffected > 0, res.Error
}

func (s *NotificationService) MarkAllRead(guardianID uuid.UUID) (int64, error) {
	res := s.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_guardian_id = ? AND notification_read = ?", guardianID, false).
		Update("notification_read", true)
	return res.RowsAffected, res.Error
}

// PruneRead menghapus notifikasi lama yang sudah dibaca (housekeeping,
// dipanggil admin atau cron).
func (s *NotificationService) PruneRead(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.DB.
		Where("notification_read = ? AND notification_created_at < ?", true, cutoff).
		Delete(&notificationModel.NotificationModel{})
	return res.RowsAffected, res.Error
}
