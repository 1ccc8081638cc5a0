// file: internals/features/home/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================
   Model: notifications
   Notifikasi in-app untuk wali. Dedup nilai-rendah dijaga index
   uq_notification_dedup: satu wali hanya sekali diberi tahu per
   (evaluasi, tipe), berapa kali pun trigger dipanggil.
========================================= */

type NotificationModel struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey;column:notification_id" json:"notification_id"`

	NotificationGuardianID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_notification_dedup;column:notification_guardian_id" json:"notification_guardian_id"`
	NotificationStudentID    uuid.UUID  `gorm:"type:uuid;not null;index;column:notification_student_id" json:"notification_student_id"`
	NotificationEvaluationID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_notification_dedup;column:notification_evaluation_id" json:"notification_evaluation_id,omitempty"`

	NotificationType    string         `gorm:"type:varchar(32);not null;uniqueIndex:uq_notification_dedup;column:notification_type" json:"notification_type"`
	NotificationTitle   string         `gorm:"type:varchar(160);not null;column:notification_title" json:"notification_title"`
	NotificationMessage string         `gorm:"type:text;not null;column:notification_message" json:"notification_message"`
	NotificationPayload datatypes.JSON `gorm:"column:notification_payload" json:"notification_payload,omitempty"`

	NotificationRead bool `gorm:"not null;default:false;column:notification_read" json:"notification_read"`

	NotificationCreatedAt time.Time `gorm:"not null;autoCreateTime;column:notification_created_at" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:notification_updated_at" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
