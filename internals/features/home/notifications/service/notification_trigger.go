// file: internals/features/home/notifications/service/notification_trigger.go
package service

import (
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	academicsModel "schoolku_backend/internals/features/academics/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	notificationModel "schoolku_backend/internals/features/home/notifications/model"
)

// Ambang default: nilai di bawah ini memicu notifikasi ke wali.
const DefaultLowGradeThreshold = 50.0

/* =========================
   NotificationTrigger
========================= */

// NotificationTrigger memeriksa nilai yang baru ditulis dan mengirim
// notifikasi "calificacion_baja" ke setiap wali siswa. Idempotent:
// dedup dijaga index unik, panggilan kedua tidak membuat duplikat.
type NotificationTrigger struct {
	DB        *gorm.DB
	Threshold float64
}

func NewNotificationTrigger(db *gorm.DB) *NotificationTrigger {
	return &NotificationTrigger{DB: db, Threshold: DefaultLowGradeThreshold}
}

// OnGradeWritten dipanggil setiap kali sebuah evaluasi ditulis/diubah.
// Nilai ≥ ambang → tidak ada efek. Di bawah ambang → satu notifikasi
// per wali, gagal satu wali tidak membatalkan sisanya.
// Mengembalikan id notifikasi yang BENAR-BENAR dibuat (dedup = 0 baris).
func (t *NotificationTrigger) OnGradeWritten(ev *evaluationModel.EvaluationModel) ([]uuid.UUID, error) {
	if ev.EvaluationValue >= t.Threshold {
		return nil, nil
	}

	var student academicsModel.StudentModel
	if err := t.DB.First(&student, "student_id = ?", ev.EvaluationStudentID).Error; err != nil {
		return nil, err
	}

	var guardianIDs []uuid.UUID
	if err := t.DB.Model(&academicsModel.GuardianStudentModel{}).
		Where("guardian_student_student_id = ?", ev.EvaluationStudentID).
		Pluck("guardian_student_guardian_id", &guardianIDs).Error; err != nil {
		return nil, err
	}
	if len(guardianIDs) == 0 {
		return nil, nil
	}

	payload, err := sonic.Marshal(map[string]interface{}{
		"evaluation_id": ev.EvaluationID,
		"value":         ev.EvaluationValue,
		"subject_id":    ev.EvaluationSubjectID,
		"period_id":     ev.EvaluationPeriodID,
		"threshold":     t.Threshold,
	})
	if err != nil {
		return nil, err
	}

	title := "Nilai rendah"
	message := fmt.Sprintf("%s %s mendapat nilai %.2f (di bawah %.0f). Mohon perhatiannya.",
		student.StudentName, student.StudentLastName, ev.EvaluationValue, t.Threshold)

	created := make([]uuid.UUID, 0, len(guardianIDs))
	for _, guardianID := range guardianIDs {
		evalID := ev.EvaluationID
		notif := notificationModel.NotificationModel{
			NotificationGuardianID:   guardianID,
			NotificationStudentID:    ev.EvaluationStudentID,
			NotificationEvaluationID: &evalID,
			NotificationType:         constants.NotificationTypeLowGrade,
			NotificationTitle:        title,
			NotificationMessage:      message,
			NotificationPayload:      datatypes.JSON(payload),
		}

		res := t.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "notification_guardian_id"},
				{Name: "notification_evaluation_id"},
				{Name: "notification_type"},
			},
			DoNothing: true,
		}).Create(&notif)
		if res.Error != nil {
			// satu wali gagal ≠ semua gagal
			log.Printf("[ERROR] notifikasi wali %s gagal: %v", guardianID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			created = append(created, notif.NotificationID)
		}
	}
	return created, nil
}
