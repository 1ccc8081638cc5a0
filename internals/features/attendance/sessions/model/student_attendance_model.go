// file: internals/features/attendance/sessions/model/student_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: student_attendances
   Satu baris per siswa per sesi, dibuat bareng sesinya.
   present false→true tepat satu kali (tidak bisa un-mark);
   justified boleh diubah kapan pun selama baris masih ada.
========================================= */

type StudentAttendanceModel struct {
	// PK
	StudentAttendanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:student_attendance_id" json:"student_attendance_id"`

	// Relasi
	StudentAttendanceSessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_student;column:student_attendance_session_id" json:"student_attendance_session_id"`
	StudentAttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_student;index;column:student_attendance_student_id" json:"student_attendance_student_id"`

	// Status kehadiran
	StudentAttendancePresent   bool `gorm:"not null;default:false;column:student_attendance_present" json:"student_attendance_present"`
	StudentAttendanceLate      bool `gorm:"not null;default:false;column:student_attendance_late" json:"student_attendance_late"`
	StudentAttendanceJustified bool `gorm:"not null;default:false;column:student_attendance_justified" json:"student_attendance_justified"`

	StudentAttendanceJustificationReason *string `gorm:"type:text;column:student_attendance_justification_reason" json:"student_attendance_justification_reason,omitempty"`
	StudentAttendanceNotes               *string `gorm:"type:text;column:student_attendance_notes" json:"student_attendance_notes,omitempty"`

	// Bukti check-in
	StudentAttendanceCheckedInAt    *time.Time `gorm:"column:student_attendance_checked_in_at" json:"student_attendance_checked_in_at,omitempty"`
	StudentAttendanceStudentLat     *float64   `gorm:"column:student_attendance_student_lat" json:"student_attendance_student_lat,omitempty"`
	StudentAttendanceStudentLon     *float64   `gorm:"column:student_attendance_student_lon" json:"student_attendance_student_lon,omitempty"`
	StudentAttendanceDistanceMeters *float64   `gorm:"column:student_attendance_distance_meters" json:"student_attendance_distance_meters,omitempty"`

	// Audit
	StudentAttendanceCreatedAt time.Time `gorm:"not null;autoCreateTime;column:student_attendance_created_at" json:"student_attendance_created_at"`
	StudentAttendanceUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:student_attendance_updated_at" json:"student_attendance_updated_at"`
}

func (StudentAttendanceModel) TableName() string { return "student_attendances" }

func (m *StudentAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentAttendanceID == uuid.Nil {
		m.StudentAttendanceID = uuid.New()
	}
	return nil
}

// AttendanceValue: pemetaan deterministik status → nilai ledger 0–100.
//
//	hadir tepat waktu → 100
//	hadir telat       → 50
//	absen justified   → 75
//	absen             → 0
func (m *StudentAttendanceModel) AttendanceValue() float64 {
	switch {
	case m.StudentAttendancePresent && m.StudentAttendanceLate:
		return 50
	case m.StudentAttendancePresent:
		return 100
	case m.StudentAttendanceJustified:
		return 75
	default:
		return 0
	}
}
