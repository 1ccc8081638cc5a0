// file: internals/features/attendance/sessions/model/attendance_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed"
)

/* =========================================
   Model: attendance_sessions
   Sesi absensi geofenced per (guru, kelas, mapel).
   Invariant: maksimal satu sesi 'active' per kombinasi —
   dijaga partial unique index uq_attendance_sessions_active_one.
========================================= */

type AttendanceSessionModel struct {
	// PK
	AttendanceSessionID uuid.UUID `gorm:"type:uuid;primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	// Relasi utama
	AttendanceSessionTeacherID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_session_teacher_id" json:"attendance_session_teacher_id"`
	AttendanceSessionCourseID  uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_session_course_id" json:"attendance_session_course_id"`
	AttendanceSessionSubjectID uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_subject_id" json:"attendance_session_subject_id"`
	AttendanceSessionPeriodID  uuid.UUID `gorm:"type:uuid;not null;column:attendance_session_period_id" json:"attendance_session_period_id"`

	// Info
	AttendanceSessionTitle string `gorm:"type:text;not null;default:'';column:attendance_session_title" json:"attendance_session_title"`

	// Jendela waktu
	AttendanceSessionStartsAt         time.Time  `gorm:"not null;column:attendance_session_starts_at" json:"attendance_session_starts_at"`
	AttendanceSessionEndsAt           *time.Time `gorm:"column:attendance_session_ends_at" json:"attendance_session_ends_at,omitempty"`
	AttendanceSessionToleranceMinutes int        `gorm:"not null;default:10;column:attendance_session_tolerance_minutes" json:"attendance_session_tolerance_minutes"`

	// Geofence (posisi guru saat membuka sesi)
	AttendanceSessionTeacherLat          float64 `gorm:"not null;column:attendance_session_teacher_lat" json:"attendance_session_teacher_lat"`
	AttendanceSessionTeacherLon          float64 `gorm:"not null;column:attendance_session_teacher_lon" json:"attendance_session_teacher_lon"`
	AttendanceSessionAllowedRadiusMeters int     `gorm:"not null;default:100;column:attendance_session_allowed_radius_meters" json:"attendance_session_allowed_radius_meters"`

	// Lifecycle: active → closed (terminal). "Expired" bukan status tersimpan,
	// dievaluasi lazy lewat IsLive.
	AttendanceSessionStatus SessionStatus `gorm:"type:varchar(16);not null;default:'active';column:attendance_session_status" json:"attendance_session_status"`

	// Audit
	AttendanceSessionCreatedAt time.Time `gorm:"not null;autoCreateTime;column:attendance_session_created_at" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:attendance_session_updated_at" json:"attendance_session_updated_at"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

func (m *AttendanceSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceSessionID == uuid.Nil {
		m.AttendanceSessionID = uuid.New()
	}
	return nil
}

// IsLive: sesi masih menerima check-in ⇔ status active DAN
// now belum melewati starts_at + toleransi.
func (m *AttendanceSessionModel) IsLive(now time.Time) bool {
	if m.AttendanceSessionStatus != SessionStatusActive {
		return false
	}
	deadline := m.AttendanceSessionStartsAt.Add(time.Duration(m.AttendanceSessionToleranceMinutes) * time.Minute)
	return !now.After(deadline)
}
