// file: internals/features/attendance/sessions/service/checkin_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "schoolku_backend/internals/features/attendance/sessions/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================
   CheckInService
========================= */

// CheckInService memvalidasi dan mencatat check-in siswa terhadap
// geofence + jendela waktu sesi.
type CheckInService struct {
	DB *gorm.DB

	// Now dioverride di test; default time.Now
	Now func() time.Time
}

func NewCheckInService(db *gorm.DB) *CheckInService {
	return &CheckInService{DB: db, Now: time.Now}
}

type CheckInInput struct {
	SessionID  uuid.UUID
	StudentID  uuid.UUID
	StudentLat float64
	StudentLon float64
	Notes      *string
}

type CheckInResult struct {
	Late           bool    `json:"late"`
	DistanceMeters float64 `json:"distance_meters"`
	WithinRange    bool    `json:"within_range"`
}

// CheckIn menandai kehadiran. Urutan cek:
// sesi ada → sesi live → belum pernah absen → dalam radius → tulis.
// Telat diukur terhadap starts_at (bukan batas toleransi): check-in di
// dalam jendela toleransi bisa sekaligus "live" dan "late".
func (s *CheckInService) CheckIn(in CheckInInput) (*attendanceModel.StudentAttendanceModel, *CheckInResult, error) {
	var session attendanceModel.AttendanceSessionModel
	if err := s.DB.First(&session, "attendance_session_id = ?", in.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	now := s.Now()
	if !session.IsLive(now) {
		return nil, nil, ErrSessionNotActive
	}

	var record attendanceModel.StudentAttendanceModel
	if err := s.DB.
		Where("student_attendance_session_id = ? AND student_attendance_student_id = ?",
			in.SessionID, in.StudentID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRecordNotFound
		}
		return nil, nil, err
	}

	if record.StudentAttendancePresent {
		return nil, nil, ErrAlreadyMarked
	}

	distance, withinRange := helper.ValidateStudentLocation(
		session.AttendanceSessionTeacherLat,
		session.AttendanceSessionTeacherLon,
		in.StudentLat, in.StudentLon,
		session.AttendanceSessionAllowedRadiusMeters,
	)
	if !withinRange {
		return nil, nil, &OutOfRangeError{
			DistanceMeters:      distance,
			AllowedRadiusMeters: session.AttendanceSessionAllowedRadiusMeters,
		}
	}

	late := now.After(session.AttendanceSessionStartsAt)

	// Klaim di storage: UPDATE ... WHERE present = false.
	// Dua check-in barengan → cuma satu yang dapat RowsAffected = 1.
	res := s.DB.Model(&attendanceModel.StudentAttendanceModel{}).
		Where("student_attendance_id = ? AND student_attendance_present = ?",
			record.StudentAttendanceID, false).
		Updates(map[string]interface{}{
			"student_attendance_present":         true,
			"student_attendance_late":            late,
			"student_attendance_checked_in_at":   now,
			"student_attendance_student_lat":     in.StudentLat,
			"student_attendance_student_lon":     in.StudentLon,
			"student_attendance_distance_meters": distance,
			"student_attendance_notes":           in.Notes,
		})
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil, ErrAlreadyMarked
	}

	if err := s.DB.First(&record, "student_attendance_id = ?", record.StudentAttendanceID).Error; err != nil {
		return nil, nil, err
	}

	return &record, &CheckInResult{
		Late:           late,
		DistanceMeters: distance,
		WithinRange:    true,
	}, nil
}

/* =========================
   Pre-flight (tanpa efek samping)
========================= */

type CheckInVerdict struct {
	CanCheckIn       bool     `json:"can_check_in"`
	Message          string   `json:"message"`
	SessionActive    bool     `json:"session_active"`
	DistanceMeters   *float64 `json:"distance_meters,omitempty"`
	WithinRange      *bool    `json:"within_range,omitempty"`
	RemainingMinutes *int     `json:"remaining_minutes,omitempty"`
}

// ValidateCanCheckIn: cek yang sama persis dengan CheckIn tapi read-only,
// untuk konfirmasi UI sebelum siswa menekan tombol absen.
func (s *CheckInService) ValidateCanCheckIn(sessionID, studentID uuid.UUID, studentLat, studentLon float64) (*CheckInVerdict, error) {
	var session attendanceModel.AttendanceSessionModel
	if err := s.DB.First(&session, "attendance_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckInVerdict{Message: "Sesi tidak ditemukan"}, nil
		}
		return nil, err
	}

	now := s.Now()
	if !session.IsLive(now) {
		return &CheckInVerdict{Message: "Sesi tidak aktif atau sudah kedaluwarsa"}, nil
	}

	var record attendanceModel.StudentAttendanceModel
	if err := s.DB.
		Where("student_attendance_session_id = ? AND student_attendance_student_id = ?",
			sessionID, studentID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckInVerdict{Message: "Siswa tidak terdaftar pada sesi ini", SessionActive: true}, nil
		}
		return nil, err
	}

	if record.StudentAttendancePresent {
		return &CheckInVerdict{Message: "Kamu sudah check-in", SessionActive: true}, nil
	}

	distance, withinRange := helper.ValidateStudentLocation(
		session.AttendanceSessionTeacherLat,
		session.AttendanceSessionTeacherLon,
		studentLat, studentLon,
		session.AttendanceSessionAllowedRadiusMeters,
	)
	if !withinRange {
		return &CheckInVerdict{
			Message:        (&OutOfRangeError{DistanceMeters: distance, AllowedRadiusMeters: session.AttendanceSessionAllowedRadiusMeters}).Error(),
			SessionActive:  true,
			DistanceMeters: &distance,
			WithinRange:    &withinRange,
		}, nil
	}

	deadline := session.AttendanceSessionStartsAt.Add(time.Duration(session.AttendanceSessionToleranceMinutes) * time.Minute)
	remaining := int(deadline.Sub(now).Minutes())
	if remaining < 0 {
		remaining = 0
	}

	return &CheckInVerdict{
		CanCheckIn:       true,
		Message:          "Kamu bisa check-in",
		SessionActive:    true,
		DistanceMeters:   &distance,
		WithinRange:      &withinRange,
		RemainingMinutes: &remaining,
	}, nil
}

/* =========================
   Justifikasi absen
========================= */

type JustifyInput struct {
	SessionID uuid.UUID
	StudentID uuid.UUID
	Reason    string
	Notes     *string
}

// JustifyAbsence menandai absen sebagai justified. Boleh dilakukan
// setelah sesi ditutup, selama record-nya masih ada.
func (s *CheckInService) JustifyAbsence(in JustifyInput) (*attendanceModel.StudentAttendanceModel, error) {
	var record attendanceModel.StudentAttendanceModel
	if err := s.DB.
		Where("student_attendance_session_id = ? AND student_attendance_student_id = ?",
			in.SessionID, in.StudentID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"student_attendance_justified":            true,
		"student_attendance_justification_reason": in.Reason,
	}
	if in.Notes != nil {
		updates["student_attendance_notes"] = in.Notes
	}
	if err := s.DB.Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&record, "student_attendance_id = ?", record.StudentAttendanceID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSessionRecords: semua record sebuah sesi (buat panel guru).
func (s *CheckInService) ListSessionRecords(sessionID uuid.UUID) ([]attendanceModel.StudentAttendanceModel, error) {
	var records []attendanceModel.StudentAttendanceModel
	err := s.DB.
		Where("student_attendance_session_id = ?", sessionID).
		Order("student_attendance_created_at ASC").
		Find(&records).Error
	return records, err
}
