// file: internals/features/attendance/sessions/service/session_manager.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	academicsModel "schoolku_backend/internals/features/academics/model"
	academicsService "schoolku_backend/internals/features/academics/service"
	attendanceModel "schoolku_backend/internals/features/attendance/sessions/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================
   SessionManager
========================= */

// SessionManager mengelola lifecycle sesi: create (dengan fan-out record
// per siswa terdaftar) dan close (dengan rekonsiliasi ke ledger nilai).
// Dua-duanya satu transaksi penuh: tidak boleh ada sesi yatim atau
// ledger setengah jadi.
type SessionManager struct {
	DB         *gorm.DB
	Categories *academicsService.CategoryResolver

	// Now dioverride di test; default time.Now
	Now func() time.Time
}

func NewSessionManager(db *gorm.DB) *SessionManager {
	return &SessionManager{
		DB:         db,
		Categories: academicsService.NewCategoryResolver(db),
		Now:        time.Now,
	}
}

type CreateSessionInput struct {
	TeacherID           uuid.UUID
	CourseID            uuid.UUID
	SubjectID           uuid.UUID
	PeriodID            uuid.UUID
	Title               string
	StartsAt            time.Time
	ToleranceMinutes    int
	TeacherLat          float64
	TeacherLon          float64
	AllowedRadiusMeters int
}

// CreateSession membuat sesi 'active' + satu StudentAttendance per siswa
// yang terdaftar di kelas, semuanya belum hadir.
//
// Invariant satu-sesi-aktif dijaga DB (partial unique index), bukan cuma
// pre-check aplikasi: dua request barengan → salah satu kena 23505.
func (s *SessionManager) CreateSession(in CreateSessionInput) (*attendanceModel.AttendanceSessionModel, error) {
	session := &attendanceModel.AttendanceSessionModel{
		AttendanceSessionTeacherID:           in.TeacherID,
		AttendanceSessionCourseID:            in.CourseID,
		AttendanceSessionSubjectID:           in.SubjectID,
		AttendanceSessionPeriodID:            in.PeriodID,
		AttendanceSessionTitle:               in.Title,
		AttendanceSessionStartsAt:            in.StartsAt,
		AttendanceSessionToleranceMinutes:    in.ToleranceMinutes,
		AttendanceSessionTeacherLat:          in.TeacherLat,
		AttendanceSessionTeacherLon:          in.TeacherLon,
		AttendanceSessionAllowedRadiusMeters: in.AllowedRadiusMeters,
		AttendanceSessionStatus:              attendanceModel.SessionStatusActive,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// pre-check biar pesan errornya enak; race tetap ditangkap index
		var count int64
		if err := tx.Model(&attendanceModel.AttendanceSessionModel{}).
			Where("attendance_session_teacher_id = ? AND attendance_session_course_id = ? AND attendance_session_subject_id = ? AND attendance_session_status = ?",
				in.TeacherID, in.CourseID, in.SubjectID, attendanceModel.SessionStatusActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateActiveSession
		}

		if err := tx.Create(session).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateActiveSession
			}
			return err
		}

		// Fan-out: satu record per siswa terdaftar di kelas
		var enrollments []academicsModel.EnrollmentModel
		if err := tx.
			Where("enrollment_course_id = ?", in.CourseID).
			Find(&enrollments).Error; err != nil {
			return err
		}

		if len(enrollments) == 0 {
			return nil // kelas kosong tetap sah, sesi tanpa record
		}

		records := make([]attendanceModel.StudentAttendanceModel, 0, len(enrollments))
		for _, e := range enrollments {
			records = append(records, attendanceModel.StudentAttendanceModel{
				StudentAttendanceSessionID: session.AttendanceSessionID,
				StudentAttendanceStudentID: e.EnrollmentStudentID,
			})
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CloseSession menutup sesi (terminal) lalu merekonsiliasi seluruh record
// ke ledger nilai kategori "Asistencia". Gagal rekonsiliasi ⇒ rollback
// total, sesi tetap 'active'.
func (s *SessionManager) CloseSession(sessionID uuid.UUID) (*attendanceModel.AttendanceSessionModel, error) {
	var session attendanceModel.AttendanceSessionModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, "attendance_session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		// CAS di storage: hanya satu caller yang berhasil menutup.
		now := s.Now()
		res := tx.Model(&attendanceModel.AttendanceSessionModel{}).
			Where("attendance_session_id = ? AND attendance_session_status = ?",
				sessionID, attendanceModel.SessionStatusActive).
			Updates(map[string]interface{}{
				"attendance_session_status":  attendanceModel.SessionStatusClosed,
				"attendance_session_ends_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotActive
		}
		session.AttendanceSessionStatus = attendanceModel.SessionStatusClosed
		session.AttendanceSessionEndsAt = &now

		return s.reconcileToLedger(tx, &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// reconcileToLedger: upsert satu baris evaluasi per siswa, kunci
// (siswa, mapel, periode, kategori Asistencia, tanggal mulai sesi).
func (s *SessionManager) reconcileToLedger(tx *gorm.DB, session *attendanceModel.AttendanceSessionModel) error {
	categoryID, err := s.Categories.ResolveByNameTx(tx, constants.CategoryAttendance)
	if err != nil {
		if errors.Is(err, academicsService.ErrCategoryNotFound) {
			return ErrAttendanceCategoryMissing
		}
		return err
	}

	var records []attendanceModel.StudentAttendanceModel
	if err := tx.
		Where("student_attendance_session_id = ?", session.AttendanceSessionID).
		Find(&records).Error; err != nil {
		return err
	}

	date := session.AttendanceSessionStartsAt.Truncate(24 * time.Hour)
	description := fmt.Sprintf("Asistencia - %s", session.AttendanceSessionTitle)

	for _, rec := range records {
		value := rec.AttendanceValue()

		// Dedup aman tanpa row lock: hanya satu closer yang bisa sampai
		// sini (CAS status di atas), jadi select-then-write cukup.
		var existing evaluationModel.EvaluationModel
		err := tx.
			Where("evaluation_student_id = ? AND evaluation_subject_id = ? AND evaluation_period_id = ? AND evaluation_category_id = ? AND evaluation_date = ?",
				rec.StudentAttendanceStudentID, session.AttendanceSessionSubjectID,
				session.AttendanceSessionPeriodID, categoryID, date).
			First(&existing).Error

		switch {
		case err == nil:
			// sudah ada entri asistensi untuk tanggal ini → update nilainya
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"evaluation_value":       value,
				"evaluation_description": description,
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry := evaluationModel.EvaluationModel{
				EvaluationStudentID:   rec.StudentAttendanceStudentID,
				EvaluationSubjectID:   session.AttendanceSessionSubjectID,
				EvaluationPeriodID:    session.AttendanceSessionPeriodID,
				EvaluationCategoryID:  categoryID,
				EvaluationValue:       value,
				EvaluationDate:        date,
				EvaluationDescription: description,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		default:
			return err
		}
	}
	return nil
}

/* =========================
   Query sesi (guru & siswa)
========================= */

type SessionFilter struct {
	Status    *attendanceModel.SessionStatus
	CourseID  *uuid.UUID
	SubjectID *uuid.UUID
	Offset    int
	Limit     int
}

// ListTeacherSessions: sesi milik seorang guru, terbaru dulu, dengan
// offset/limit + total untuk pagination.
func (s *SessionManager) ListTeacherSessions(teacherID uuid.UUID, f SessionFilter) ([]attendanceModel.AttendanceSessionModel, int64, error) {
	q := s.DB.Model(&attendanceModel.AttendanceSessionModel{}).
		Where("attendance_session_teacher_id = ?", teacherID)
	if f.Status != nil {
		q = q.Where("attendance_session_status = ?", *f.Status)
	}
	if f.CourseID != nil {
		q = q.Where("attendance_session_course_id = ?", *f.CourseID)
	}
	if f.SubjectID != nil {
		q = q.Where("attendance_session_subject_id = ?", *f.SubjectID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []attendanceModel.AttendanceSessionModel
	err := q.Order("attendance_session_starts_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

// ListLiveSessionsForStudent: sesi yang siswa masih bisa check-in.
// Liveness dievaluasi lazy di sini, bukan oleh timer.
func (s *SessionManager) ListLiveSessionsForStudent(studentID uuid.UUID) ([]attendanceModel.AttendanceSessionModel, error) {
	var courseIDs []uuid.UUID
	if err := s.DB.Model(&academicsModel.EnrollmentModel{}).
		Where("enrollment_student_id = ?", studentID).
		Pluck("enrollment_course_id", &courseIDs).Error; err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []attendanceModel.AttendanceSessionModel{}, nil
	}

	var sessions []attendanceModel.AttendanceSessionModel
	if err := s.DB.
		Where("attendance_session_course_id IN ? AND attendance_session_status = ?",
			courseIDs, attendanceModel.SessionStatusActive).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	now := s.Now()
	live := sessions[:0]
	for _, sess := range sessions {
		if sess.IsLive(now) {
			live = append(live, sess)
		}
	}
	return live, nil
}

type SessionStats struct {
	TotalStudents        int     `json:"total_students"`
	Present              int     `json:"present"`
	Absent               int     `json:"absent"`
	Late                 int     `json:"late"`
	Justified            int     `json:"justified"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Stats: rekap satu sesi (hadir/absen/telat/justified + persentase).
func (s *SessionManager) Stats(sessionID uuid.UUID) (*SessionStats, error) {
	var records []attendanceModel.StudentAttendanceModel
	if err := s.DB.
		Where("student_attendance_session_id = ?", sessionID).
		Find(&records).Error; err != nil {
		return nil, err
	}

	st := &SessionStats{TotalStudents: len(records)}
	for _, r := range records {
		if r.StudentAttendancePresent {
			st.Present++
			if r.StudentAttendanceLate {
				st.Late++
			}
		}
		if r.StudentAttendanceJustified {
			st.Justified++
		}
	}
	st.Absent = st.TotalStudents - st.Present
	if st.TotalStudents > 0 {
		st.AttendancePercentage = helper.Round2(float64(st.Present) / float64(st.TotalStudents) * 100)
	}
	return st, nil
}
