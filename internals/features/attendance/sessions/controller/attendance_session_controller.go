// file: internals/features/attendance/sessions/controller/attendance_session_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceDTO "schoolku_backend/internals/features/attendance/sessions/dto"
	attendanceModel "schoolku_backend/internals/features/attendance/sessions/model"
	attendanceService "schoolku_backend/internals/features/attendance/sessions/service"
	helper "schoolku_backend/internals/helpers"
)

type AttendanceSessionController struct {
	DB       *gorm.DB
	Sessions *attendanceService.SessionManager
	CheckIns *attendanceService.CheckInService
	Validate *validator.Validate
}

func NewAttendanceSessionController(db *gorm.DB) *AttendanceSessionController {
	return &AttendanceSessionController{
		DB:       db,
		Sessions: attendanceService.NewSessionManager(db),
		CheckIns: attendanceService.NewCheckInService(db),
		Validate: validator.New(),
	}
}

// mapAttendanceError: error domain → status HTTP.
func mapAttendanceError(c *fiber.Ctx, err error) error {
	var oor *attendanceService.OutOfRangeError
	switch {
	case errors.Is(err, attendanceService.ErrSessionNotFound),
		errors.Is(err, attendanceService.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, attendanceService.ErrDuplicateActiveSession):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, attendanceService.ErrSessionNotActive),
		errors.Is(err, attendanceService.ErrAlreadyMarked):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &oor):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, oor.Error())
	case errors.Is(err, attendanceService.ErrAttendanceCategoryMissing):
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal")
	}
}

/* =========================
   Guru
========================= */

// CreateAttendanceSession: buka sesi baru + fan-out record siswa.
func (ctrl *AttendanceSessionController) CreateAttendanceSession(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.CreateAttendanceSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session, err := ctrl.Sessions.CreateSession(req.ToInput(teacherID, time.Now()))
	if err != nil {
		return mapAttendanceError(c, err)
	}
	return helper.JsonCreated(c, "Sesi absensi dibuka", session)
}

// CloseAttendanceSession: tutup sesi (terminal) + rekonsiliasi ledger.
func (ctrl *AttendanceSessionController) CloseAttendanceSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	session, err := ctrl.Sessions.CloseSession(sessionID)
	if err != nil {
		return mapAttendanceError(c, err)
	}
	return helper.JsonOK(c, "Sesi ditutup dan nilai asistensi tercatat", session)
}

// ListMySessions: sesi milik guru yang login, bisa difilter dan dipaging
// (?page=&per_page= atau alias ?limit=).
func (ctrl *AttendanceSessionController) ListMySessions(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var f attendanceService.SessionFilter
	if v := c.Query("status"); v != "" {
		st := attendanceModel.SessionStatus(v)
		f.Status = &st
	}
	if v := c.Query("course_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.CourseID = &id
		}
	}
	if v := c.Query("subject_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.SubjectID = &id
		}
	}
	p := helper.ResolvePaging(c, 50, 200)
	f.Offset, f.Limit = p.Offset, p.Limit

	sessions, total, err := ctrl.Sessions.ListTeacherSessions(teacherID, f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helper.JsonList(c, "OK", sessions, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GetSessionDetail: sesi + seluruh record-nya.
func (ctrl *AttendanceSessionController) GetSessionDetail(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	var session attendanceModel.AttendanceSessionModel
	if err := ctrl.DB.First(&session, "attendance_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sesi absensi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	records, err := ctrl.CheckIns.ListSessionRecords(sessionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil record")
	}

	return helper.JsonOK(c, "OK", attendanceDTO.SessionDetailResponse{
		Session: &session,
		Records: records,
	})
}

// GetSessionStats: rekap hadir/absen/telat/justified.
func (ctrl *AttendanceSessionController) GetSessionStats(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	stats, err := ctrl.Sessions.Stats(sessionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung rekap")
	}
	return helper.JsonOK(c, "OK", stats)
}

// JustifyAbsence: guru menandai absen siswa sebagai justified
// (boleh setelah sesi ditutup).
func (ctrl *AttendanceSessionController) JustifyAbsence(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	var req attendanceDTO.JustifyAbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	record, err := ctrl.CheckIns.JustifyAbsence(attendanceService.JustifyInput{
		SessionID: sessionID,
		StudentID: studentID,
		Reason:    req.StudentAttendanceJustificationReason,
		Notes:     req.StudentAttendanceNotes,
	})
	if err != nil {
		return mapAttendanceError(c, err)
	}
	return helper.JsonUpdated(c, "Absen berhasil dijustifikasi", record)
}
