// file: internals/features/attendance/sessions/controller/student_checkin_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceDTO "schoolku_backend/internals/features/attendance/sessions/dto"
	attendanceService "schoolku_backend/internals/features/attendance/sessions/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentCheckInController struct {
	DB       *gorm.DB
	Sessions *attendanceService.SessionManager
	CheckIns *attendanceService.CheckInService
	Validate *validator.Validate
}

func NewStudentCheckInController(db *gorm.DB) *StudentCheckInController {
	return &StudentCheckInController{
		DB:       db,
		Sessions: attendanceService.NewSessionManager(db),
		CheckIns: attendanceService.NewCheckInService(db),
		Validate: validator.New(),
	}
}

// ListLiveSessions: sesi yang masih bisa di-check-in siswa yang login.
func (ctrl *StudentCheckInController) ListLiveSessions(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessions, err := ctrl.Sessions.ListLiveSessionsForStudent(studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	return helper.JsonOK(c, "OK", sessions)
}

// CheckIn: siswa absen dengan koordinat GPS.
func (ctrl *StudentCheckInController) CheckIn(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	var req attendanceDTO.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	record, result, err := ctrl.CheckIns.CheckIn(attendanceService.CheckInInput{
		SessionID:  sessionID,
		StudentID:  studentID,
		StudentLat: req.StudentAttendanceStudentLat,
		StudentLon: req.StudentAttendanceStudentLon,
		Notes:      req.StudentAttendanceNotes,
	})
	if err != nil {
		return mapAttendanceError(c, err)
	}

	msg := "Check-in berhasil"
	if result.Late {
		msg = "Check-in berhasil (terlambat)"
	}
	return helper.JsonOK(c, msg, attendanceDTO.CheckInResponse{
		Record: record,
		Result: result,
	})
}

// ValidateCanCheckIn: pre-flight tanpa efek samping, buat konfirmasi UI.
func (ctrl *StudentCheckInController) ValidateCanCheckIn(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id sesi tidak valid")
	}

	var req attendanceDTO.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	verdict, err := ctrl.CheckIns.ValidateCanCheckIn(sessionID, studentID,
		req.StudentAttendanceStudentLat, req.StudentAttendanceStudentLon)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memvalidasi check-in")
	}
	return helper.JsonOK(c, "OK", verdict)
}
