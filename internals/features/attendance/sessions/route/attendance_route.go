// file: internals/features/attendance/sessions/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceCtrl "schoolku_backend/internals/features/attendance/sessions/controller"
	"schoolku_backend/internals/middlewares"
)

// AttendanceTeacherRoutes: manajemen sesi oleh guru.
func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewAttendanceSessionController(db)

	sessions := r.Group("/attendance-sessions")
	sessions.Post("/", ctrl.CreateAttendanceSession)
	sessions.Get("/", ctrl.ListMySessions)
	sessions.Get("/:id", ctrl.GetSessionDetail)
	sessions.Get("/:id/stats", ctrl.GetSessionStats)
	sessions.Post("/:id/close", ctrl.CloseAttendanceSession)
	sessions.Patch("/:id/students/:student_id/justify", ctrl.JustifyAbsence)
}

// AttendanceStudentRoutes: check-in siswa (rate-limited).
func AttendanceStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceCtrl.NewStudentCheckInController(db)

	sessions := r.Group("/attendance-sessions")
	sessions.Get("/live", ctrl.ListLiveSessions)
	sessions.Post("/:id/validate", ctrl.ValidateCanCheckIn)
	sessions.Post("/:id/check-in", middlewares.CheckInRateLimiter(), ctrl.CheckIn)
}
