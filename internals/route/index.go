// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	academicsRoute "schoolku_backend/internals/features/academics/route"
	attendanceRoute "schoolku_backend/internals/features/attendance/sessions/route"
	evaluationRoute "schoolku_backend/internals/features/grading/evaluations/route"
	notificationRoute "schoolku_backend/internals/features/home/notifications/route"
	"schoolku_backend/internals/middlewares/auth"
)

// SetupRoutes merakit seluruh surface API per role:
//
//	/api/a — admin   (master data, trigger manual, housekeeping)
//	/api/u — guru    (sesi absensi, nilai, bobot, agregasi)
//	/api/s — siswa   (sesi live, check-in)
//	/api/w — wali    (notifikasi)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", auth.AuthMiddleware())

	admin := api.Group("/a", auth.RequireRoles(constants.RoleAdmin))
	academicsRoute.AcademicsAdminRoutes(admin, db)
	notificationRoute.NotificationAdminRoutes(admin, db)

	teacher := api.Group("/u", auth.RequireRoles(constants.RoleTeacher, constants.RoleAdmin))
	attendanceRoute.AttendanceTeacherRoutes(teacher, db)
	evaluationRoute.EvaluationTeacherRoutes(teacher, db)

	student := api.Group("/s", auth.RequireRoles(constants.RoleStudent))
	attendanceRoute.AttendanceStudentRoutes(student, db)

	guardian := api.Group("/w", auth.RequireRoles(constants.RoleGuardian))
	notificationRoute.NotificationGuardianRoutes(guardian, db)
}
