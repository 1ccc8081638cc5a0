// file: internals/features/academics/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsCtrl "schoolku_backend/internals/features/academics/controller"
)

func AcademicsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := academicsCtrl.NewAcademicsController(db)

	// =====================
	// Kategori evaluasi
	// =====================
	cat := r.Group("/evaluation-categories")
	cat.Post("/", ctrl.CreateEvaluationCategory)
	cat.Get("/", ctrl.ListEvaluationCategories)

	// =====================
	// Enrollment & wali
	// =====================
	r.Post("/enrollments", ctrl.CreateEnrollment)
	r.Get("/courses/:course_id/students", ctrl.ListEnrolledStudents)
	r.Post("/guardian-links", ctrl.LinkGuardian)
	r.Get("/students/:student_id/guardians", ctrl.ListGuardiansOfStudent)
}
