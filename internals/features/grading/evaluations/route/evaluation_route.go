// file: internals/features/grading/evaluations/route/evaluation_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evaluationCtrl "schoolku_backend/internals/features/grading/evaluations/controller"
)

// EvaluationTeacherRoutes: ledger nilai + bobot + agregasi (guru).
func EvaluationTeacherRoutes(r fiber.Router, db *gorm.DB) {
	evCtrl := evaluationCtrl.NewEvaluationController(db)
	perfCtrl := evaluationCtrl.NewPerformanceController(db)

	// =====================
	// Ledger nilai
	// =====================
	ev := r.Group("/evaluations")
	ev.Post("/", evCtrl.CreateEvaluation)
	ev.Get("/", evCtrl.ListEvaluations)
	ev.Get("/summary", evCtrl.GetSummary)
	ev.Post("/bulk", evCtrl.BulkRegister)
	ev.Post("/bulk-attendance", evCtrl.BulkRegisterAttendance)
	ev.Patch("/:id", evCtrl.UpdateEvaluation)

	// =====================
	// Bobot kategori
	// =====================
	weights := r.Group("/category-weights")
	weights.Put("/", perfCtrl.SetCategoryWeight)
	weights.Get("/", perfCtrl.ListCategoryWeights)

	// =====================
	// Nilai akhir
	// =====================
	final := r.Group("/final-performances")
	final.Post("/compute", perfCtrl.ComputeFinal)
	final.Post("/compute-course", perfCtrl.ComputeFinalForCourse)
	final.Post("/compute-student/:student_id", perfCtrl.ComputeFinalForStudent)
	final.Get("/students/:student_id", perfCtrl.ListFinalPerformances)
}
