// file: internals/features/grading/evaluations/controller/performance_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "schoolku_backend/internals/features/academics/model"
	evaluationDTO "schoolku_backend/internals/features/grading/evaluations/dto"
	evaluationService "schoolku_backend/internals/features/grading/evaluations/service"
	helper "schoolku_backend/internals/helpers"
)

// PerformanceController: bobot kategori + agregasi nilai akhir.
type PerformanceController struct {
	DB         *gorm.DB
	Weights    *evaluationService.WeightResolver
	Aggregator *evaluationService.GradeAggregator
	Validate   *validator.Validate
}

func NewPerformanceController(db *gorm.DB) *PerformanceController {
	return &PerformanceController{
		DB:         db,
		Weights:    evaluationService.NewWeightResolver(db),
		Aggregator: evaluationService.NewGradeAggregator(db),
		Validate:   validator.New(),
	}
}

/* =========================
   Bobot kategori
========================= */

// SetCategoryWeight: pasang/perbarui bobot guru (idempotent).
func (ctrl *PerformanceController) SetCategoryWeight(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req evaluationDTO.SetCategoryWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	weight := req.ToModel(teacherID)
	if err := ctrl.Weights.Upsert(weight); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan bobot")
	}
	return helper.JsonUpdated(c, "Bobot tersimpan", weight)
}

// ListCategoryWeights: bobot guru untuk ?subject_id=&term_id=.
// Menyertakan include daftar kategori supaya form bobot bisa menampilkan
// kategori yang belum diberi bobot.
func (ctrl *PerformanceController) ListCategoryWeights(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "subject_id wajib dan harus uuid")
	}
	termID, err := uuid.Parse(c.Query("term_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "term_id wajib dan harus uuid")
	}

	weights, err := ctrl.Weights.ListForTeacher(teacherID, subjectID, termID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil bobot")
	}

	var categories []academicsModel.EvaluationCategoryModel
	if err := ctrl.DB.Order("evaluation_category_name ASC").Find(&categories).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}

	return helper.JsonListEx(c, "OK", weights, nil, fiber.Map{"categories": categories})
}

/* =========================
   Nilai akhir
========================= */

// ComputeFinal: hitung & simpan nilai akhir satu siswa.
func (ctrl *PerformanceController) ComputeFinal(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req evaluationDTO.ComputeFinalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Aggregator.Compute(teacherID, req.StudentID, req.SubjectID, req.PeriodID)
	if err != nil {
		if errors.Is(err, evaluationService.ErrPeriodNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung nilai akhir")
	}
	return helper.JsonOK(c, "Nilai akhir dihitung", result)
}

// ComputeFinalForCourse: hitung ulang seluruh siswa sebuah kelas.
func (ctrl *PerformanceController) ComputeFinalForCourse(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req evaluationDTO.ComputeCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	results, err := ctrl.Aggregator.ComputeForCourse(teacherID, req.CourseID, req.SubjectID, req.PeriodID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung nilai akhir kelas")
	}
	return helper.JsonOK(c, "Nilai akhir kelas dihitung", results)
}

// ComputeFinalForStudent: hitung seluruh mapel kurikulum kelas siswa.
func (ctrl *PerformanceController) ComputeFinalForStudent(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}
	periodID, err := uuid.Parse(c.Query("period_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "period_id wajib dan harus uuid")
	}

	results, err := ctrl.Aggregator.ComputeAllForStudent(teacherID, studentID, periodID)
	if err != nil {
		if errors.Is(err, evaluationService.ErrStudentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak punya enrollment")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung nilai akhir siswa")
	}
	return helper.JsonOK(c, "Nilai akhir siswa dihitung", results)
}

// ListFinalPerformances: hasil tersimpan seorang siswa (?period_id= opsional,
// ?page=&per_page= atau alias ?limit=).
func (ctrl *PerformanceController) ListFinalPerformances(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	var periodID *uuid.UUID
	if v := c.Query("period_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			periodID = &id
		}
	}
	p := helper.ResolvePaging(c, 20, 200)

	perfs, total, err := ctrl.Aggregator.ListFinalPerformances(studentID, periodID, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai akhir")
	}
	return helper.JsonList(c, "OK", perfs, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}
