// file: internals/features/academics/controller/academics_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsDTO "schoolku_backend/internals/features/academics/dto"
	academicsModel "schoolku_backend/internals/features/academics/model"
	helper "schoolku_backend/internals/helpers"
)

type AcademicsController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAcademicsController(db *gorm.DB) *AcademicsController {
	return &AcademicsController{DB: db, Validate: validator.New()}
}

/* =========================
   Kategori evaluasi
========================= */

func (ctrl *AcademicsController) CreateEvaluationCategory(c *fiber.Ctx) error {
	var req academicsDTO.CreateEvaluationCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "Kategori dengan nama ini sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat kategori")
	}
	return helper.JsonCreated(c, "Kategori evaluasi dibuat", m)
}

func (ctrl *AcademicsController) ListEvaluationCategories(c *fiber.Ctx) error {
	var cats []academicsModel.EvaluationCategoryModel
	if err := ctrl.DB.Order("evaluation_category_name ASC").Find(&cats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kategori")
	}
	return helper.JsonOK(c, "OK", cats)
}

/* =========================
   Enrollment (inscripción)
========================= */

func (ctrl *AcademicsController) CreateEnrollment(c *fiber.Ctx) error {
	var req academicsDTO.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "Siswa sudah terdaftar di kelas ini untuk gestión tersebut")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan siswa")
	}
	return helper.JsonCreated(c, "Siswa terdaftar", m)
}

// ListEnrolledStudents: siswa yang terdaftar pada sebuah kelas
func (ctrl *AcademicsController) ListEnrolledStudents(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
	}

	var rows []academicsDTO.EnrolledStudentResponse
	err = ctrl.DB.
		Table("enrollments").
		Select("students.student_id, students.student_name, students.student_last_name").
		Joins("JOIN students ON students.student_id = enrollments.enrollment_student_id").
		Where("enrollments.enrollment_course_id = ?", courseID).
		Scan(&rows).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonOK(c, "OK", rows)
}

/* =========================
   Wali ↔ siswa
========================= */

func (ctrl *AcademicsController) LinkGuardian(c *fiber.Ctx) error {
	var req academicsDTO.LinkGuardianRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// pastikan dua-duanya ada dulu, biar errornya jelas
	var guardian academicsModel.GuardianModel
	if err := ctrl.DB.First(&guardian, "guardian_id = ?", req.GuardianStudentGuardianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Wali tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek wali")
	}
	var student academicsModel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", req.GuardianStudentStudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek siswa")
	}

	m := req.ToModel()
	if err := ctrl.DB.Create(m).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return helper.JsonError(c, fiber.StatusConflict, "Relasi wali-siswa sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghubungkan wali")
	}
	return helper.JsonCreated(c, "Wali terhubung ke siswa", m)
}

func (ctrl *AcademicsController) ListGuardiansOfStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
	}

	var guardians []academicsModel.GuardianModel
	err = ctrl.DB.
		Joins("JOIN guardian_students gs ON gs.guardian_student_guardian_id = guardians.guardian_id").
		Where("gs.guardian_student_student_id = ?", studentID).
		Find(&guardians).Error
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil wali")
	}
	return helper.JsonOK(c, "OK", guardians)
}
