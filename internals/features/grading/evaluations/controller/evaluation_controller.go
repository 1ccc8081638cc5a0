// file: internals/features/grading/evaluations/controller/evaluation_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsService "schoolku_backend/internals/features/academics/service"
	evaluationDTO "schoolku_backend/internals/features/grading/evaluations/dto"
	evaluationService "schoolku_backend/internals/features/grading/evaluations/service"
	notificationService "schoolku_backend/internals/features/home/notifications/service"
	helper "schoolku_backend/internals/helpers"
)

type EvaluationController struct {
	DB          *gorm.DB
	Evaluations *evaluationService.EvaluationService
	Validate    *validator.Validate
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{
		DB:          db,
		Evaluations: evaluationService.NewEvaluationService(db, notificationService.NewNotificationTrigger(db)),
		Validate:    validator.New(),
	}
}

// CreateEvaluation: tulis satu nilai; nilai di bawah ambang otomatis
// memberi tahu wali (lewat listener, bukan di sini).
func (ctrl *EvaluationController) CreateEvaluation(c *fiber.Ctx) error {
	var req evaluationDTO.CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ev := req.ToModel(time.Now())
	if err := ctrl.Evaluations.Create(ev); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}
	return helper.JsonCreated(c, "Nilai tersimpan", ev)
}

// UpdateEvaluation: koreksi nilai/deskripsi.
func (ctrl *EvaluationController) UpdateEvaluation(c *fiber.Ctx) error {
	evaluationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id evaluasi tidak valid")
	}

	var req evaluationDTO.UpdateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ev, err := ctrl.Evaluations.Update(evaluationID, req.EvaluationValue, req.EvaluationDescription)
	if err != nil {
		if errors.Is(err, evaluationService.ErrEvaluationNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui nilai")
	}
	return helper.JsonUpdated(c, "Nilai diperbarui", ev)
}

// ListEvaluations: ledger (siswa, mapel, periode), opsional ?category_id=,
// dipaging lewat ?page=&per_page= (atau alias ?limit=).
func (ctrl *EvaluationController) ListEvaluations(c *fiber.Ctx) error {
	f, err := parseLedgerKey(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.CategoryID = &id
		}
	}
	p := helper.ResolvePaging(c, 50, 200)
	f.Offset, f.Limit = p.Offset, p.Limit

	evaluations, total, err := ctrl.Evaluations.List(*f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil nilai")
	}
	return helper.JsonList(c, "OK", evaluations, helper.BuildPaginationFromOffset(total, p.Offset, p.Limit))
}

// GetSummary: rata-rata mentah per kategori (tanpa bobot).
func (ctrl *EvaluationController) GetSummary(c *fiber.Ctx) error {
	f, err := parseLedgerKey(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := ctrl.Evaluations.Summary(f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung ringkasan")
	}
	return helper.JsonOK(c, "OK", summary)
}

// BulkRegister: nilai massal satu kategori per tanggal (partisipasi,
// tugas, dst). Siswa yang sudah punya entri dilewati.
func (ctrl *EvaluationController) BulkRegister(c *fiber.Ctx) error {
	var req evaluationDTO.BulkRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Evaluations.BulkRegister(req.ToInput(time.Now()))
	if err != nil {
		if errors.Is(err, academicsService.ErrCategoryNotFound) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai massal")
	}
	return helper.JsonCreated(c, "Registrasi massal selesai", result)
}

// BulkRegisterAttendance: absensi manual tanpa sesi geofenced — status
// per siswa dipetakan ke nilai ledger kategori "Asistencia".
func (ctrl *EvaluationController) BulkRegisterAttendance(c *fiber.Ctx) error {
	var req evaluationDTO.BulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.Evaluations.BulkRegisterAttendance(req.ToInput(time.Now()))
	if err != nil {
		switch {
		case errors.Is(err, evaluationService.ErrInvalidAttendanceStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, academicsService.ErrCategoryNotFound):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan absensi manual")
		}
	}
	return helper.JsonCreated(c, "Absensi manual tersimpan", result)
}

// parseLedgerKey: tiga query param wajib pembentuk kunci ledger.
func parseLedgerKey(c *fiber.Ctx) (*evaluationService.EvaluationFilter, error) {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return nil, errors.New("student_id wajib dan harus uuid")
	}
	subjectID, err := uuid.Parse(c.Query("subject_id"))
	if err != nil {
		return nil, errors.New("subject_id wajib dan harus uuid")
	}
	periodID, err := uuid.Parse(c.Query("period_id"))
	if err != nil {
		return nil, errors.New("period_id wajib dan harus uuid")
	}
	return &evaluationService.EvaluationFilter{
		StudentID: studentID,
		SubjectID: subjectID,
		PeriodID:  periodID,
	}, nil
}
