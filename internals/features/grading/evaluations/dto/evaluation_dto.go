// file: internals/features/grading/evaluations/dto/evaluation_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/grading/evaluations/model"
	service "schoolku_backend/internals/features/grading/evaluations/service"
)

/* =========================
   Requests
========================= */

type CreateEvaluationRequest struct {
	EvaluationStudentID  uuid.UUID `json:"evaluation_student_id" validate:"required"`
	EvaluationSubjectID  uuid.UUID `json:"evaluation_subject_id" validate:"required"`
	EvaluationPeriodID   uuid.UUID `json:"evaluation_period_id" validate:"required"`
	EvaluationCategoryID uuid.UUID `json:"evaluation_category_id" validate:"required"`

	EvaluationValue       float64    `json:"evaluation_value" validate:"gte=0,lte=100"`
	EvaluationDate        *time.Time `json:"evaluation_date"` // nil = hari ini
	EvaluationDescription string     `json:"evaluation_description" validate:"omitempty,max=500"`
}

func (r *CreateEvaluationRequest) ToModel(now time.Time) *model.EvaluationModel {
	date := now
	if r.EvaluationDate != nil {
		date = *r.EvaluationDate
	}
	return &model.EvaluationModel{
		EvaluationStudentID:   r.EvaluationStudentID,
		EvaluationSubjectID:   r.EvaluationSubjectID,
		EvaluationPeriodID:    r.EvaluationPeriodID,
		EvaluationCategoryID:  r.EvaluationCategoryID,
		EvaluationValue:       r.EvaluationValue,
		EvaluationDate:        date.Truncate(24 * time.Hour),
		EvaluationDescription: strings.TrimSpace(r.EvaluationDescription),
	}
}

type UpdateEvaluationRequest struct {
	EvaluationValue       *float64 `json:"evaluation_value" validate:"omitempty,gte=0,lte=100"`
	EvaluationDescription *string  `json:"evaluation_description" validate:"omitempty,max=500"`
}

type SetCategoryWeightRequest struct {
	CategoryWeightSubjectID  uuid.UUID `json:"category_weight_subject_id" validate:"required"`
	CategoryWeightTermID     uuid.UUID `json:"category_weight_term_id" validate:"required"`
	CategoryWeightCategoryID uuid.UUID `json:"category_weight_category_id" validate:"required"`
	CategoryWeightPercentage float64   `json:"category_weight_percentage" validate:"gte=0,lte=100"`
}

func (r *SetCategoryWeightRequest) ToModel(teacherID uuid.UUID) *model.CategoryWeightModel {
	return &model.CategoryWeightModel{
		CategoryWeightTeacherID:  teacherID,
		CategoryWeightSubjectID:  r.CategoryWeightSubjectID,
		CategoryWeightTermID:     r.CategoryWeightTermID,
		CategoryWeightCategoryID: r.CategoryWeightCategoryID,
		CategoryWeightPercentage: r.CategoryWeightPercentage,
	}
}

type BulkEntryRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Value     float64   `json:"value" validate:"gte=0,lte=100"`
	Note      string    `json:"note" validate:"omitempty,max=500"` // menggantikan description utk entri ini
}

type BulkRegisterRequest struct {
	SubjectID    uuid.UUID          `json:"subject_id" validate:"required"`
	PeriodID     uuid.UUID          `json:"period_id" validate:"required"`
	CategoryName string             `json:"category_name" validate:"required"`
	Date         *time.Time         `json:"date"` // nil = hari ini
	Description  string             `json:"description" validate:"omitempty,max=500"`
	Entries      []BulkEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (r *BulkRegisterRequest) ToInput(now time.Time) service.BulkRegisterInput {
	date := now
	if r.Date != nil {
		date = *r.Date
	}
	entries := make([]service.BulkEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, service.BulkEntry{
			StudentID: e.StudentID,
			Value:     e.Value,
			Note:      strings.TrimSpace(e.Note),
		})
	}
	return service.BulkRegisterInput{
		SubjectID:    r.SubjectID,
		PeriodID:     r.PeriodID,
		CategoryName: strings.TrimSpace(r.CategoryName),
		Date:         date,
		Description:  strings.TrimSpace(r.Description),
		Entries:      entries,
	}
}

type BulkAttendanceEntryRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=presente falta tarde justificacion"`
	Note      string    `json:"note" validate:"omitempty,max=500"`
}

type BulkAttendanceRequest struct {
	SubjectID uuid.UUID                    `json:"subject_id" validate:"required"`
	PeriodID  uuid.UUID                    `json:"period_id" validate:"required"`
	Date      *time.Time                   `json:"date"` // nil = hari ini
	Entries   []BulkAttendanceEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (r *BulkAttendanceRequest) ToInput(now time.Time) service.BulkAttendanceInput {
	date := now
	if r.Date != nil {
		date = *r.Date
	}
	entries := make([]service.BulkAttendanceEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, service.BulkAttendanceEntry{
			StudentID: e.StudentID,
			Status:    e.Status,
			Note:      strings.TrimSpace(e.Note),
		})
	}
	return service.BulkAttendanceInput{
		SubjectID: r.SubjectID,
		PeriodID:  r.PeriodID,
		Date:      date,
		Entries:   entries,
	}
}

type ComputeFinalRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	PeriodID  uuid.UUID `json:"period_id" validate:"required"`
}

type ComputeCourseRequest struct {
	CourseID  uuid.UUID `json:"course_id" validate:"required"`
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	PeriodID  uuid.UUID `json:"period_id" validate:"required"`
}
