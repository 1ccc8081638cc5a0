// file: internals/features/academics/dto/academics_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/academics/model"
)

/* =========================
   Requests
========================= */

type CreateEvaluationCategoryRequest struct {
	EvaluationCategoryName string `json:"evaluation_category_name" validate:"required,min=2,max=64"`
}

func (r *CreateEvaluationCategoryRequest) Normalize() {
	r.EvaluationCategoryName = strings.TrimSpace(r.EvaluationCategoryName)
}

func (r *CreateEvaluationCategoryRequest) ToModel() *model.EvaluationCategoryModel {
	return &model.EvaluationCategoryModel{EvaluationCategoryName: r.EvaluationCategoryName}
}

type CreateEnrollmentRequest struct {
	EnrollmentStudentID uuid.UUID `json:"enrollment_student_id" validate:"required"`
	EnrollmentCourseID  uuid.UUID `json:"enrollment_course_id" validate:"required"`
	EnrollmentTermID    uuid.UUID `json:"enrollment_term_id" validate:"required"`
}

func (r *CreateEnrollmentRequest) ToModel() *model.EnrollmentModel {
	return &model.EnrollmentModel{
		EnrollmentStudentID: r.EnrollmentStudentID,
		EnrollmentCourseID:  r.EnrollmentCourseID,
		EnrollmentTermID:    r.EnrollmentTermID,
	}
}

type LinkGuardianRequest struct {
	GuardianStudentGuardianID uuid.UUID `json:"guardian_student_guardian_id" validate:"required"`
	GuardianStudentStudentID  uuid.UUID `json:"guardian_student_student_id" validate:"required"`
}

func (r *LinkGuardianRequest) ToModel() *model.GuardianStudentModel {
	return &model.GuardianStudentModel{
		GuardianStudentGuardianID: r.GuardianStudentGuardianID,
		GuardianStudentStudentID:  r.GuardianStudentStudentID,
	}
}

/* =========================
   Responses
========================= */

type EnrolledStudentResponse struct {
	StudentID       uuid.UUID `json:"student_id"`
	StudentName     string    `json:"student_name"`
	StudentLastName string    `json:"student_last_name"`
}
