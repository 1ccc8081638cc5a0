// file: internals/features/grading/evaluations/model/evaluation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: evaluations (ledger nilai)
   Satu baris = satu nilai 0–100 untuk
   (siswa, mapel, periode, kategori) pada tanggal tertentu.
========================================= */

type EvaluationModel struct {
	// PK
	EvaluationID uuid.UUID `gorm:"type:uuid;primaryKey;column:evaluation_id" json:"evaluation_id"`

	// Kunci ledger
	EvaluationStudentID  uuid.UUID `gorm:"type:uuid;not null;index:idx_evaluation_lookup;column:evaluation_student_id" json:"evaluation_student_id"`
	EvaluationSubjectID  uuid.UUID `gorm:"type:uuid;not null;index:idx_evaluation_lookup;column:evaluation_subject_id" json:"evaluation_subject_id"`
	EvaluationPeriodID   uuid.UUID `gorm:"type:uuid;not null;index:idx_evaluation_lookup;column:evaluation_period_id" json:"evaluation_period_id"`
	EvaluationCategoryID uuid.UUID `gorm:"type:uuid;not null;index:idx_evaluation_lookup;column:evaluation_category_id" json:"evaluation_category_id"`

	// Isi
	EvaluationValue       float64   `gorm:"not null;column:evaluation_value" json:"evaluation_value"` // 0–100
	EvaluationDate        time.Time `gorm:"type:date;not null;column:evaluation_date" json:"evaluation_date"`
	EvaluationDescription string    `gorm:"type:text;not null;default:'';column:evaluation_description" json:"evaluation_description"`

	// Audit
	EvaluationCreatedAt time.Time `gorm:"not null;autoCreateTime;column:evaluation_created_at" json:"evaluation_created_at"`
	EvaluationUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:evaluation_updated_at" json:"evaluation_updated_at"`
}

func (EvaluationModel) TableName() string { return "evaluations" }

func (m *EvaluationModel) BeforeCreate(tx *gorm.DB) error {
	if m.EvaluationID == uuid.Nil {
		m.EvaluationID = uuid.New()
	}
	return nil
}

/* =========================================
   Model: category_weights (peso tipo evaluación)
   Bobot persen yang dipasang guru per
   (mapel, gestión, kategori). Tidak wajib total 100.
========================================= */

type CategoryWeightModel struct {
	CategoryWeightID uuid.UUID `gorm:"type:uuid;primaryKey;column:category_weight_id" json:"category_weight_id"`

	CategoryWeightTeacherID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_category_weight;column:category_weight_teacher_id" json:"category_weight_teacher_id"`
	CategoryWeightSubjectID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_category_weight;column:category_weight_subject_id" json:"category_weight_subject_id"`
	CategoryWeightTermID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_category_weight;column:category_weight_term_id" json:"category_weight_term_id"`
	CategoryWeightCategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_category_weight;column:category_weight_category_id" json:"category_weight_category_id"`

	CategoryWeightPercentage float64 `gorm:"not null;column:category_weight_percentage" json:"category_weight_percentage"` // 0–100

	CategoryWeightCreatedAt time.Time `gorm:"not null;autoCreateTime;column:category_weight_created_at" json:"category_weight_created_at"`
	CategoryWeightUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:category_weight_updated_at" json:"category_weight_updated_at"`
}

func (CategoryWeightModel) TableName() string { return "category_weights" }

func (m *CategoryWeightModel) BeforeCreate(tx *gorm.DB) error {
	if m.CategoryWeightID == uuid.Nil {
		m.CategoryWeightID = uuid.New()
	}
	return nil
}

/* =========================================
   Model: final_performances (rendimiento final)
   Hasil agregasi — hanya ditulis aggregator, bukan user.
========================================= */

type FinalPerformanceModel struct {
	FinalPerformanceID uuid.UUID `gorm:"type:uuid;primaryKey;column:final_performance_id" json:"final_performance_id"`

	FinalPerformanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_final_performance;column:final_performance_student_id" json:"final_performance_student_id"`
	FinalPerformanceSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_final_performance;column:final_performance_subject_id" json:"final_performance_subject_id"`
	FinalPerformancePeriodID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_final_performance;column:final_performance_period_id" json:"final_performance_period_id"`

	FinalPerformanceScore      float64   `gorm:"not null;column:final_performance_score" json:"final_performance_score"`
	FinalPerformanceComputedAt time.Time `gorm:"not null;column:final_performance_computed_at" json:"final_performance_computed_at"`

	FinalPerformanceCreatedAt time.Time `gorm:"not null;autoCreateTime;column:final_performance_created_at" json:"final_performance_created_at"`
	FinalPerformanceUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:final_performance_updated_at" json:"final_performance_updated_at"`
}

func (FinalPerformanceModel) TableName() string { return "final_performances" }

func (m *FinalPerformanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.FinalPerformanceID == uuid.Nil {
		m.FinalPerformanceID = uuid.New()
	}
	return nil
}
