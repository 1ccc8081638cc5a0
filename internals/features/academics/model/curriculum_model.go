// file: internals/features/academics/model/curriculum_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Mata pelajaran & kelas
========================= */

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"type:uuid;primaryKey;column:subject_id" json:"subject_id"`
	SubjectName string    `gorm:"type:varchar(120);not null;column:subject_name" json:"subject_name"`

	SubjectCreatedAt time.Time `gorm:"not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:subject_updated_at" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

type CourseModel struct {
	CourseID   uuid.UUID `gorm:"type:uuid;primaryKey;column:course_id" json:"course_id"`
	CourseName string    `gorm:"type:varchar(120);not null;column:course_name" json:"course_name"` // mis. "5to A"

	CourseCreatedAt time.Time `gorm:"not null;autoCreateTime;column:course_created_at" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:course_updated_at" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

// Kurikulum: mata pelajaran yang dipakai sebuah kelas
type CourseSubjectModel struct {
	CourseSubjectID        uuid.UUID `gorm:"type:uuid;primaryKey;column:course_subject_id" json:"course_subject_id"`
	CourseSubjectCourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_course_subject;column:course_subject_course_id" json:"course_subject_course_id"`
	CourseSubjectSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_course_subject;column:course_subject_subject_id" json:"course_subject_subject_id"`

	CourseSubjectCreatedAt time.Time `gorm:"not null;autoCreateTime;column:course_subject_created_at" json:"course_subject_created_at"`
}

func (CourseSubjectModel) TableName() string { return "course_subjects" }

func (m *CourseSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseSubjectID == uuid.Nil {
		m.CourseSubjectID = uuid.New()
	}
	return nil
}

/* =========================
   Gestión & periode
========================= */

// Gestión: siklus tahunan (mis. "2025")
type AcademicTermModel struct {
	AcademicTermID   uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_term_id" json:"academic_term_id"`
	AcademicTermName string    `gorm:"type:varchar(32);not null;column:academic_term_name" json:"academic_term_name"`

	AcademicTermCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_term_created_at" json:"academic_term_created_at"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicTermID == uuid.Nil {
		m.AcademicTermID = uuid.New()
	}
	return nil
}

// Periode: subdivisi gestión untuk penilaian (trimester/bimester)
type PeriodModel struct {
	PeriodID     uuid.UUID `gorm:"type:uuid;primaryKey;column:period_id" json:"period_id"`
	PeriodTermID uuid.UUID `gorm:"type:uuid;not null;index;column:period_term_id" json:"period_term_id"`
	PeriodName   string    `gorm:"type:varchar(64);not null;column:period_name" json:"period_name"`

	PeriodCreatedAt time.Time `gorm:"not null;autoCreateTime;column:period_created_at" json:"period_created_at"`
}

func (PeriodModel) TableName() string { return "periods" }

func (m *PeriodModel) BeforeCreate(tx *gorm.DB) error {
	if m.PeriodID == uuid.Nil {
		m.PeriodID = uuid.New()
	}
	return nil
}

/* =========================
   Inscripción (enrollment)
========================= */

type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment;column:enrollment_student_id" json:"enrollment_student_id"`
	EnrollmentCourseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment;index;column:enrollment_course_id" json:"enrollment_course_id"`
	EnrollmentTermID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment;column:enrollment_term_id" json:"enrollment_term_id"`

	EnrollmentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:enrollment_created_at" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}

/* =========================
   Kategori evaluasi (tipo de evaluación)
========================= */

type EvaluationCategoryModel struct {
	EvaluationCategoryID   uuid.UUID `gorm:"type:uuid;primaryKey;column:evaluation_category_id" json:"evaluation_category_id"`
	EvaluationCategoryName string    `gorm:"type:varchar(64);not null;uniqueIndex;column:evaluation_category_name" json:"evaluation_category_name"`

	EvaluationCategoryCreatedAt time.Time `gorm:"not null;autoCreateTime;column:evaluation_category_created_at" json:"evaluation_category_created_at"`
}

func (EvaluationCategoryModel) TableName() string { return "evaluation_categories" }

func (m *EvaluationCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.EvaluationCategoryID == uuid.Nil {
		m.EvaluationCategoryID = uuid.New()
	}
	return nil
}
