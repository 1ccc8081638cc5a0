// file: internals/features/academics/model/people_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Guru / Siswa / Wali
========================= */

type TeacherModel struct {
	TeacherID    uuid.UUID `gorm:"type:uuid;primaryKey;column:teacher_id" json:"teacher_id"`
	TeacherName  string    `gorm:"type:varchar(120);not null;column:teacher_name" json:"teacher_name"`
	TeacherEmail *string   `gorm:"type:varchar(160);column:teacher_email" json:"teacher_email,omitempty"`

	TeacherCreatedAt time.Time `gorm:"not null;autoCreateTime;column:teacher_created_at" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:teacher_updated_at" json:"teacher_updated_at"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentName     string    `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentLastName string    `gorm:"type:varchar(120);not null;default:'';column:student_last_name" json:"student_last_name"`

	StudentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

type GuardianModel struct {
	GuardianID    uuid.UUID `gorm:"type:uuid;primaryKey;column:guardian_id" json:"guardian_id"`
	GuardianName  string    `gorm:"type:varchar(120);not null;column:guardian_name" json:"guardian_name"`
	GuardianEmail *string   `gorm:"type:varchar(160);column:guardian_email" json:"guardian_email,omitempty"`
	GuardianPhone *string   `gorm:"type:varchar(32);column:guardian_phone" json:"guardian_phone,omitempty"`

	GuardianCreatedAt time.Time `gorm:"not null;autoCreateTime;column:guardian_created_at" json:"guardian_created_at"`
	GuardianUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:guardian_updated_at" json:"guardian_updated_at"`
}

func (GuardianModel) TableName() string { return "guardians" }

func (m *GuardianModel) BeforeCreate(tx *gorm.DB) error {
	if m.GuardianID == uuid.Nil {
		m.GuardianID = uuid.New()
	}
	return nil
}

// Relasi wali ↔ siswa (satu wali bisa punya banyak anak, dan sebaliknya)
type GuardianStudentModel struct {
	GuardianStudentID         uuid.UUID `gorm:"type:uuid;primaryKey;column:guardian_student_id" json:"guardian_student_id"`
	GuardianStudentGuardianID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_guardian_student;column:guardian_student_guardian_id" json:"guardian_student_guardian_id"`
	GuardianStudentStudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_guardian_student;column:guardian_student_student_id" json:"guardian_student_student_id"`

	GuardianStudentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:guardian_student_created_at" json:"guardian_student_created_at"`
}

func (GuardianStudentModel) TableName() string { return "guardian_students" }

func (m *GuardianStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.GuardianStudentID == uuid.Nil {
		m.GuardianStudentID = uuid.New()
	}
	return nil
}
