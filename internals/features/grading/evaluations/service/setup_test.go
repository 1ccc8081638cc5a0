// file: internals/features/grading/evaluations/service/setup_test.go
package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsModel "schoolku_backend/internals/features/academics/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&academicsModel.TeacherModel{},
		&academicsModel.StudentModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.CourseModel{},
		&academicsModel.CourseSubjectModel{},
		&academicsModel.AcademicTermModel{},
		&academicsModel.PeriodModel{},
		&academicsModel.EnrollmentModel{},
		&academicsModel.EvaluationCategoryModel{},
		&evaluationModel.EvaluationModel{},
		&evaluationModel.CategoryWeightModel{},
		&evaluationModel.FinalPerformanceModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type gradingFixture struct {
	TeacherID uuid.UUID
	StudentID uuid.UUID
	SubjectID uuid.UUID
	TermID    uuid.UUID
	PeriodID  uuid.UUID

	// nama kategori → id
	Categories map[string]uuid.UUID
}

func seedGrading(t *testing.T, db *gorm.DB, categoryNames ...string) *gradingFixture {
	t.Helper()

	teacher := academicsModel.TeacherModel{TeacherName: "Prof. Rojas"}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	student := academicsModel.StudentModel{StudentName: "Ana", StudentLastName: "Quispe"}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	subject := academicsModel.SubjectModel{SubjectName: "Matemáticas"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	term := academicsModel.AcademicTermModel{AcademicTermName: "2026"}
	if err := db.Create(&term).Error; err != nil {
		t.Fatalf("seed term: %v", err)
	}
	period := academicsModel.PeriodModel{PeriodTermID: term.AcademicTermID, PeriodName: "Primer Trimestre"}
	if err := db.Create(&period).Error; err != nil {
		t.Fatalf("seed period: %v", err)
	}

	f := &gradingFixture{
		TeacherID:  teacher.TeacherID,
		StudentID:  student.StudentID,
		SubjectID:  subject.SubjectID,
		TermID:     term.AcademicTermID,
		PeriodID:   period.PeriodID,
		Categories: map[string]uuid.UUID{},
	}
	for _, name := range categoryNames {
		cat := academicsModel.EvaluationCategoryModel{EvaluationCategoryName: name}
		if err := db.Create(&cat).Error; err != nil {
			t.Fatalf("seed category %s: %v", name, err)
		}
		f.Categories[name] = cat.EvaluationCategoryID
	}
	return f
}

func (f *gradingFixture) addEvaluation(t *testing.T, db *gorm.DB, categoryName string, value float64, day int) {
	t.Helper()
	ev := evaluationModel.EvaluationModel{
		EvaluationStudentID:  f.StudentID,
		EvaluationSubjectID:  f.SubjectID,
		EvaluationPeriodID:   f.PeriodID,
		EvaluationCategoryID: f.Categories[categoryName],
		EvaluationValue:      value,
		EvaluationDate:       time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&ev).Error; err != nil {
		t.Fatalf("seed evaluasi: %v", err)
	}
}

func (f *gradingFixture) setWeight(t *testing.T, db *gorm.DB, categoryName string, percentage float64) {
	t.Helper()
	w := NewWeightResolver(db)
	if err := w.Upsert(&evaluationModel.CategoryWeightModel{
		CategoryWeightTeacherID:  f.TeacherID,
		CategoryWeightSubjectID:  f.SubjectID,
		CategoryWeightTermID:     f.TermID,
		CategoryWeightCategoryID: f.Categories[categoryName],
		CategoryWeightPercentage: percentage,
	}); err != nil {
		t.Fatalf("seed bobot %s: %v", categoryName, err)
	}
}
