// file: internals/features/attendance/sessions/service/setup_test.go
package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	database "schoolku_backend/internals/databases"
	academicsModel "schoolku_backend/internals/features/academics/model"
	attendanceModel "schoolku_backend/internals/features/attendance/sessions/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
)

// newTestDB: sqlite in-memory dengan skema + index penjaga yang sama
// dengan produksi (partial unique index didukung sqlite).
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
	// satu koneksi = satu memori; pool >1 bikin tabel "hilang"
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&academicsModel.TeacherModel{},
		&academicsModel.StudentModel{},
		&academicsModel.GuardianModel{},
		&academicsModel.GuardianStudentModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.CourseModel{},
		&academicsModel.AcademicTermModel{},
		&academicsModel.PeriodModel{},
		&academicsModel.EnrollmentModel{},
		&academicsModel.EvaluationCategoryModel{},
		&attendanceModel.AttendanceSessionModel{},
		&attendanceModel.StudentAttendanceModel{},
		&evaluationModel.EvaluationModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	for _, stmt := range database.GuardIndexes() {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("guard index: %v", err)
		}
	}
	return db
}

type classFixture struct {
	TeacherID  uuid.UUID
	CourseID   uuid.UUID
	SubjectID  uuid.UUID
	TermID     uuid.UUID
	PeriodID   uuid.UUID
	StudentIDs []uuid.UUID
}

// seedClass: guru + kelas + mapel + periode + n siswa ter-enroll.
func seedClass(t *testing.T, db *gorm.DB, numStudents int, withAttendanceCategory bool) *classFixture {
	t.Helper()

	teacher := academicsModel.TeacherModel{TeacherName: "Prof. Rojas"}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	course := academicsModel.CourseModel{CourseName: "5to A"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
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

	if withAttendanceCategory {
		cat := academicsModel.EvaluationCategoryModel{EvaluationCategoryName: constants.CategoryAttendance}
		if err := db.Create(&cat).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	f := &classFixture{
		TeacherID: teacher.TeacherID,
		CourseID:  course.CourseID,
		SubjectID: subject.SubjectID,
		TermID:    term.AcademicTermID,
		PeriodID:  period.PeriodID,
	}
	for i := 0; i < numStudents; i++ {
		student := academicsModel.StudentModel{StudentName: "Siswa", StudentLastName: string(rune('A' + i))}
		if err := db.Create(&student).Error; err != nil {
			t.Fatalf("seed student: %v", err)
		}
		enrollment := academicsModel.EnrollmentModel{
			EnrollmentStudentID: student.StudentID,
			EnrollmentCourseID:  course.CourseID,
			EnrollmentTermID:    term.AcademicTermID,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
		f.StudentIDs = append(f.StudentIDs, student.StudentID)
	}
	return f
}

// Koordinat sekolah (La Paz) dipakai semua test geofence.
const (
	schoolLat = -16.5
	schoolLon = -68.15
)

var testClock = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func baseSessionInput(f *classFixture, startsAt time.Time) CreateSessionInput {
	return CreateSessionInput{
		TeacherID:           f.TeacherID,
		CourseID:            f.CourseID,
		SubjectID:           f.SubjectID,
		PeriodID:            f.PeriodID,
		Title:               "Clase de álgebra",
		StartsAt:            startsAt,
		ToleranceMinutes:    10,
		TeacherLat:          schoolLat,
		TeacherLon:          schoolLon,
		AllowedRadiusMeters: 100,
	}
}
