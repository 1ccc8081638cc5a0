// file: internals/features/grading/evaluations/service/grade_aggregator_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	academicsModel "schoolku_backend/internals/features/academics/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
)

var aggregatorClock = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

// Bobot 50/50, rata-rata 80 dan 60 → nilai akhir 70.00.
func TestComputeWeightedSum(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams, constants.CategoryHomework)

	f.setWeight(t, db, constants.CategoryExams, 50)
	f.setWeight(t, db, constants.CategoryHomework, 50)

	f.addEvaluation(t, db, constants.CategoryExams, 70, 1)
	f.addEvaluation(t, db, constants.CategoryExams, 90, 2) // rata-rata 80
	f.addEvaluation(t, db, constants.CategoryHomework, 60, 3)

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	result, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Score != 70.00 {
		t.Fatalf("score = %.2f, mau 70.00", result.Score)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("breakdown = %d kategori, mau 2", len(result.Breakdown))
	}
}

// Kategori tanpa bobot dilewati tanpa error dan tanpa normalisasi ulang:
// bobot 50 terpasang hanya untuk Exámenes → skor maksimal 50.
func TestComputeSkipsCategoryWithoutWeight(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams, constants.CategoryParticipation)

	f.setWeight(t, db, constants.CategoryExams, 50)
	// Participaciones sengaja tanpa bobot

	f.addEvaluation(t, db, constants.CategoryExams, 100, 1)
	f.addEvaluation(t, db, constants.CategoryParticipation, 100, 2)

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	result, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Score != 50.00 {
		t.Fatalf("score = %.2f, mau 50.00 (hanya Exámenes dihitung)", result.Score)
	}
	if len(result.Breakdown) != 1 {
		t.Fatalf("breakdown = %d kategori, mau 1", len(result.Breakdown))
	}
}

// "Asistencia" dinilai sebagai tingkat kehadiran: entri ≥ 1 dihitung
// hadir. [100, 0, 50, 75] → 3 dari 4 → 75%.
func TestComputeAttendanceUsesPresenceRate(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryAttendance)

	f.setWeight(t, db, constants.CategoryAttendance, 100)

	f.addEvaluation(t, db, constants.CategoryAttendance, 100, 1)
	f.addEvaluation(t, db, constants.CategoryAttendance, 0, 2)
	f.addEvaluation(t, db, constants.CategoryAttendance, 50, 3)
	f.addEvaluation(t, db, constants.CategoryAttendance, 75, 4)

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	result, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Score != 75.00 {
		t.Fatalf("score = %.2f, mau 75.00 (3/4 hadir × bobot 100)", result.Score)
	}
}

// Tanpa evaluasi sama sekali → skor 0, tetap tersimpan.
func TestComputeDegenerateCaseZero(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams)
	f.setWeight(t, db, constants.CategoryExams, 100)

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	result, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("score = %.2f, mau 0", result.Score)
	}

	var count int64
	db.Model(&evaluationModel.FinalPerformanceModel{}).Count(&count)
	if count != 1 {
		t.Fatalf("final_performances = %d baris, mau 1", count)
	}
}

// Compute dua kali → satu baris final_performances (upsert), skor terbaru.
func TestComputeUpsertsFinalPerformance(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams)
	f.setWeight(t, db, constants.CategoryExams, 100)
	f.addEvaluation(t, db, constants.CategoryExams, 60, 1)

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	if _, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID); err != nil {
		t.Fatalf("compute pertama: %v", err)
	}

	f.addEvaluation(t, db, constants.CategoryExams, 100, 2) // rata-rata jadi 80
	result, err := agg.Compute(f.TeacherID, f.StudentID, f.SubjectID, f.PeriodID)
	if err != nil {
		t.Fatalf("compute kedua: %v", err)
	}
	if result.Score != 80.00 {
		t.Fatalf("score = %.2f, mau 80.00", result.Score)
	}

	var perfs []evaluationModel.FinalPerformanceModel
	if err := db.Find(&perfs).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(perfs) != 1 {
		t.Fatalf("final_performances = %d baris, mau 1", len(perfs))
	}
	if perfs[0].FinalPerformanceScore != 80.00 {
		t.Fatalf("skor tersimpan = %.2f, mau 80.00", perfs[0].FinalPerformanceScore)
	}
}

// ComputeAllForStudent mengikuti kurikulum kelas (course_subjects):
// satu hasil per mapel yang terdaftar di kelas siswa.
func TestComputeAllForStudentFollowsCurriculum(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams)
	f.setWeight(t, db, constants.CategoryExams, 100)
	f.addEvaluation(t, db, constants.CategoryExams, 90, 1)

	course := academicsModel.CourseModel{CourseName: "5to A"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	enrollment := academicsModel.EnrollmentModel{
		EnrollmentStudentID: f.StudentID,
		EnrollmentCourseID:  course.CourseID,
		EnrollmentTermID:    f.TermID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	link := academicsModel.CourseSubjectModel{
		CourseSubjectCourseID:  course.CourseID,
		CourseSubjectSubjectID: f.SubjectID,
	}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("seed course_subject: %v", err)
	}

	agg := NewGradeAggregator(db)
	agg.Now = func() time.Time { return aggregatorClock }

	results, err := agg.ComputeAllForStudent(f.TeacherID, f.StudentID, f.PeriodID)
	if err != nil {
		t.Fatalf("ComputeAllForStudent: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, mau 1 (satu mapel di kurikulum)", len(results))
	}
	if results[0].Score != 90.00 {
		t.Fatalf("score = %.2f, mau 90.00", results[0].Score)
	}
}

func TestWeightResolverNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams)

	w := NewWeightResolver(db)
	got, err := w.Resolve(nil, f.TeacherID, f.SubjectID, f.TermID, f.Categories[constants.CategoryExams])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != nil {
		t.Fatalf("bobot = %v, mau nil (belum dipasang)", *got)
	}

	f.setWeight(t, db, constants.CategoryExams, 35)
	got, err = w.Resolve(nil, f.TeacherID, f.SubjectID, f.TermID, f.Categories[constants.CategoryExams])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got == nil || *got != 35 {
		t.Fatalf("bobot = %v, mau 35", got)
	}
}

// List hasil tersimpan: filter periode + offset/limit dengan total.
func TestListFinalPerformancesPagedAndFiltered(t *testing.T) {
	db := newTestDB(t)
	f := seedGrading(t, db, constants.CategoryExams)

	otherPeriod := academicsModel.PeriodModel{PeriodTermID: f.TermID, PeriodName: "Segundo Trimestre"}
	if err := db.Create(&otherPeriod).Error; err != nil {
		t.Fatalf("seed period: %v", err)
	}
	for i, periodID := range []uuid.UUID{f.PeriodID, f.PeriodID, otherPeriod.PeriodID} {
		subject := academicsModel.SubjectModel{SubjectName: "Mapel"}
		if err := db.Create(&subject).Error; err != nil {
			t.Fatalf("seed subject: %v", err)
		}
		perf := evaluationModel.FinalPerformanceModel{
			FinalPerformanceStudentID:  f.StudentID,
			FinalPerformanceSubjectID:  subject.SubjectID,
			FinalPerformancePeriodID:   periodID,
			FinalPerformanceScore:      float64(60 + i),
			FinalPerformanceComputedAt: aggregatorClock,
		}
		if err := db.Create(&perf).Error; err != nil {
			t.Fatalf("seed final performance: %v", err)
		}
	}

	agg := NewGradeAggregator(db)

	all, total, err := agg.ListFinalPerformances(f.StudentID, nil, 0, 0)
	if err != nil {
		t.Fatalf("list semua: %v", err)
	}
	if len(all) != 3 || total != 3 {
		t.Fatalf("semua = %d baris (total %d), mau 3", len(all), total)
	}

	page, total, err := agg.ListFinalPerformances(f.StudentID, nil, 2, 2)
	if err != nil {
		t.Fatalf("halaman: %v", err)
	}
	if len(page) != 1 || total != 3 {
		t.Fatalf("halaman = %d baris (total %d), mau 1 dari 3", len(page), total)
	}

	byPeriod, total, err := agg.ListFinalPerformances(f.StudentID, &f.PeriodID, 0, 0)
	if err != nil {
		t.Fatalf("filter periode: %v", err)
	}
	if len(byPeriod) != 2 || total != 2 {
		t.Fatalf("filter periode = %d baris (total %d), mau 2", len(byPeriod), total)
	}
}
