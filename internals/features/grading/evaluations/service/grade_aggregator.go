// file: internals/features/grading/evaluations/service/grade_aggregator.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/constants"
	academicsModel "schoolku_backend/internals/features/academics/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================
   GradeAggregator
========================= */

// GradeAggregator menghitung nilai akhir per (siswa, mapel, periode):
// skor per kategori × bobot guru, dijumlah, dibulatkan 2 desimal.
//
// Aturan skor per kategori:
//   - "Asistencia": tingkat kehadiran — persentase entri bernilai ≥ 1
//     (hadir/telat/justified menghitung, absen murni tidak)
//   - kategori lain: rata-rata aritmetika nilainya
//
// Kategori tanpa bobot dilewati TANPA error dan TANPA normalisasi ulang:
// pasang bobot 50/50 lalu hanya satu kategori terisi ⇒ maksimal 50.
type GradeAggregator struct {
	DB      *gorm.DB
	Weights *WeightResolver

	// Now dioverride di test; default time.Now
	Now func() time.Time
}

func NewGradeAggregator(db *gorm.DB) *GradeAggregator {
	return &GradeAggregator{
		DB:      db,
		Weights: NewWeightResolver(db),
		Now:     time.Now,
	}
}

// CategoryBreakdown: rincian satu kategori di dalam hasil agregasi.
type CategoryBreakdown struct {
	CategoryID       uuid.UUID `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	Average          float64   `json:"average"`
	WeightPercentage float64   `json:"weight_percentage"`
	Contribution     float64   `json:"contribution"`
	EntryCount       int       `json:"entry_count"`
}

// AggregationResult: hasil lengkap satu perhitungan.
type AggregationResult struct {
	StudentID uuid.UUID           `json:"student_id"`
	SubjectID uuid.UUID           `json:"subject_id"`
	PeriodID  uuid.UUID           `json:"period_id"`
	Score     float64             `json:"score"`
	Breakdown []CategoryBreakdown `json:"breakdown"`
}

// Compute menghitung nilai akhir dan meng-upsert final_performances.
// Tidak ada evaluasi sama sekali ⇒ skor 0, tetap di-upsert.
func (g *GradeAggregator) Compute(teacherID, studentID, subjectID, periodID uuid.UUID) (*AggregationResult, error) {
	var period academicsModel.PeriodModel
	if err := g.DB.First(&period, "period_id = ?", periodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, err
	}

	var evaluations []evaluationModel.EvaluationModel
	if err := g.DB.
		Where("evaluation_student_id = ? AND evaluation_subject_id = ? AND evaluation_period_id = ?",
			studentID, subjectID, periodID).
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	weights, err := g.Weights.ResolveAll(nil, teacherID, subjectID, period.PeriodTermID)
	if err != nil {
		return nil, err
	}

	categoryNames, err := g.loadCategoryNames()
	if err != nil {
		return nil, err
	}

	// Kelompokkan per kategori
	byCategory := map[uuid.UUID][]evaluationModel.EvaluationModel{}
	for _, ev := range evaluations {
		byCategory[ev.EvaluationCategoryID] = append(byCategory[ev.EvaluationCategoryID], ev)
	}

	result := &AggregationResult{
		StudentID: studentID,
		SubjectID: subjectID,
		PeriodID:  periodID,
		Breakdown: []CategoryBreakdown{},
	}

	total := 0.0
	for categoryID, entries := range byCategory {
		weight, ok := weights[categoryID]
		if !ok {
			// guru belum pasang bobot → kategori tidak dihitung
			log.Printf("[INFO] aggregator: kategori %s tanpa bobot, dilewati (siswa=%s mapel=%s)",
				categoryID, studentID, subjectID)
			continue
		}

		name := categoryNames[categoryID]
		average := categoryScore(name, entries)
		contribution := helper.Round2(average * weight / 100)
		total += average * weight / 100

		result.Breakdown = append(result.Breakdown, CategoryBreakdown{
			CategoryID:       categoryID,
			CategoryName:     name,
			Average:          helper.Round2(average),
			WeightPercentage: weight,
			Contribution:     contribution,
			EntryCount:       len(entries),
		})
	}
	result.Score = helper.Round2(total)

	now := g.Now()
	perf := evaluationModel.FinalPerformanceModel{
		FinalPerformanceStudentID:  studentID,
		FinalPerformanceSubjectID:  subjectID,
		FinalPerformancePeriodID:   periodID,
		FinalPerformanceScore:      result.Score,
		FinalPerformanceComputedAt: now,
	}
	if err := g.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "final_performance_student_id"},
			{Name: "final_performance_subject_id"},
			{Name: "final_performance_period_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"final_performance_score",
			"final_performance_computed_at",
			"final_performance_updated_at",
		}),
	}).Create(&perf).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// ComputeForCourse menghitung ulang seluruh siswa sebuah kelas.
// Gagal satu siswa tidak menghentikan sisanya.
func (g *GradeAggregator) ComputeForCourse(teacherID, courseID, subjectID, periodID uuid.UUID) ([]AggregationResult, error) {
	var enrollments []academicsModel.EnrollmentModel
	if err := g.DB.
		Where("enrollment_course_id = ?", courseID).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	results := make([]AggregationResult, 0, len(enrollments))
	for _, e := range enrollments {
		res, err := g.Compute(teacherID, e.EnrollmentStudentID, subjectID, periodID)
		if err != nil {
			log.Printf("[ERROR] aggregator: gagal hitung siswa %s: %v", e.EnrollmentStudentID, err)
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// ComputeAllForStudent menghitung nilai akhir seorang siswa untuk semua
// mata pelajaran di kurikulum kelasnya (lewat course_subjects).
func (g *GradeAggregator) ComputeAllForStudent(teacherID, studentID, periodID uuid.UUID) ([]AggregationResult, error) {
	var enrollment academicsModel.EnrollmentModel
	if err := g.DB.First(&enrollment, "enrollment_student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	var subjectIDs []uuid.UUID
	if err := g.DB.Model(&academicsModel.CourseSubjectModel{}).
		Where("course_subject_course_id = ?", enrollment.EnrollmentCourseID).
		Pluck("course_subject_subject_id", &subjectIDs).Error; err != nil {
		return nil, err
	}

	results := make([]AggregationResult, 0, len(subjectIDs))
	for _, subjectID := range subjectIDs {
		res, err := g.Compute(teacherID, studentID, subjectID, periodID)
		if err != nil {
			log.Printf("[ERROR] aggregator: gagal hitung mapel %s untuk siswa %s: %v", subjectID, studentID, err)
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// ListFinalPerformances: hasil agregasi tersimpan untuk satu siswa,
// dengan offset/limit + total untuk pagination.
func (g *GradeAggregator) ListFinalPerformances(studentID uuid.UUID, periodID *uuid.UUID, offset, limit int) ([]evaluationModel.FinalPerformanceModel, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	q := g.DB.Model(&evaluationModel.FinalPerformanceModel{}).
		Where("final_performance_student_id = ?", studentID)
	if periodID != nil {
		q = q.Where("final_performance_period_id = ?", *periodID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var perfs []evaluationModel.FinalPerformanceModel
	err := q.Order("final_performance_computed_at DESC").Limit(limit).Offset(offset).Find(&perfs).Error
	return perfs, total, err
}

func (g *GradeAggregator) loadCategoryNames() (map[uuid.UUID]string, error) {
	var categories []academicsModel.EvaluationCategoryModel
	if err := g.DB.Find(&categories).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, cat := range categories {
		names[cat.EvaluationCategoryID] = cat.EvaluationCategoryName
	}
	return names, nil
}

// categoryScore: "Asistencia" dinilai sebagai tingkat kehadiran
// (entri ≥ 1 dihitung hadir), selain itu rata-rata biasa.
func categoryScore(categoryName string, entries []evaluationModel.EvaluationModel) float64 {
	if len(entries) == 0 {
		return 0
	}
	if categoryName == constants.CategoryAttendance {
		attended := 0
		for _, ev := range entries {
			if ev.EvaluationValue >= 1 {
				attended++
			}
		}
		return float64(attended) / float64(len(entries)) * 100
	}

	sum := 0.0
	for _, ev := range entries {
		sum += ev.EvaluationValue
	}
	return sum / float64(len(entries))
}
