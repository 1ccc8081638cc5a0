// file: internals/features/grading/evaluations/service/weight_resolver.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
)

/* =========================
   WeightResolver
========================= */

// WeightResolver mencari bobot persen yang dipasang guru per
// (mapel, gestión, kategori). Bobot tidak wajib total 100 dan
// tidak dinormalisasi: kategori tanpa bobot dilewati diam-diam
// oleh aggregator.
type WeightResolver struct {
	DB *gorm.DB
}

func NewWeightResolver(db *gorm.DB) *WeightResolver {
	return &WeightResolver{DB: db}
}

// Resolve mengembalikan persentase bobot, atau nil kalau guru belum
// memasang bobot untuk kategori tersebut.
func (w *WeightResolver) Resolve(tx *gorm.DB, teacherID, subjectID, termID, categoryID uuid.UUID) (*float64, error) {
	if tx == nil {
		tx = w.DB
	}
	var weight evaluationModel.CategoryWeightModel
	err := tx.
		Where("category_weight_teacher_id = ? AND category_weight_subject_id = ? AND category_weight_term_id = ? AND category_weight_category_id = ?",
			teacherID, subjectID, termID, categoryID).
		First(&weight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &weight.CategoryWeightPercentage, nil
}

// ResolveAll memuat seluruh bobot guru untuk (mapel, gestión) sekaligus,
// di-keyed per kategori. Dipakai aggregator biar tidak N+1.
func (w *WeightResolver) ResolveAll(tx *gorm.DB, teacherID, subjectID, termID uuid.UUID) (map[uuid.UUID]float64, error) {
	if tx == nil {
		tx = w.DB
	}
	var weights []evaluationModel.CategoryWeightModel
	if err := tx.
		Where("category_weight_teacher_id = ? AND category_weight_subject_id = ? AND category_weight_term_id = ?",
			teacherID, subjectID, termID).
		Find(&weights).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(weights))
	for _, cw := range weights {
		out[cw.CategoryWeightCategoryID] = cw.CategoryWeightPercentage
	}
	return out, nil
}

// Upsert memasang atau memperbarui satu bobot (idempotent, kunci
// uq_category_weight).
func (w *WeightResolver) Upsert(weight *evaluationModel.CategoryWeightModel) error {
	return w.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "category_weight_teacher_id"},
			{Name: "category_weight_subject_id"},
			{Name: "category_weight_term_id"},
			{Name: "category_weight_category_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"category_weight_percentage", "category_weight_updated_at"}),
	}).Create(weight).Error
}

// ListForTeacher: semua bobot milik guru pada (mapel, gestión).
func (w *WeightResolver) ListForTeacher(teacherID, subjectID, termID uuid.UUID) ([]evaluationModel.CategoryWeightModel, error) {
	var weights []evaluationModel.CategoryWeightModel
	err := w.DB.
		Where("category_weight_teacher_id = ? AND category_weight_subject_id = ? AND category_weight_term_id = ?",
			teacherID, subjectID, termID).
		Order("category_weight_created_at ASC").
		Find(&weights).Error
	return weights, err
}
