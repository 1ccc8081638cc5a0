// file: internals/features/academics/service/category_resolver.go
package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsModel "schoolku_backend/internals/features/academics/model"
)

// ErrCategoryNotFound: kategori evaluasi tidak terdaftar (mis. "Asistencia"
// belum di-seed) — pemanggil memutuskan apakah ini fatal.
var ErrCategoryNotFound = errors.New("kategori evaluasi tidak ditemukan")

// CategoryResolver memetakan nama kategori → id. Satu-satunya jalan resolusi
// kategori; jangan hardcode id angka di call site.
type CategoryResolver struct{ DB *gorm.DB }

func NewCategoryResolver(db *gorm.DB) *CategoryResolver {
	return &CategoryResolver{DB: db}
}

// ResolveByName: lookup case-insensitive ("asistencia" == "Asistencia").
func (r *CategoryResolver) ResolveByName(name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrCategoryNotFound
	}

	var cat academicsModel.EvaluationCategoryModel
	err := r.DB.
		Where("LOWER(evaluation_category_name) = LOWER(?)", name).
		First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrCategoryNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return cat.EvaluationCategoryID, nil
}

// ResolveByNameTx: varian yang ikut transaksi pemanggil.
func (r *CategoryResolver) ResolveByNameTx(tx *gorm.DB, name string) (uuid.UUID, error) {
	return (&CategoryResolver{DB: tx}).ResolveByName(name)
}
