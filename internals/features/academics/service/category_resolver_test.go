// file: internals/features/academics/service/category_resolver_test.go
package service

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	academicsModel "schoolku_backend/internals/features/academics/model"
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

	if err := db.AutoMigrate(&academicsModel.EvaluationCategoryModel{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestResolveByNameCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	cat := academicsModel.EvaluationCategoryModel{EvaluationCategoryName: constants.CategoryAttendance}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := NewCategoryResolver(db)
	for _, name := range []string{"Asistencia", "asistencia", "ASISTENCIA", "  Asistencia  "} {
		got, err := r.ResolveByName(name)
		if err != nil {
			t.Fatalf("ResolveByName(%q): %v", name, err)
		}
		if got != cat.EvaluationCategoryID {
			t.Errorf("ResolveByName(%q) = %s, mau %s", name, got, cat.EvaluationCategoryID)
		}
	}
}

func TestResolveByNameUnknown(t *testing.T) {
	db := newTestDB(t)
	r := NewCategoryResolver(db)

	_, err := r.ResolveByName("No Existe")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err = %v, mau ErrCategoryNotFound", err)
	}

	_, err = r.ResolveByName("   ")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err kosong = %v, mau ErrCategoryNotFound", err)
	}
}
