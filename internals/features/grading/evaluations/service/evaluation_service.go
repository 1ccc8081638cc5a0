// file: internals/features/grading/evaluations/service/evaluation_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	academicsService "schoolku_backend/internals/features/academics/service"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================
   EvaluationService (ledger nilai)
========================= */

// GradeListener dipanggil setiap kali sebuah evaluasi ditulis/diubah.
// Implementasinya trigger notifikasi nilai rendah; error listener cuma
// dilog, tidak membatalkan penulisan nilai.
type GradeListener interface {
	OnGradeWritten(ev *evaluationModel.EvaluationModel) ([]uuid.UUID, error)
}

type EvaluationService struct {
	DB         *gorm.DB
	Categories *academicsService.CategoryResolver
	Listener   GradeListener
}

func NewEvaluationService(db *gorm.DB, listener GradeListener) *EvaluationService {
	return &EvaluationService{
		DB:         db,
		Categories: academicsService.NewCategoryResolver(db),
		Listener:   listener,
	}
}

// Create menulis satu nilai baru lalu memanggil listener.
func (s *EvaluationService) Create(ev *evaluationModel.EvaluationModel) error {
	if err := s.DB.Create(ev).Error; err != nil {
		return err
	}
	s.notify(ev)
	return nil
}

// Update mengubah nilai/deskripsi lalu memanggil listener lagi
// (nilai bisa turun melewati ambang setelah koreksi).
func (s *EvaluationService) Update(evaluationID uuid.UUID, value *float64, description *string) (*evaluationModel.EvaluationModel, error) {
	var ev evaluationModel.EvaluationModel
	if err := s.DB.First(&ev, "evaluation_id = ?", evaluationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if value != nil {
		updates["evaluation_value"] = *value
	}
	if description != nil {
		updates["evaluation_description"] = *description
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&ev).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.DB.First(&ev, "evaluation_id = ?", evaluationID).Error; err != nil {
			return nil, err
		}
		s.notify(&ev)
	}
	return &ev, nil
}

func (s *EvaluationService) notify(ev *evaluationModel.EvaluationModel) {
	if s.Listener == nil {
		return
	}
	if _, err := s.Listener.OnGradeWritten(ev); err != nil {
		log.Printf("[ERROR] listener nilai gagal (evaluasi %s): %v", ev.EvaluationID, err)
	}
}

type EvaluationFilter struct {
	StudentID  uuid.UUID
	SubjectID  uuid.UUID
	PeriodID   uuid.UUID
	CategoryID *uuid.UUID

	// Offset/Limit opsional; Limit 0 = tanpa pagination (ambil semua).
	Offset int
	Limit  int
}

// List: entri ledger untuk (siswa, mapel, periode), opsional per kategori,
// plus total baris sebelum pagination.
func (s *EvaluationService) List(f EvaluationFilter) ([]evaluationModel.EvaluationModel, int64, error) {
	q := s.DB.Model(&evaluationModel.EvaluationModel{}).
		Where("evaluation_student_id = ? AND evaluation_subject_id = ? AND evaluation_period_id = ?",
			f.StudentID, f.SubjectID, f.PeriodID)
	if f.CategoryID != nil {
		q = q.Where("evaluation_category_id = ?", *f.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var evaluations []evaluationModel.EvaluationModel
	err := q.Order("evaluation_date ASC, evaluation_created_at ASC").Find(&evaluations).Error
	return evaluations, total, err
}

type CategorySummary struct {
	CategoryID uuid.UUID `json:"category_id"`
	Average    float64   `json:"average"`
	EntryCount int       `json:"entry_count"`
}

// Summary: rata-rata mentah per kategori (tanpa bobot), buat panel guru.
func (s *EvaluationService) Summary(studentID, subjectID, periodID uuid.UUID) ([]CategorySummary, error) {
	evaluations, _, err := s.List(EvaluationFilter{StudentID: studentID, SubjectID: subjectID, PeriodID: periodID})
	if err != nil {
		return nil, err
	}

	sums := map[uuid.UUID]float64{}
	counts := map[uuid.UUID]int{}
	order := []uuid.UUID{}
	for _, ev := range evaluations {
		if counts[ev.EvaluationCategoryID] == 0 {
			order = append(order, ev.EvaluationCategoryID)
		}
		sums[ev.EvaluationCategoryID] += ev.EvaluationValue
		counts[ev.EvaluationCategoryID]++
	}

	summaries := make([]CategorySummary, 0, len(order))
	for _, categoryID := range order {
		summaries = append(summaries, CategorySummary{
			CategoryID: categoryID,
			Average:    helper.Round2(sums[categoryID] / float64(counts[categoryID])),
			EntryCount: counts[categoryID],
		})
	}
	return summaries, nil
}

/* =========================
   Registrasi massal
========================= */

type BulkEntry struct {
	StudentID uuid.UUID
	Value     float64
	Note      string // kalau terisi, menggantikan Description untuk entri ini
}

type BulkRegisterInput struct {
	SubjectID    uuid.UUID
	PeriodID     uuid.UUID
	CategoryName string
	Date         time.Time
	Description  string
	Entries      []BulkEntry
}

type BulkRegisterResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// BulkRegister menulis satu nilai per siswa untuk (kategori, tanggal).
// Siswa yang sudah punya entri pada kunci itu dilewati (idempotent
// terhadap submit ganda form). Satu transaksi, listener dipanggil
// setelah commit.
func (s *EvaluationService) BulkRegister(in BulkRegisterInput) (*BulkRegisterResult, error) {
	categoryID, err := s.Categories.ResolveByName(in.CategoryName)
	if err != nil {
		return nil, err
	}

	date := in.Date.Truncate(24 * time.Hour)
	result := &BulkRegisterResult{}
	written := make([]evaluationModel.EvaluationModel, 0, len(in.Entries))

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range in.Entries {
			var count int64
			if err := tx.Model(&evaluationModel.EvaluationModel{}).
				Where("evaluation_student_id = ? AND evaluation_subject_id = ? AND evaluation_period_id = ? AND evaluation_category_id = ? AND evaluation_date = ?",
					entry.StudentID, in.SubjectID, in.PeriodID, categoryID, date).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				result.Skipped++
				continue
			}

			description := in.Description
			if entry.Note != "" {
				description = entry.Note
			}
			ev := evaluationModel.EvaluationModel{
				EvaluationStudentID:   entry.StudentID,
				EvaluationSubjectID:   in.SubjectID,
				EvaluationPeriodID:    in.PeriodID,
				EvaluationCategoryID:  categoryID,
				EvaluationValue:       entry.Value,
				EvaluationDate:        date,
				EvaluationDescription: description,
			}
			if err := tx.Create(&ev).Error; err != nil {
				return err
			}
			written = append(written, ev)
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range written {
		s.notify(&written[i])
	}
	return result, nil
}

/* =========================
   Registrasi absensi manual (status, bukan angka)
========================= */

// Status absensi yang diterima form manual guru.
const (
	AttendanceStatusPresent   = "presente"
	AttendanceStatusAbsent    = "falta"
	AttendanceStatusLate      = "tarde"
	AttendanceStatusJustified = "justificacion"
)

var ErrInvalidAttendanceStatus = errors.New("status absensi tidak dikenal")

// AttendanceStatusValue: status → nilai ledger, tabel yang sama dengan
// rekonsiliasi sesi geofenced.
func AttendanceStatusValue(status string) (float64, error) {
	switch status {
	case AttendanceStatusPresent:
		return 100, nil
	case AttendanceStatusLate:
		return 50, nil
	case AttendanceStatusJustified:
		return 75, nil
	case AttendanceStatusAbsent:
		return 0, nil
	default:
		return 0, ErrInvalidAttendanceStatus
	}
}

type BulkAttendanceEntry struct {
	StudentID uuid.UUID
	Status    string
	Note      string
}

type BulkAttendanceInput struct {
	SubjectID uuid.UUID
	PeriodID  uuid.UUID
	Date      time.Time
	Entries   []BulkAttendanceEntry
}

// BulkRegisterAttendance: absensi manual tanpa sesi geofenced (mis. guru
// mengisi dari kertas). Status dipetakan ke nilai lalu lewat jalur
// BulkRegister yang sama, kategori "Asistencia".
func (s *EvaluationService) BulkRegisterAttendance(in BulkAttendanceInput) (*BulkRegisterResult, error) {
	entries := make([]BulkEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		value, err := AttendanceStatusValue(e.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (siswa %s)", ErrInvalidAttendanceStatus, e.Status, e.StudentID)
		}
		entries = append(entries, BulkEntry{StudentID: e.StudentID, Value: value, Note: e.Note})
	}
	return s.BulkRegister(BulkRegisterInput{
		SubjectID:    in.SubjectID,
		PeriodID:     in.PeriodID,
		CategoryName: constants.CategoryAttendance,
		Date:         in.Date,
		Description:  "Asistencia manual",
		Entries:      entries,
	})
}
