// file: internals/features/attendance/sessions/service/errors.go
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

/* =========================
   Error domain absensi
========================= */

var (
	// ConflictError: sudah ada sesi 'active' untuk (guru, kelas, mapel)
	ErrDuplicateActiveSession = errors.New("masih ada sesi aktif untuk kombinasi guru, kelas, dan mata pelajaran ini")

	// StateError
	ErrSessionNotActive = errors.New("sesi tidak aktif atau sudah kedaluwarsa")

	// NotFoundError
	ErrSessionNotFound = errors.New("sesi absensi tidak ditemukan")
	ErrRecordNotFound  = errors.New("siswa tidak terdaftar pada sesi ini")

	// AlreadyMarkedError
	ErrAlreadyMarked = errors.New("siswa sudah melakukan check-in pada sesi ini")

	// ConfigurationError: kategori "Asistencia" belum terdaftar
	ErrAttendanceCategoryMissing = errors.New("kategori evaluasi 'Asistencia' tidak ditemukan")
)

// OutOfRangeError membawa jarak terhitung untuk ditampilkan ke siswa.
type OutOfRangeError struct {
	DistanceMeters      float64
	AllowedRadiusMeters int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("di luar radius yang diizinkan (%dm), jarak kamu: %.2fm",
		e.AllowedRadiusMeters, e.DistanceMeters)
}

// isUniqueViolation: deteksi pelanggaran unique di level storage.
// Postgres → pq error 23505; sqlite (test) → pesan "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
