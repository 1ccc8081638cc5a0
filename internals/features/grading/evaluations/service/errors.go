// file: internals/features/grading/evaluations/service/errors.go
package service

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluasi tidak ditemukan")
	ErrStudentNotFound    = errors.New("siswa tidak ditemukan")
	ErrPeriodNotFound     = errors.New("periode tidak ditemukan")
)
