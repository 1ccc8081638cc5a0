// file: internals/features/attendance/sessions/dto/attendance_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/attendance/sessions/model"
	service "schoolku_backend/internals/features/attendance/sessions/service"
)

/* =========================
   Requests
========================= */

type CreateAttendanceSessionRequest struct {
	AttendanceSessionCourseID  uuid.UUID `json:"attendance_session_course_id" validate:"required"`
	AttendanceSessionSubjectID uuid.UUID `json:"attendance_session_subject_id" validate:"required"`
	AttendanceSessionPeriodID  uuid.UUID `json:"attendance_session_period_id" validate:"required"`

	AttendanceSessionTitle    string     `json:"attendance_session_title" validate:"omitempty,max=160"`
	AttendanceSessionStartsAt *time.Time `json:"attendance_session_starts_at"` // nil = sekarang

	AttendanceSessionToleranceMinutes int `json:"attendance_session_tolerance_minutes" validate:"gte=0,lte=120"`

	AttendanceSessionTeacherLat          float64 `json:"attendance_session_teacher_lat" validate:"gte=-90,lte=90"`
	AttendanceSessionTeacherLon          float64 `json:"attendance_session_teacher_lon" validate:"gte=-180,lte=180"`
	AttendanceSessionAllowedRadiusMeters int     `json:"attendance_session_allowed_radius_meters" validate:"gt=0,lte=5000"`
}

func (r *CreateAttendanceSessionRequest) Normalize() {
	r.AttendanceSessionTitle = strings.TrimSpace(r.AttendanceSessionTitle)
	if r.AttendanceSessionToleranceMinutes == 0 {
		r.AttendanceSessionToleranceMinutes = 10
	}
}

func (r *CreateAttendanceSessionRequest) ToInput(teacherID uuid.UUID, now time.Time) service.CreateSessionInput {
	startsAt := now
	if r.AttendanceSessionStartsAt != nil {
		startsAt = *r.AttendanceSessionStartsAt
	}
	return service.CreateSessionInput{
		TeacherID:           teacherID,
		CourseID:            r.AttendanceSessionCourseID,
		SubjectID:           r.AttendanceSessionSubjectID,
		PeriodID:            r.AttendanceSessionPeriodID,
		Title:               r.AttendanceSessionTitle,
		StartsAt:            startsAt,
		ToleranceMinutes:    r.AttendanceSessionToleranceMinutes,
		TeacherLat:          r.AttendanceSessionTeacherLat,
		TeacherLon:          r.AttendanceSessionTeacherLon,
		AllowedRadiusMeters: r.AttendanceSessionAllowedRadiusMeters,
	}
}

type CheckInRequest struct {
	StudentAttendanceStudentLat float64 `json:"student_attendance_student_lat" validate:"gte=-90,lte=90"`
	StudentAttendanceStudentLon float64 `json:"student_attendance_student_lon" validate:"gte=-180,lte=180"`
	StudentAttendanceNotes      *string `json:"student_attendance_notes,omitempty" validate:"omitempty,max=500"`
}

type JustifyAbsenceRequest struct {
	StudentAttendanceJustificationReason string  `json:"student_attendance_justification_reason" validate:"required,min=3,max=500"`
	StudentAttendanceNotes               *string `json:"student_attendance_notes,omitempty" validate:"omitempty,max=500"`
}

/* =========================
   Responses
========================= */

type CheckInResponse struct {
	Record *model.StudentAttendanceModel `json:"record"`
	Result *service.CheckInResult        `json:"result"`
}

type SessionDetailResponse struct {
	Session *model.AttendanceSessionModel  `json:"session"`
	Records []model.StudentAttendanceModel `json:"records"`
}
