package constants

/* =========================
   Role user (klaim JWT)
========================= */

const (
	RoleAdmin    = "admin"
	RoleTeacher  = "teacher"
	RoleStudent  = "student"
	RoleGuardian = "guardian"
)

// Kategori evaluasi bawaan (dipakai resolver, bukan hardcode id angka)
const (
	CategoryAttendance    = "Asistencia"
	CategoryParticipation = "Participaciones"
	CategoryExams         = "Exámenes"
	CategoryHomework      = "Tareas"
)

// Tag notifikasi
const (
	NotificationTypeLowGrade   = "calificacion_baja"
	NotificationTypeEvaluation = "evaluacion"
	NotificationTypeGeneral    = "general"
)
