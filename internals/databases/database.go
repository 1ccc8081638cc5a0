package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	academicsModel "schoolku_backend/internals/features/academics/model"
	attendanceModel "schoolku_backend/internals/features/attendance/sessions/model"
	evaluationModel "schoolku_backend/internals/features/grading/evaluations/model"
	notificationModel "schoolku_backend/internals/features/home/notifications/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ Gunakan URL/DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer (mis. 6543) dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=schoolku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// ⚖️ Sesuaikan dengan limit Supabase/PgBouncer
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate semua model + index unik yang jadi
// penjaga invariant (satu sesi aktif, dedup ledger & notifikasi).
func Migrate() {
	if err := DB.AutoMigrate(
		// academics
		&academicsModel.TeacherModel{},
		&academicsModel.StudentModel{},
		&academicsModel.GuardianModel{},
		&academicsModel.GuardianStudentModel{},
		&academicsModel.SubjectModel{},
		&academicsModel.CourseModel{},
		&academicsModel.CourseSubjectModel{},
		&academicsModel.AcademicTermModel{},
		&academicsModel.PeriodModel{},
		&academicsModel.EnrollmentModel{},
		&academicsModel.EvaluationCategoryModel{},
		// attendance
		&attendanceModel.AttendanceSessionModel{},
		&attendanceModel.StudentAttendanceModel{},
		// grading
		&evaluationModel.EvaluationModel{},
		&evaluationModel.CategoryWeightModel{},
		&evaluationModel.FinalPerformanceModel{},
		// notifications
		&notificationModel.NotificationModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}

	for _, stmt := range GuardIndexes() {
		if err := DB.Exec(stmt).Error; err != nil {
			log.Fatalf("❌ Gagal membuat index penjaga: %v", err)
		}
	}
	log.Println("✅ Migrasi selesai.")
}

// GuardIndexes: index yang tidak bisa dinyatakan lewat tag gorm (partial).
// Dipakai juga oleh test setup supaya semantik klaim sama persis.
func GuardIndexes() []string {
	return []string{
		// Invariant: maksimal satu sesi 'active' per (teacher, course, subject).
		// Race create-create jatuh ke unique violation, bukan double insert.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_sessions_active_one
			ON attendance_sessions (attendance_session_teacher_id, attendance_session_course_id, attendance_session_subject_id)
			WHERE attendance_session_status = 'active'`,
	}
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// WarmUpQueries: query ringan supaya pool "keisi" & siap dipakai.
func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
