// file: internals/features/attendance/sessions/service/checkin_service_test.go
package service

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	helper "schoolku_backend/internals/helpers"
)

func TestCheckInWithinRadiusOnTime(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	startsAt := testClock.Add(5 * time.Minute)
	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, startsAt))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	record, result, err := checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: schoolLat, StudentLon: schoolLon,
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !record.StudentAttendancePresent {
		t.Error("record belum present")
	}
	if result.Late {
		t.Error("late = true, mau false (sebelum starts_at)")
	}
	if !result.WithinRange || result.DistanceMeters != 0 {
		t.Errorf("result = %+v, mau jarak 0 dalam radius", result)
	}
	if record.StudentAttendanceCheckedInAt == nil {
		t.Error("checked_in_at kosong")
	}
}

func TestCheckInAfterStartIsLate(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	// 3 menit lewat starts_at, masih di dalam toleransi 10 menit
	checkins.Now = func() time.Time { return testClock.Add(3 * time.Minute) }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	record, result, err := checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: schoolLat, StudentLon: schoolLon,
	})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !result.Late || !record.StudentAttendanceLate {
		t.Error("mau late = true")
	}
}

func TestCheckInOutsideRadiusRejectedWithDistance(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock.Add(5*time.Minute)))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	// ~1.1 km dari sekolah
	farLat := schoolLat + 0.01
	_, _, err = checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: farLat, StudentLon: schoolLon,
	})

	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, mau OutOfRangeError", err)
	}
	wantDistance := helper.HaversineDistanceMeters(schoolLat, schoolLon, farLat, schoolLon)
	if math.Abs(oor.DistanceMeters-wantDistance) > 0.01 {
		t.Errorf("jarak di error = %.2f, mau %.2f", oor.DistanceMeters, wantDistance)
	}
	if oor.AllowedRadiusMeters != 100 {
		t.Errorf("radius di error = %d, mau 100", oor.AllowedRadiusMeters)
	}

	// penolakan tidak boleh menandai hadir
	records, err := checkins.ListSessionRecords(session.AttendanceSessionID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if records[0].StudentAttendancePresent {
		t.Error("record jadi present padahal di luar radius")
	}
}

func TestCheckInSecondAttemptRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock.Add(5*time.Minute)))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	in := CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: schoolLat, StudentLon: schoolLon,
	}
	if _, _, err := checkins.CheckIn(in); err != nil {
		t.Fatalf("check-in pertama: %v", err)
	}
	_, _, err = checkins.CheckIn(in)
	if !errors.Is(err, ErrAlreadyMarked) {
		t.Fatalf("check-in kedua: err = %v, mau ErrAlreadyMarked", err)
	}
}

func TestCheckInAfterToleranceWindowRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock.Add(11 * time.Minute) } // toleransi 10

	session, err := mgr.CreateSession(baseSessionInput(f, testClock))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, _, err = checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: schoolLat, StudentLon: schoolLon,
	})
	if !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("err = %v, mau ErrSessionNotActive", err)
	}
}

func TestCheckInUnknownStudentRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock.Add(5*time.Minute)))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	_, _, err = checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: uuid.New(),
		StudentLat: schoolLat, StudentLon: schoolLon,
	})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("err = %v, mau ErrRecordNotFound", err)
	}
}

// Pre-flight harus memberi putusan yang sama dengan CheckIn sungguhan.
func TestValidateCanCheckInMatchesCheckIn(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock.Add(5*time.Minute)))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	verdict, err := checkins.ValidateCanCheckIn(session.AttendanceSessionID, f.StudentIDs[0], schoolLat, schoolLon)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !verdict.CanCheckIn || !verdict.SessionActive {
		t.Fatalf("verdict = %+v, mau boleh check-in", verdict)
	}
	if verdict.RemainingMinutes == nil || *verdict.RemainingMinutes != 15 {
		t.Errorf("remaining = %v, mau 15 (5 menit ke starts_at + 10 toleransi)", verdict.RemainingMinutes)
	}

	// putusan di luar radius juga harus paralel
	farVerdict, err := checkins.ValidateCanCheckIn(session.AttendanceSessionID, f.StudentIDs[0], schoolLat+0.01, schoolLon)
	if err != nil {
		t.Fatalf("validate jauh: %v", err)
	}
	if farVerdict.CanCheckIn {
		t.Error("verdict jauh bilang boleh, mau tidak")
	}
	if farVerdict.WithinRange == nil || *farVerdict.WithinRange {
		t.Error("within_range = true, mau false")
	}

	// dan setelah check-in sungguhan, pre-flight harus bilang sudah
	if _, _, err := checkins.CheckIn(CheckInInput{
		SessionID: session.AttendanceSessionID, StudentID: f.StudentIDs[0],
		StudentLat: schoolLat, StudentLon: schoolLon,
	}); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	again, err := checkins.ValidateCanCheckIn(session.AttendanceSessionID, f.StudentIDs[0], schoolLat, schoolLon)
	if err != nil {
		t.Fatalf("validate ulang: %v", err)
	}
	if again.CanCheckIn {
		t.Error("verdict setelah check-in masih bilang boleh")
	}
}

func TestJustifyAbsenceAfterClose(t *testing.T) {
	db := newTestDB(t)
	f := seedClass(t, db, 1, true)

	mgr := NewSessionManager(db)
	mgr.Now = func() time.Time { return testClock }
	checkins := NewCheckInService(db)
	checkins.Now = func() time.Time { return testClock }

	session, err := mgr.CreateSession(baseSessionInput(f, testClock))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := mgr.CloseSession(session.AttendanceSessionID); err != nil {
		t.Fatalf("close: %v", err)
	}

	record, err := checkins.JustifyAbsence(JustifyInput{
		SessionID: session.AttendanceSessionID,
		StudentID: f.StudentIDs[0],
		Reason:    "Enfermedad",
	})
	if err != nil {
		t.Fatalf("justify setelah close: %v", err)
	}
	if !record.StudentAttendanceJustified {
		t.Error("justified = false")
	}
	if record.StudentAttendanceJustificationReason == nil || *record.StudentAttendanceJustificationReason != "Enfermedad" {
		t.Errorf("reason = %v, mau 'Enfermedad'", record.StudentAttendanceJustificationReason)
	}
	if record.AttendanceValue() != 75 {
		t.Errorf("nilai = %.0f, mau 75", record.AttendanceValue())
	}
}
