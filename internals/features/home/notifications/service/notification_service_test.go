// file: internals/features/home/notifications/service/notification_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	notificationModel "schoolku_backend/internals/features/home/notifications/model"
)

func seedNotification(t *testing.T, db *gorm.DB, guardianID uuid.UUID, read bool) *notificationModel.NotificationModel {
	t.Helper()
	n := &notificationModel.NotificationModel{
		NotificationGuardianID: guardianID,
		NotificationStudentID:  uuid.New(),
		NotificationType:       constants.NotificationTypeGeneral,
		NotificationTitle:      "Aviso",
		NotificationMessage:    "Mensaje de prueba",
		NotificationRead:       read,
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("seed notifikasi: %v", err)
	}
	return n
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := newTestDB(t)
	guardianID := uuid.New()
	otherGuardian := uuid.New()

	n1 := seedNotification(t, db, guardianID, false)
	seedNotification(t, db, guardianID, false)
	seedNotification(t, db, otherGuardian, false)

	svc := NewNotificationService(db)

	count, err := svc.UnreadCount(guardianID)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("unread = %d, mau 2", count)
	}

	ok, err := svc.MarkRead(guardianID, n1.NotificationID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !ok {
		t.Fatal("MarkRead = false, mau true")
	}

	count, _ = svc.UnreadCount(guardianID)
	if count != 1 {
		t.Fatalf("unread setelah mark = %d, mau 1", count)
	}
}

// Wali tidak bisa menandai notifikasi milik wali lain.
func TestMarkReadOtherGuardiansNotification(t *testing.T) {
	db := newTestDB(t)
	owner := uuid.New()
	intruder := uuid.New()
	n := seedNotification(t, db, owner, false)

	svc := NewNotificationService(db)
	ok, err := svc.MarkRead(intruder, n.NotificationID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if ok {
		t.Fatal("wali lain berhasil menandai, mau ditolak")
	}
}

func TestMarkAllRead(t *testing.T) {
	db := newTestDB(t)
	guardianID := uuid.New()
	seedNotification(t, db, guardianID, false)
	seedNotification(t, db, guardianID, false)
	seedNotification(t, db, guardianID, true)

	svc := NewNotificationService(db)
	updated, err := svc.MarkAllRead(guardianID)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if updated != 2 {
		t.Fatalf("updated = %d, mau 2 (yang sudah read tidak dihitung)", updated)
	}
}

func TestListForGuardianUnreadFilter(t *testing.T) {
	db := newTestDB(t)
	guardianID := uuid.New()
	seedNotification(t, db, guardianID, false)
	seedNotification(t, db, guardianID, true)

	svc := NewNotificationService(db)

	all, total, err := svc.ListForGuardian(guardianID, false, 0, 0)
	if err != nil {
		t.Fatalf("list semua: %v", err)
	}
	if len(all) != 2 || total != 2 {
		t.Fatalf("semua = %d (total %d), mau 2", len(all), total)
	}

	unread, total, err := svc.ListForGuardian(guardianID, true, 0, 0)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 1 || total != 1 || unread[0].NotificationRead {
		t.Fatalf("unread = %d (total %d), mau 1 yang belum dibaca", len(unread), total)
	}
}

// Offset/limit memotong halaman, total tetap seluruh baris yang cocok.
func TestListForGuardianPagination(t *testing.T) {
	db := newTestDB(t)
	guardianID := uuid.New()
	for i := 0; i < 5; i++ {
		seedNotification(t, db, guardianID, false)
	}

	svc := NewNotificationService(db)

	page1, total, err := svc.ListForGuardian(guardianID, false, 0, 2)
	if err != nil {
		t.Fatalf("halaman 1: %v", err)
	}
	if len(page1) != 2 || total != 5 {
		t.Fatalf("halaman 1 = %d baris (total %d), mau 2 dari 5", len(page1), total)
	}

	page3, total, err := svc.ListForGuardian(guardianID, false, 4, 2)
	if err != nil {
		t.Fatalf("halaman 3: %v", err)
	}
	if len(page3) != 1 || total != 5 {
		t.Fatalf("halaman 3 = %d baris (total %d), mau 1 dari 5", len(page3), total)
	}
}

func TestPruneReadDeletesOnlyOldRead(t *testing.T) {
	db := newTestDB(t)
	guardianID := uuid.New()

	oldRead := seedNotification(t, db, guardianID, true)
	seedNotification(t, db, guardianID, true) // read tapi baru
	oldUnread := seedNotification(t, db, guardianID, false)

	// mundurkan created_at dua notifikasi supaya lewat cutoff
	past := time.Now().Add(-100 * 24 * time.Hour)
	db.Model(&notificationModel.NotificationModel{}).
		Where("notification_id IN ?", []uuid.UUID{oldRead.NotificationID, oldUnread.NotificationID}).
		Update("notification_created_at", past)

	svc := NewNotificationService(db)
	deleted, err := svc.PruneRead(90 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneRead: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, mau 1 (hanya yang read dan lama)", deleted)
	}

	var count int64
	db.Model(&notificationModel.NotificationModel{}).Count(&count)
	if count != 2 {
		t.Fatalf("sisa = %d, mau 2", count)
	}
}
