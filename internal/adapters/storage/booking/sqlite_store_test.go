package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"fitclass/internal/adapters/storage"
	domain "fitclass/internal/domain/booking"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Referenced rows for foreign keys.
	mustExec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("seed exec failed: %v", err)
		}
	}
	for _, id := range []string{"t1", "m1", "m2", "m3"} {
		mustExec("INSERT INTO user (id, email, password_hash, name, birthday, role, created_at) VALUES (?, ?, 'h', ?, '1990-01-01', ?, '2030-01-01 08:00:00')",
			id, id+"@example.com", "User "+id, roleFor(id))
	}
	mustExec("INSERT INTO fitness_class (id, trainer_id, trainer_name, title, start_date, end_date, capacity, location, created_at) VALUES ('c1', 't1', 'User t1', 'Yoga', '2030-01-02 09:00:00', '2030-01-02 10:00:00', 10, 'Studio A', '2030-01-01 08:00:00')")
	mustExec("INSERT INTO fitness_class (id, trainer_id, trainer_name, title, start_date, end_date, capacity, location, created_at) VALUES ('c2', 't1', 'User t1', 'Spin', '2030-01-03 09:00:00', '2030-01-03 10:00:00', 10, 'Studio B', '2030-01-01 08:00:00')")
	return db
}

func roleFor(id string) string {
	if id == "t1" {
		return "trainer"
	}
	return "member"
}

func testBooking(id, classID, userID string, at time.Time) domain.Booking {
	return domain.Booking{
		ID:          id,
		ClassID:     classID,
		UserID:      userID,
		UserEmail:   userID + "@example.com",
		UserName:    "User " + userID,
		BookingTime: at,
	}
}

var baseTime = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSQLiteStore_SaveAndExists(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, testBooking("b1", "c1", "m1", baseTime)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	exists, err := store.Exists(ctx, "c1", "m1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected booking to exist")
	}

	exists, err = store.Exists(ctx, "c1", "m2")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected no booking for m2")
	}
}

func TestSQLiteStore_SaveDuplicatePair(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, testBooking("b1", "c1", "m1", baseTime)); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	err := store.Save(ctx, testBooking("b2", "c1", "m1", baseTime.Add(time.Minute)))
	if !errors.Is(err, domain.ErrAlreadyBooked) {
		t.Errorf("expected ErrAlreadyBooked, got %v", err)
	}

	// Same member in a different class is fine.
	if err := store.Save(ctx, testBooking("b3", "c2", "m1", baseTime)); err != nil {
		t.Errorf("Save in second class failed: %v", err)
	}
}

func TestSQLiteStore_CountMembers(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	trainerBooking := testBooking("b0", "c1", "t1", baseTime)
	trainerBooking.IsTrainer = true
	if err := store.Save(ctx, trainerBooking); err != nil {
		t.Fatalf("Save trainer booking failed: %v", err)
	}
	for i, member := range []string{"m1", "m2"} {
		b := testBooking(fmt.Sprintf("b%d", i+1), "c1", member, baseTime.Add(time.Duration(i)*time.Minute))
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("Save %s failed: %v", b.ID, err)
		}
	}

	count, err := store.CountMembers(ctx, "c1")
	if err != nil {
		t.Fatalf("CountMembers failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 member bookings, got %d", count)
	}
}

func TestSQLiteStore_ListByClassOrder(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	// Inserted newest-first to prove the ORDER BY does the work.
	if err := store.Save(ctx, testBooking("b2", "c1", "m2", baseTime.Add(time.Hour))); err != nil {
		t.Fatalf("Save b2 failed: %v", err)
	}
	if err := store.Save(ctx, testBooking("b1", "c1", "m1", baseTime)); err != nil {
		t.Fatalf("Save b1 failed: %v", err)
	}
	if err := store.Save(ctx, testBooking("b3", "c2", "m3", baseTime)); err != nil {
		t.Fatalf("Save b3 failed: %v", err)
	}

	got, err := store.ListByClass(ctx, "c1")
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	if got[0].ID != "b1" || got[1].ID != "b2" {
		t.Errorf("expected oldest-first [b1 b2], got [%s %s]", got[0].ID, got[1].ID)
	}
	if got[0].UserEmail != "m1@example.com" {
		t.Errorf("expected snapshot email m1@example.com, got %s", got[0].UserEmail)
	}
}

func TestSQLiteStore_ListByUserOrder(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, testBooking("b1", "c1", "m1", baseTime)); err != nil {
		t.Fatalf("Save b1 failed: %v", err)
	}
	if err := store.Save(ctx, testBooking("b2", "c2", "m1", baseTime.Add(time.Hour))); err != nil {
		t.Fatalf("Save b2 failed: %v", err)
	}

	got, err := store.ListByUser(ctx, "m1")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	if got[0].ID != "b2" || got[1].ID != "b1" {
		t.Errorf("expected most-recent-first [b2 b1], got [%s %s]", got[0].ID, got[1].ID)
	}
	if !got[0].BookingTime.Equal(baseTime.Add(time.Hour)) {
		t.Errorf("round-tripped booking time differs: %v", got[0].BookingTime)
	}
}
