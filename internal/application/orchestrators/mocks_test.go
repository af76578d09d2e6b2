package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fitclass/internal/adapters/email"
	"fitclass/internal/domain/booking"
	"fitclass/internal/domain/fitnessclass"
	"fitclass/internal/domain/user"
)

var fixedTime = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

// seqID returns a generator producing test-id-001, test-id-002, ...
func seqID() func() string {
	var n int64
	return func() string {
		return fmt.Sprintf("test-id-%03d", atomic.AddInt64(&n, 1))
	}
}

// --- user store mock ---

type mockUserStore struct {
	mu     sync.Mutex
	users  map[string]user.User // keyed by ID
	getErr error                // forced lookup failure, if set
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]user.User)}
}

// Save implements UserStore.
// PRE: valid parameters
// POST: returns expected result
func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	m.users[u.ID] = u
	return nil
}

// GetByID implements UserStore.
// PRE: valid parameters
// POST: returns expected result
func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return user.User{}, m.getErr
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return user.User{}, fmt.Errorf("user not found: %w", sql.ErrNoRows)
}

// GetByEmail implements UserStore.
// PRE: valid parameters
// POST: returns expected result
func (m *mockUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return user.User{}, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, fmt.Errorf("user not found: %w", sql.ErrNoRows)
}

// --- class store mock ---

type mockClassStore struct {
	mu      sync.Mutex
	classes map[string]fitnessclass.FitnessClass
	getErr  error // forced lookup failure, if set
}

func newMockClassStore() *mockClassStore {
	return &mockClassStore{classes: make(map[string]fitnessclass.FitnessClass)}
}

// GetByID implements ClassLookupStore.
// PRE: valid parameters
// POST: returns expected result
func (m *mockClassStore) GetByID(_ context.Context, id string) (fitnessclass.FitnessClass, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return fitnessclass.FitnessClass{}, m.getErr
	}
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return fitnessclass.FitnessClass{}, fmt.Errorf("fitness class not found: %w", sql.ErrNoRows)
}

// Save implements ClassStore.
// PRE: valid parameters
// POST: class is persisted
func (m *mockClassStore) Save(_ context.Context, c fitnessclass.FitnessClass) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[c.ID] = c
	return nil
}

// HasOverlap implements ClassStore with the same half-open interval test as
// the SQLite store.
// PRE: valid parameters
// POST: returns true if an overlapping class exists for the trainer
func (m *mockClassStore) HasOverlap(_ context.Context, trainerID string, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.classes {
		if c.TrainerID == trainerID && c.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// --- booking store mock ---

type mockBookingStore struct {
	mu       sync.Mutex
	bookings map[string]booking.Booking
	saveErr  error
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]booking.Booking)}
}

// Save implements BookingStore.
// PRE: valid parameters
// POST: booking is persisted
func (m *mockBookingStore) Save(_ context.Context, b booking.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.bookings[b.ID] = b
	return nil
}

// Exists implements BookingStore.
// PRE: valid parameters
// POST: returns true if a (class, user) booking exists
func (m *mockBookingStore) Exists(_ context.Context, classID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ClassID == classID && b.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// CountMembers implements BookingStore.
// PRE: valid parameters
// POST: returns the non-trainer booking count for the class
func (m *mockBookingStore) CountMembers(_ context.Context, classID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, b := range m.bookings {
		if b.ClassID == classID && !b.IsTrainer {
			count++
		}
	}
	return count, nil
}

// ListByClass implements ReminderBookingStore, ascending by booking time.
// PRE: valid parameters
// POST: returns bookings for the class oldest-first
func (m *mockBookingStore) ListByClass(_ context.Context, classID string) ([]booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []booking.Booking
	for _, b := range m.bookings {
		if b.ClassID == classID {
			result = append(result, b)
		}
	}
	sortBookings(result, false)
	return result, nil
}

// ListByUser implements BookingListStore, descending by booking time.
// PRE: valid parameters
// POST: returns bookings for the user most-recent-first
func (m *mockBookingStore) ListByUser(_ context.Context, userID string) ([]booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []booking.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	sortBookings(result, true)
	return result, nil
}

func sortBookings(bookings []booking.Booking, descending bool) {
	for i := 1; i < len(bookings); i++ {
		for j := i; j > 0; j-- {
			before := bookings[j].BookingTime.Before(bookings[j-1].BookingTime)
			if before == descending {
				break
			}
			bookings[j], bookings[j-1] = bookings[j-1], bookings[j]
		}
	}
}

// --- email sender mock ---

type sentMail struct {
	To      []string
	Subject string
	HTML    string
}

type mockSender struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo string // recipient address that fails, if set
}

// Send implements email.Sender, recording each request.
// PRE: valid request
// POST: request recorded; fails if the recipient matches failTo
func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo != "" && len(req.To) > 0 && req.To[0] == m.failTo {
		return email.SendResult{}, errors.New("smtp 550: mailbox unavailable")
	}
	m.sent = append(m.sent, sentMail{To: req.To, Subject: req.Subject, HTML: req.HTML})
	return email.SendResult{MessageID: fmt.Sprintf("mock-%d", len(m.sent))}, nil
}
