package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "reservo/database/repository/booking"
	resourceRepo "reservo/database/repository/resource"
	"reservo/models"
)

// memStore is an in-memory stand-in for both repositories. Its
// CreateBookingAtomically honors the same version guard as the Mongo
// implementation, which is what the race test below depends on.
type memStore struct {
	mu        sync.Mutex
	resources map[string]*models.Resource
	bookings  map[string]*models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		resources: make(map[string]*models.Resource),
		bookings:  make(map[string]*models.Booking),
	}
}

func (m *memStore) GetByID(id string) (*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.resources[id]
	if !ok {
		return nil, resourceRepo.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memStore) ListByOwner(ownerID string) ([]models.Resource, error) { return nil, nil }

func (m *memStore) Create(res *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *res
	m.resources[res.ID] = &cp
	return nil
}

func (m *memStore) Update(res *models.Resource) error { return nil }
func (m *memStore) Delete(id string) error            { return nil }

// bookings returns a distinct view so the memStore can serve as the
// BookingRepository too.
type memBookings struct{ *memStore }

func (m memBookings) GetByID(id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m memBookings) ListByUser(userID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m memBookings) ListOccurrencesByResource(resourceID string) ([]models.Occurrence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Occurrence
	for _, b := range m.bookings {
		if b.ResourceID == resourceID && b.Status == models.BookingStatusConfirmed {
			out = append(out, b.Occurrences...)
		}
	}
	return out, nil
}

func (m memBookings) CreateBookingAtomically(ctx context.Context, booking *models.Booking, expectedResourceVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.resources[booking.ResourceID]
	if !ok {
		return resourceRepo.ErrNotFound
	}
	if res.Version != expectedResourceVersion {
		return bookingRepo.ErrVersionConflict
	}
	res.Version++
	cp := *booking
	m.bookings[booking.ID] = &cp
	return nil
}

func (m memBookings) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return bookingRepo.ErrNotFound
	}
	b.Status = models.BookingStatusCancelled
	return nil
}

func newTestService(t *testing.T) (*DefaultBookingService, *memStore) {
	t.Helper()
	store := newMemStore()
	require.NoError(t, store.Create(&models.Resource{
		ID:   "room-1",
		Name: "Room 1",
		Kind: models.ResourceKindSpace,
	}))
	svc := &DefaultBookingService{
		Repo:         memBookings{store},
		ResourceRepo: store,
	}
	return svc, store
}

func monWedSchedule() models.Schedule {
	return models.Schedule{
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-18",
		DaysOfWeek: []models.Weekday{models.Monday, models.Wednesday},
		Slot:       models.TimeSlot{Start: 540, End: 600},
	}
}

func TestBookDirectCommitsFullOccurrenceSet(t *testing.T) {
	svc, store := newTestService(t)

	bk, err := svc.BookDirect(context.Background(), "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   monWedSchedule(),
	})
	require.NoError(t, err)
	assert.Len(t, bk.Occurrences, 5)
	assert.Equal(t, models.BookingStatusConfirmed, bk.Status)

	// The commit bumped the resource version.
	res, err := store.GetByID("room-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Version)
}

func TestBookDirectRejectsOnAnyConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Hold 09:30-10:00 on one Wednesday of the range.
	_, err := svc.BookDirect(ctx, "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule: models.Schedule{
			StartDate: "2024-03-06",
			Slot:      models.TimeSlot{Start: 570, End: 600},
		},
	})
	require.NoError(t, err)

	// The recurring request overlaps on exactly that date, and the whole
	// schedule is refused: no partial commit.
	_, err = svc.BookDirect(ctx, "user-b", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   monWedSchedule(),
	})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, "2024-03-06", conflictErr.Conflicts[0].Candidate.Date)

	occs, err := svc.ListResourceOccurrences(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, occs, 1, "rejected schedule must leave no occurrences behind")
}

func TestBookDirectBackToBackIsLegal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BookDirect(ctx, "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule: models.Schedule{
			StartDate: "2024-03-04",
			Slot:      models.TimeSlot{Start: 540, End: 600},
		},
	})
	require.NoError(t, err)

	_, err = svc.BookDirect(ctx, "user-b", models.BookingRequest{
		ResourceID: "room-1",
		Schedule: models.Schedule{
			StartDate: "2024-03-04",
			Slot:      models.TimeSlot{Start: 600, End: 660},
		},
	})
	assert.NoError(t, err)
}

func TestBookDirectNothingToBook(t *testing.T) {
	svc, _ := newTestService(t)

	vacuous := monWedSchedule()
	vacuous.StartDate, vacuous.EndDate = vacuous.EndDate, vacuous.StartDate

	_, err := svc.BookDirect(context.Background(), "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   vacuous,
	})
	var bkErr *BookingError
	require.ErrorAs(t, err, &bkErr)
	assert.Equal(t, "nothingToBook", bkErr.Code)
}

func TestBookDirectInvalidSchedule(t *testing.T) {
	svc, _ := newTestService(t)

	bad := monWedSchedule()
	bad.Slot = models.TimeSlot{Start: 600, End: 540}

	_, err := svc.BookDirect(context.Background(), "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   bad,
	})
	var bkErr *BookingError
	require.ErrorAs(t, err, &bkErr)
	assert.Equal(t, "invalidSchedule", bkErr.Code)
}

func TestCheckAvailabilityReportsConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BookDirect(ctx, "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule: models.Schedule{
			StartDate: "2024-03-06",
			Slot:      models.TimeSlot{Start: 570, End: 600},
		},
	})
	require.NoError(t, err)

	result, err := svc.CheckAvailability(ctx, "user-b", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   monWedSchedule(),
	})
	require.NoError(t, err)
	assert.False(t, result.Bookable)
	assert.Len(t, result.Occurrences, 5)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "2024-03-06", result.Conflicts[0].Existing.Date)
	assert.Empty(t, result.SessionID)
}

func TestCheckAvailabilityUnknownResource(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CheckAvailability(context.Background(), "user-a", models.BookingRequest{
		ResourceID: "missing",
		Schedule:   monWedSchedule(),
	})
	assert.True(t, errors.Is(err, resourceRepo.ErrNotFound))
}

// Two conflicting requests race the check-then-commit sequence; the
// version guard must let exactly one through.
func TestConcurrentConflictingBookings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := models.BookingRequest{
		ResourceID: "room-1",
		Schedule: models.Schedule{
			StartDate: "2024-03-04",
			Slot:      models.TimeSlot{Start: 540, End: 600},
		},
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.BookDirect(ctx, "user", req)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflictErr *ConflictError
		if errors.As(err, &conflictErr) || errors.Is(err, bookingRepo.ErrVersionConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes, "exactly one racing booking must win")
	assert.Equal(t, 1, conflicts, "the loser must see a conflict")

	occs, err := svc.ListResourceOccurrences(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, occs, 1)
}

func TestCancelReleasesOccurrences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	bk, err := svc.BookDirect(ctx, "user-a", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   monWedSchedule(),
	})
	require.NoError(t, err)

	// Another user may not cancel it.
	err = svc.CancelBooking(ctx, "user-b", bk.ID)
	var bkErr *BookingError
	require.ErrorAs(t, err, &bkErr)
	assert.Equal(t, "forbidden", bkErr.Code)

	require.NoError(t, svc.CancelBooking(ctx, "user-a", bk.ID))

	// The same window is bookable again.
	_, err = svc.BookDirect(ctx, "user-b", models.BookingRequest{
		ResourceID: "room-1",
		Schedule:   monWedSchedule(),
	})
	assert.NoError(t, err)
}
