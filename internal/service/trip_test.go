package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	owner = domain.Session{UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111")}
	// 2025-06-05 10:00 UTC falls inside validTrip.
	fixedNow = time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

func validTrip() domain.Trip {
	return domain.Trip{
		Name:        "Summer Tour",
		Destination: "Lisbon",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func echoRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back; useful for Create/Update
	// tests that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

func newTripService(r repo.TripRepo) *service.TripService {
	return service.NewTripService(r, fixedClock)
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := newTripService(echoRepo())

	got, err := svc.Create(context.Background(), owner, validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Summer Tour", got.Trip.Name)
	assert.Equal(t, owner.UserID, got.Trip.UserID, "owner comes from the session")
	assert.Equal(t, domain.TripTypeVacation, got.Trip.TripType, "empty trip_type defaults to vacation")
	assert.Equal(t, domain.StatusCurrent, got.Status)
	assert.Equal(t, 15, got.DurationDays)
}

func TestTripService_Create_IgnoresCallerSuppliedOwner(t *testing.T) {
	svc := newTripService(echoRepo())

	trip := validTrip()
	trip.UserID = uuid.New()

	got, err := svc.Create(context.Background(), owner, trip)

	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.Trip.UserID)
}

func TestTripService_Create_NoSession(t *testing.T) {
	r := &mockTripRepo{} // any repo call would panic on the nil func

	_, err := newTripService(r).Create(context.Background(), domain.Session{}, validTrip())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTripService_Create_ValidationRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
		rule   string
	}{
		{"blank name", func(tr *domain.Trip) { tr.Name = "   " }, "name_required"},
		{"blank destination", func(tr *domain.Trip) { tr.Destination = "" }, "destination_required"},
		{"reversed", func(tr *domain.Trip) { tr.EndDate = tr.StartDate.AddDate(0, 0, -1) }, "end_date_before_start_date"},
		{"bad type", func(tr *domain.Trip) { tr.TripType = "cruise" }, "invalid_trip_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTripService(&mockTripRepo{})
			trip := validTrip()
			tt.mutate(&trip)

			_, err := svc.Create(context.Background(), owner, trip)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.rule, verr.Rule)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_EndDateEqualToStartDate(t *testing.T) {
	svc := newTripService(echoRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate // a one-day trip is valid

	got, err := svc.Create(context.Background(), owner, trip)

	require.NoError(t, err)
	assert.Equal(t, 1, got.DurationDays)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}

	_, err := newTripService(r).Create(context.Background(), owner, validTrip())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := validTrip()
	want.ID = uuid.New()

	var gotOwner uuid.UUID
	r := &mockTripRepo{
		getByID: func(_ context.Context, userID, _ uuid.UUID) (domain.Trip, error) {
			gotOwner = userID
			return want, nil
		},
	}

	got, err := newTripService(r).GetByID(context.Background(), owner, want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.Trip.ID)
	assert.Equal(t, owner.UserID, gotOwner, "lookup is scoped to the session user")
	assert.Equal(t, domain.StatusCurrent, got.Status)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	_, err := newTripService(r).GetByID(context.Background(), owner, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List tests ------------------------------------------------------------

func listTrips() []domain.Trip {
	mk := func(id, name, dest string, start, end time.Time) domain.Trip {
		return domain.Trip{ID: uuid.MustParse(id), Name: name, Destination: dest, StartDate: start, EndDate: end}
	}
	d := func(m time.Month, day int) time.Time { return time.Date(2025, m, day, 0, 0, 0, 0, time.UTC) }
	return []domain.Trip{
		mk("00000000-0000-0000-0000-000000000001", "Spring", "Kyoto", d(3, 1), d(3, 5)),
		mk("00000000-0000-0000-0000-000000000002", "Summer", "lisbon", d(6, 1), d(6, 10)),
		mk("00000000-0000-0000-0000-000000000003", "Autumn", "Berlin", d(10, 1), d(10, 3)),
	}
}

func TestTripService_List_FilterSortPage(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return listTrips(), nil },
	}
	svc := newTripService(r)

	got, total, err := svc.List(context.Background(), owner,
		domain.TripQuery{Sort: domain.SortByDestination},
		domain.PaginationParams{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, got, 2)
	assert.Equal(t, "Berlin", got[0].Trip.Destination)
	assert.Equal(t, "Kyoto", got[1].Trip.Destination)
	assert.Equal(t, domain.StatusUpcoming, got[0].Status)
	assert.Equal(t, domain.StatusPast, got[1].Status)
}

func TestTripService_List_StatusFilter(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return listTrips(), nil },
	}

	got, total, err := newTripService(r).List(context.Background(), owner,
		domain.TripQuery{Status: domain.StatusFilter(domain.StatusCurrent)},
		domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Summer", got[0].Trip.Name)
}

func TestTripService_List_PageBeyondEnd(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return listTrips(), nil },
	}

	got, total, err := newTripService(r).List(context.Background(), owner,
		domain.TripQuery{}, domain.PaginationParams{Page: 5, Limit: 20})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_List_HugePage(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return listTrips(), nil },
	}
	page, limit := 100000000000000001, 100

	got, total, err := newTripService(r).List(context.Background(), owner,
		domain.TripQuery{}, domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID) ([]domain.Trip, error) { return nil, nil },
	}

	got, total, err := newTripService(r).List(context.Background(), owner, domain.TripQuery{}, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	// Should return an empty slice, not nil; callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestTripService_List_InvalidQuery(t *testing.T) {
	svc := newTripService(&mockTripRepo{})

	_, _, err := svc.List(context.Background(), owner, domain.TripQuery{Sort: "price"}, domain.NewPaginationParams(nil, nil))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_sort_key", verr.Rule)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	svc := newTripService(echoRepo())

	trip := validTrip()
	trip.ID = uuid.New()
	trip.Name = "  Renamed Trip "

	got, err := svc.Update(context.Background(), owner, trip)

	require.NoError(t, err)
	assert.Equal(t, "Renamed Trip", got.Trip.Name)
	assert.Equal(t, owner.UserID, got.Trip.UserID)
}

func TestTripService_Update_EndDateBeforeStartDate(t *testing.T) {
	svc := newTripService(echoRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Update(context.Background(), owner, trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Update_NoSession(t *testing.T) {
	_, err := newTripService(echoRepo()).Update(context.Background(), domain.Session{}, validTrip())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}

	err := newTripService(r).Delete(context.Background(), owner, uuid.New())

	assert.NoError(t, err)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	err := newTripService(r).Delete(context.Background(), owner, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSystemClock_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	now := service.SystemClock(tokyo)()

	assert.Equal(t, tokyo, now.Location())
}
