package service_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// ---- mock repos ------------------------------------------------------------

type mockPriceAlertRepo struct {
	create     func(ctx context.Context, a domain.PriceAlert) (domain.PriceAlert, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.PriceAlert, error)
	setActive  func(ctx context.Context, userID, id uuid.UUID, active bool) (domain.PriceAlert, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockPriceAlertRepo) Create(ctx context.Context, a domain.PriceAlert) (domain.PriceAlert, error) {
	return m.create(ctx, a)
}
func (m *mockPriceAlertRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PriceAlert, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockPriceAlertRepo) SetActive(ctx context.Context, userID, id uuid.UUID, active bool) (domain.PriceAlert, error) {
	return m.setActive(ctx, userID, id, active)
}
func (m *mockPriceAlertRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockProfileRepo struct {
	get    func(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	upsert func(ctx context.Context, p domain.Profile) (domain.Profile, error)
}

func (m *mockProfileRepo) Get(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	return m.get(ctx, userID)
}
func (m *mockProfileRepo) Upsert(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	return m.upsert(ctx, p)
}

type mockSearchHistoryRepo struct {
	create     func(ctx context.Context, h domain.SearchHistory) (domain.SearchHistory, error)
	listRecent func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SearchHistory, error)
}

func (m *mockSearchHistoryRepo) Create(ctx context.Context, h domain.SearchHistory) (domain.SearchHistory, error) {
	return m.create(ctx, h)
}
func (m *mockSearchHistoryRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SearchHistory, error) {
	return m.listRecent(ctx, userID, limit)
}

// compile-time checks: the mocks must satisfy their repo interfaces.
var (
	_ repo.PriceAlertRepo    = (*mockPriceAlertRepo)(nil)
	_ repo.ProfileRepo       = (*mockProfileRepo)(nil)
	_ repo.SearchHistoryRepo = (*mockSearchHistoryRepo)(nil)
)

// ---- PriceAlertService -----------------------------------------------------

func TestPriceAlertService_Create(t *testing.T) {
	r := &mockPriceAlertRepo{
		create: func(_ context.Context, a domain.PriceAlert) (domain.PriceAlert, error) { return a, nil },
	}
	svc := service.NewPriceAlertService(r)

	got, err := svc.Create(context.Background(), owner, domain.PriceAlert{
		AlertType: domain.BookingTypeHotel, RouteOrDestination: " Rome ", TargetPrice: 90, Currency: "eur", IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.UserID)
	assert.Equal(t, "Rome", got.RouteOrDestination)
	assert.Equal(t, "EUR", got.Currency)
}

func TestPriceAlertService_Create_ZeroTarget(t *testing.T) {
	svc := service.NewPriceAlertService(&mockPriceAlertRepo{})

	_, err := svc.Create(context.Background(), owner, domain.PriceAlert{
		AlertType: domain.BookingTypeFlight, RouteOrDestination: "LIS-JFK",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "target_price_not_positive", verr.Rule)
}

func TestPriceAlertService_SetActive_NotFound(t *testing.T) {
	r := &mockPriceAlertRepo{
		setActive: func(_ context.Context, _, _ uuid.UUID, _ bool) (domain.PriceAlert, error) {
			return domain.PriceAlert{}, domain.ErrNotFound
		},
	}

	_, err := service.NewPriceAlertService(r).SetActive(context.Background(), owner, uuid.New(), false)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceAlertService_List_NoSession(t *testing.T) {
	_, err := service.NewPriceAlertService(&mockPriceAlertRepo{}).List(context.Background(), domain.Session{})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---- ProfileService --------------------------------------------------------

func TestProfileService_Save(t *testing.T) {
	r := &mockProfileRepo{
		upsert: func(_ context.Context, p domain.Profile) (domain.Profile, error) { return p, nil },
	}

	got, err := service.NewProfileService(r).Save(context.Background(), owner, "  Ana Silva ")

	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.ID, "a profile is keyed by the session user")
	assert.Equal(t, "Ana Silva", got.FullName)
}

func TestProfileService_Save_TooLong(t *testing.T) {
	svc := service.NewProfileService(&mockProfileRepo{})

	_, err := svc.Save(context.Background(), owner, strings.Repeat("é", domain.MaxFullNameLength+1))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "full_name_too_long", verr.Rule)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	r := &mockProfileRepo{
		get: func(_ context.Context, _ uuid.UUID) (domain.Profile, error) { return domain.Profile{}, domain.ErrNotFound },
	}

	_, err := service.NewProfileService(r).Get(context.Background(), owner)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- SearchHistoryService --------------------------------------------------

func TestSearchHistoryService_Record(t *testing.T) {
	r := &mockSearchHistoryRepo{
		create: func(_ context.Context, h domain.SearchHistory) (domain.SearchHistory, error) { return h, nil },
	}

	got, err := service.NewSearchHistoryService(r).Record(context.Background(), owner, domain.SearchHistory{
		SearchType: domain.BookingTypeFlight, SearchParams: json.RawMessage(`{"from":"LIS"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, owner.UserID, got.UserID)
}

func TestSearchHistoryService_Record_BadParams(t *testing.T) {
	svc := service.NewSearchHistoryService(&mockSearchHistoryRepo{})

	_, err := svc.Record(context.Background(), owner, domain.SearchHistory{
		SearchType: domain.BookingTypeFlight, SearchParams: json.RawMessage(`"LIS"`),
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "search_params_required", verr.Rule)
}

func TestSearchHistoryService_Recent_Limits(t *testing.T) {
	ptr := func(n int) *int { return &n }
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default", nil, service.DefaultHistoryLimit},
		{"non-positive", ptr(0), service.DefaultHistoryLimit},
		{"explicit", ptr(3), 3},
		{"capped", ptr(1000), service.MaxHistoryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			r := &mockSearchHistoryRepo{
				listRecent: func(_ context.Context, _ uuid.UUID, limit int) ([]domain.SearchHistory, error) {
					got = limit
					return nil, nil
				},
			}

			out, err := service.NewSearchHistoryService(r).Recent(context.Background(), owner, tt.limit)

			require.NoError(t, err)
			assert.NotNil(t, out)
			assert.Equal(t, tt.want, got)
		})
	}
}
