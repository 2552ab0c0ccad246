package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func juneTrip() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Name:        "Lakes",
		Destination: "Annecy",
		StartDate:   date(2024, 6, 1),
		EndDate:     date(2024, 6, 10),
		TripType:    domain.TripTypeVacation,
	}
}

func TestTripDurationDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"same day", date(2024, 3, 5), date(2024, 3, 5), 1},
		{"one week", date(2024, 3, 5), date(2024, 3, 11), 7},
		{"across month", date(2024, 1, 30), date(2024, 2, 2), 4},
		{"leap day", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"across DST change", date(2024, 3, 30), date(2024, 4, 1), 3},
		{"across the Unix epoch", date(1969, 12, 31), date(1970, 1, 1), 2},
		{"ten thousand year range", date(1000, 1, 1), date(9999, 12, 31), 3287182},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := domain.Trip{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.want, domain.TripDurationDays(trip))
		})
	}
}

func TestTripDurationDays_MatchesItineraryLength(t *testing.T) {
	trip := juneTrip()

	it := domain.BuildItinerary(trip, nil)

	assert.Equal(t, domain.TripDurationDays(trip), len(it.Days))
	assert.Equal(t, 10, it.DurationDays)
}

func TestDayBucket(t *testing.T) {
	trip := juneTrip()

	assert.Equal(t, date(2024, 6, 1), domain.DayBucket(trip, 1))
	assert.Equal(t, date(2024, 6, 10), domain.DayBucket(trip, 10))
}

func TestTripStatus_Boundaries(t *testing.T) {
	trip := juneTrip()

	tests := []struct {
		ref  time.Time
		want domain.Status
	}{
		{date(2024, 5, 31), domain.StatusUpcoming},
		{date(2024, 6, 1), domain.StatusCurrent},
		{date(2024, 6, 5), domain.StatusCurrent},
		{date(2024, 6, 10), domain.StatusCurrent},
		{date(2024, 6, 11), domain.StatusPast},
	}
	for _, tt := range tests {
		t.Run(tt.ref.Format("2006-01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TripStatus(trip, tt.ref))
		})
	}
}

func TestTripStatus_UsesCalendarDateOfReference(t *testing.T) {
	trip := juneTrip()

	// Late evening on the last day is still the last day.
	assert.Equal(t, domain.StatusCurrent, domain.TripStatus(trip, time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)))

	// 2024-06-11 01:00 in Tokyo is 2024-06-10 in UTC; the caller's location wins.
	tokyo := time.FixedZone("JST", 9*60*60)
	ref := time.Date(2024, 6, 11, 1, 0, 0, 0, tokyo)
	assert.Equal(t, domain.StatusPast, domain.TripStatus(trip, ref))
	assert.Equal(t, domain.StatusCurrent, domain.TripStatus(trip, ref.UTC()))
}

func TestGroupItemsByDay(t *testing.T) {
	a := domain.ItineraryItem{Title: "a", DayNumber: 1, OrderIndex: 1}
	b := domain.ItineraryItem{Title: "b", DayNumber: 1, OrderIndex: 0}
	c := domain.ItineraryItem{Title: "c", DayNumber: 2, OrderIndex: 0}

	got := domain.GroupItemsByDay([]domain.ItineraryItem{a, b, c})

	want := map[int][]domain.ItineraryItem{
		1: {b, a},
		2: {c},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GroupItemsByDay mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupItemsByDay_TiesKeepInputOrder(t *testing.T) {
	first := domain.ItineraryItem{Title: "first", DayNumber: 3, OrderIndex: 2}
	second := domain.ItineraryItem{Title: "second", DayNumber: 3, OrderIndex: 2}
	early := domain.ItineraryItem{Title: "early", DayNumber: 3, OrderIndex: 0}

	got := domain.GroupItemsByDay([]domain.ItineraryItem{first, second, early})

	require.Len(t, got[3], 3)
	assert.Equal(t, []string{"early", "first", "second"},
		[]string{got[3][0].Title, got[3][1].Title, got[3][2].Title})
}

func TestNextOrderIndex(t *testing.T) {
	assert.Equal(t, 0, domain.NextOrderIndex(nil))
	assert.Equal(t, 0, domain.NextOrderIndex([]domain.ItineraryItem{}))

	bucket := []domain.ItineraryItem{{OrderIndex: 3}, {OrderIndex: 0}, {OrderIndex: 1}}
	assert.Equal(t, 4, domain.NextOrderIndex(bucket))
}

func TestNextOrderIndex_GapsAreNotReused(t *testing.T) {
	// Items 1 and 2 were deleted; the next append still goes after 3.
	bucket := []domain.ItineraryItem{{OrderIndex: 0}, {OrderIndex: 3}}
	assert.Equal(t, 4, domain.NextOrderIndex(bucket))
}

func TestBuildItinerary(t *testing.T) {
	trip := domain.Trip{StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 3)}
	louvre := domain.ItineraryItem{Title: "Louvre", DayNumber: 2, OrderIndex: 0}
	dinner := domain.ItineraryItem{Title: "Dinner", DayNumber: 2, OrderIndex: 1}
	stray := domain.ItineraryItem{Title: "Stray", DayNumber: 5, OrderIndex: 0}

	got := domain.BuildItinerary(trip, []domain.ItineraryItem{dinner, stray, louvre})

	want := domain.Itinerary{
		Trip:         trip,
		DurationDays: 3,
		Days: []domain.ItineraryDay{
			{DayNumber: 1, Date: date(2024, 7, 1), Items: []domain.ItineraryItem{}},
			{DayNumber: 2, Date: date(2024, 7, 2), Items: []domain.ItineraryItem{louvre, dinner}},
			{DayNumber: 3, Date: date(2024, 7, 3), Items: []domain.ItineraryItem{}},
		},
		Unscheduled: []domain.ItineraryItem{stray},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildItinerary mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeSlot(t *testing.T) {
	trip := domain.Trip{StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 3)}
	paris := time.FixedZone("CEST", 2*60*60)

	start, end, err := domain.ComposeSlot(trip, 2, "09:30", "12:00", paris)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 2, 9, 30, 0, 0, paris), start)
	assert.Equal(t, time.Date(2024, 7, 2, 12, 0, 0, 0, paris), end)
}

func TestComposeSlot_CrossesMidnight(t *testing.T) {
	trip := domain.Trip{StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 3)}

	start, end, err := domain.ComposeSlot(trip, 3, "22:00", "01:30", time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 3, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 7, 4, 1, 30, 0, 0, time.UTC), end)
}

func TestComposeSlot_BadClock(t *testing.T) {
	trip := domain.Trip{StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 3)}

	_, _, err := domain.ComposeSlot(trip, 1, "9am", "10:00", time.UTC)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid_start_time", verr.Rule)

	_, _, err = domain.ComposeSlot(trip, 1, "09:00", "", time.UTC)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time_required", verr.Rule)
}

func TestSummarize(t *testing.T) {
	trip := juneTrip()

	got := domain.Summarize(trip, date(2024, 6, 3))

	assert.Equal(t, domain.TripSummary{Trip: trip, Status: domain.StatusCurrent, DurationDays: 10}, got)
}
