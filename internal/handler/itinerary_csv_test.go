package handler

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func oneItemItinerary() domain.Itinerary {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	item := domain.ItineraryItem{
		ID: uuid.New(), Title: "Museum",
		StartTime: start.Add(9 * time.Hour), EndTime: start.Add(11 * time.Hour),
		DayNumber: 1,
	}
	return domain.Itinerary{
		Trip: domain.Trip{ID: uuid.New(), StartDate: start, EndDate: start},
		Days: []domain.ItineraryDay{{DayNumber: 1, Date: start, Items: []domain.ItineraryItem{item}}},
	}
}

func TestEncodeItineraryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeItineraryCSV(&buf, oneItemItinerary()))
	assert.Equal(t,
		"day_number,date,order_index,title,start_time,end_time,location,description,notes\n"+
			"1,2025-06-01,0,Museum,2025-06-01T09:00:00Z,2025-06-01T11:00:00Z,,,\n",
		buf.String())
}

func TestEncodeItineraryCSV_WriteError(t *testing.T) {
	errDisk := errors.New("disk full")
	err := encodeItineraryCSV(failingWriter{err: errDisk}, oneItemItinerary())
	assert.ErrorIs(t, err, errDisk)
}
