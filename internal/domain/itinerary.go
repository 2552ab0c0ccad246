package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItineraryItem is a scheduled activity within a trip, bucketed by day.
// Description, Location and Notes are empty when not supplied.
type ItineraryItem struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	// DayNumber is 1-based and fixed at creation relative to the trip's start date.
	DayNumber int
	// OrderIndex is the item's position within its day bucket, assigned by append.
	OrderIndex int
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemDraft is the input for adding an activity to a trip day. StartClock
// and EndClock are "HH:MM" values on that day; see ComposeSlot.
type ItemDraft struct {
	Title       string
	Description string
	Location    string
	Notes       string
	DayNumber   int
	StartClock  string
	EndClock    string
}

// ItineraryDay is one calendar day of a trip with its ordered items.
type ItineraryDay struct {
	DayNumber int
	Date      time.Time
	Items     []ItineraryItem
}

// Itinerary is the read-side view of a trip and all of its days.
type Itinerary struct {
	Trip         Trip
	Status       Status
	DurationDays int
	Days         []ItineraryDay
	// Unscheduled holds items whose day_number no longer fits the trip's dates.
	Unscheduled []ItineraryItem
}

// ValidateItineraryItem checks an item against the trip it is being added to.
// The trip supplies the upper bound for DayNumber.
func ValidateItineraryItem(trip Trip, item ItineraryItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return invalid("title", "title_required", "title is required")
	}
	if item.StartTime.IsZero() {
		return invalid("start_time", "start_time_required", "start_time is required")
	}
	if item.EndTime.IsZero() {
		return invalid("end_time", "end_time_required", "end_time is required")
	}
	if item.EndTime.Before(item.StartTime) {
		return invalid("end_time", "end_time_before_start_time", "end_time must not be before start_time")
	}
	if days := TripDurationDays(trip); item.DayNumber < 1 || item.DayNumber > days {
		return invalid("day_number", "day_out_of_range", fmt.Sprintf("day_number must be between 1 and %d", days))
	}
	if item.OrderIndex < 0 {
		return invalid("order_index", "order_index_negative", "order_index must not be negative")
	}
	return nil
}
