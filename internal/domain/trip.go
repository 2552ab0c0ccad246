// Package domain contains the core data types for the Trip Planner application
// together with the pure rules that govern them: validation, derived views
// (status, duration, day buckets) and in-memory trip queries.
// It is imported by every other internal package (repo, service, handler) and
// never performs I/O.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTripDays bounds a trip's length. The itinerary view holds one entry
// per day of the trip.
const MaxTripDays = 3660

// TripType classifies the purpose of a trip.
type TripType string

const (
	TripTypeVacation  TripType = "vacation"
	TripTypeBusiness  TripType = "business"
	TripTypeAdventure TripType = "adventure"
)

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripTypeVacation, TripTypeBusiness, TripTypeAdventure:
		return true
	}
	return false
}

// Trip represents a user-owned travel plan with a date range and destination.
// A trip is the top-level aggregate; itinerary items belong to a trip.
//
// StartDate and EndDate are calendar dates held as midnight UTC.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	TripType    TripType  `json:"trip_type"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeTrip trims text fields, applies the default trip type and reduces
// both dates to calendar dates. It is applied before ValidateTrip on every write.
func NormalizeTrip(t Trip) Trip {
	t.Name = strings.TrimSpace(t.Name)
	t.Destination = strings.TrimSpace(t.Destination)
	if t.TripType == "" {
		t.TripType = TripTypeVacation
	}
	t.StartDate = CalendarDate(t.StartDate)
	t.EndDate = CalendarDate(t.EndDate)
	return t
}

// RequireTripDates reports a start or end date missing from the request.
// Presence is only known where the request is decoded: once present, every
// calendar date is a value, including 0001-01-01, which is time.Time's zero.
func RequireTripDates(hasStart, hasEnd bool) error {
	if !hasStart {
		return invalid("start_date", "start_date_required", "start_date is required")
	}
	if !hasEnd {
		return invalid("end_date", "end_date_required", "end_date is required")
	}
	return nil
}

// ValidateTrip enforces the trip rules common to Create and Update.
// Date presence is checked by RequireTripDates.
// The first violated rule is returned as a *ValidationError.
func ValidateTrip(t Trip) error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "name_required", "name is required")
	}
	if strings.TrimSpace(t.Destination) == "" {
		return invalid("destination", "destination_required", "destination is required")
	}
	if CalendarDate(t.EndDate).Before(CalendarDate(t.StartDate)) {
		return invalid("end_date", "end_date_before_start_date", "end_date must not be before start_date")
	}
	if TripDurationDays(t) > MaxTripDays {
		return invalid("end_date", "trip_too_long", fmt.Sprintf("a trip may span at most %d days", MaxTripDays))
	}
	if !t.TripType.Valid() {
		return invalid("trip_type", "invalid_trip_type", "trip_type must be one of vacation, business, adventure")
	}
	return nil
}
