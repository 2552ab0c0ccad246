package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// BookingType is the kind of travel product a booking, alert or search is about.
type BookingType string

const (
	BookingTypeFlight    BookingType = "flight"
	BookingTypeHotel     BookingType = "hotel"
	BookingTypeActivity  BookingType = "activity"
	BookingTypeTransport BookingType = "transport"
)

// Valid reports whether b is one of the known booking types.
func (b BookingType) Valid() bool {
	switch b {
	case BookingTypeFlight, BookingTypeHotel, BookingTypeActivity, BookingTypeTransport:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// DefaultCurrency is applied to bookings and price alerts created without one.
const DefaultCurrency = "USD"

// Booking is a reservation record, optionally attached to one of the owner's trips.
// TripID is nil for bookings made outside any trip. EndDate is nil for
// single-date bookings.
type Booking struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	TripID           *uuid.UUID
	BookingType      BookingType
	BookingStatus    BookingStatus
	Provider         string
	BookingReference string
	BookingDate      time.Time
	StartDate        time.Time
	EndDate          *time.Time
	TotalPrice       float64
	Currency         string
	// BookingData is the provider-specific payload, always a JSON object.
	BookingData json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeBooking trims text fields and fills defaults for status and currency.
func NormalizeBooking(b Booking) Booking {
	b.Provider = strings.TrimSpace(b.Provider)
	b.BookingReference = strings.TrimSpace(b.BookingReference)
	b.Currency = strings.ToUpper(strings.TrimSpace(b.Currency))
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	if b.BookingStatus == "" {
		b.BookingStatus = BookingStatusPending
	}
	return b
}

// ValidateBooking checks required fields and enum membership.
// Existence of the referenced trip is checked by the service.
func ValidateBooking(b Booking) error {
	if strings.TrimSpace(b.Provider) == "" {
		return invalid("provider", "provider_required", "provider is required")
	}
	if !b.BookingType.Valid() {
		return invalid("booking_type", "invalid_booking_type", "booking_type must be one of flight, hotel, activity, transport")
	}
	if !b.BookingStatus.Valid() {
		return invalid("booking_status", "invalid_booking_status", "booking_status must be one of pending, confirmed, cancelled, completed")
	}
	if b.StartDate.IsZero() {
		return invalid("start_date", "start_date_required", "start_date is required")
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return invalid("end_date", "end_date_before_start_date", "end_date must not be before start_date")
	}
	if b.TotalPrice < 0 {
		return invalid("total_price", "negative_price", "total_price must not be negative")
	}
	if !validCurrency(b.Currency) {
		return invalid("currency", "invalid_currency", "currency must be an ISO 4217 code")
	}
	if !isJSONObject(b.BookingData) {
		return invalid("booking_data", "booking_data_required", "booking_data must be a JSON object")
	}
	return nil
}

// validCurrency accepts recognized ISO 4217 codes. Callers upper-case the
// code first (see NormalizeBooking); the stored value is the code as given.
func validCurrency(c string) bool {
	_, err := currency.ParseISO(c)
	return err == nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}
