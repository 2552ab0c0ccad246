package handler

import (
	"encoding/json"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	TripID           *openapi_types.UUID `json:"trip_id"`
	BookingType      string              `json:"booking_type"`
	BookingStatus    string              `json:"booking_status"`
	Provider         string              `json:"provider"`
	BookingReference string              `json:"booking_reference"`
	BookingDate      *time.Time          `json:"booking_date"`
	StartDate        *time.Time          `json:"start_date"`
	EndDate          *time.Time          `json:"end_date"`
	TotalPrice       float64             `json:"total_price"`
	Currency         string              `json:"currency"`
	BookingData      json.RawMessage     `json:"booking_data"`
}

// BookingStatusRequest is the body of PUT /bookings/{bookingId}/status.
type BookingStatusRequest struct {
	BookingStatus string `json:"booking_status"`
}

// Booking is the JSON representation of a booking.
type Booking struct {
	ID               openapi_types.UUID  `json:"id"`
	TripID           *openapi_types.UUID `json:"trip_id"`
	BookingType      string              `json:"booking_type"`
	BookingStatus    string              `json:"booking_status"`
	Provider         string              `json:"provider"`
	BookingReference *string             `json:"booking_reference,omitempty"`
	BookingDate      time.Time           `json:"booking_date"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          *time.Time          `json:"end_date"`
	TotalPrice       float64             `json:"total_price"`
	Currency         string              `json:"currency"`
	BookingData      json.RawMessage     `json:"booking_data"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ListBookings handles GET /bookings.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.svc.Bookings.List(r.Context(), session(r))
	if err != nil {
		s.fail(w, r, err, "booking")
		return
	}
	out := make([]Booking, len(bookings))
	for i, b := range bookings {
		out[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateBooking handles POST /bookings.
// A trip_id naming a trip the caller does not own yields 404.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingRequest
	if !decodeBody(w, r, &body) {
		return
	}

	b := domain.Booking{
		TripID:           body.TripID,
		BookingType:      domain.BookingType(body.BookingType),
		BookingStatus:    domain.BookingStatus(body.BookingStatus),
		Provider:         body.Provider,
		BookingReference: body.BookingReference,
		EndDate:          body.EndDate,
		TotalPrice:       body.TotalPrice,
		Currency:         body.Currency,
		BookingData:      body.BookingData,
	}
	if body.BookingDate != nil {
		b.BookingDate = *body.BookingDate
	}
	if body.StartDate != nil {
		b.StartDate = *body.StartDate
	}

	created, err := s.svc.Bookings.Create(r.Context(), session(r), b)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(created))
}

// GetBooking handles GET /bookings/{bookingId}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "bookingId")
	if !ok {
		return
	}
	b, err := s.svc.Bookings.GetByID(r.Context(), session(r), id)
	if err != nil {
		s.fail(w, r, err, "booking")
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// UpdateBookingStatus handles PUT /bookings/{bookingId}/status.
func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "bookingId")
	if !ok {
		return
	}
	var body BookingStatusRequest
	if !decodeBody(w, r, &body) {
		return
	}
	b, err := s.svc.Bookings.UpdateStatus(r.Context(), session(r), id, domain.BookingStatus(body.BookingStatus))
	if err != nil {
		s.fail(w, r, err, "booking")
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// DeleteBooking handles DELETE /bookings/{bookingId}.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "bookingId")
	if !ok {
		return
	}
	if err := s.svc.Bookings.Delete(r.Context(), session(r), id); err != nil {
		s.fail(w, r, err, "booking")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bookingToResponse(b domain.Booking) Booking {
	return Booking{
		ID:               b.ID,
		TripID:           b.TripID,
		BookingType:      string(b.BookingType),
		BookingStatus:    string(b.BookingStatus),
		Provider:         b.Provider,
		BookingReference: optionalString(b.BookingReference),
		BookingDate:      b.BookingDate,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
		TotalPrice:       b.TotalPrice,
		Currency:         b.Currency,
		BookingData:      b.BookingData,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
