package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// BookingService implements business logic for Booking operations.
// It holds the trips repo because a booking may reference one of the
// owner's trips.
type BookingService struct {
	trips    repo.TripRepo
	bookings repo.BookingRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(trips repo.TripRepo, bookings repo.BookingRepo) *BookingService {
	return &BookingService{trips: trips, bookings: bookings}
}

// Create validates the booking, verifies the referenced trip exists, then persists.
// Returns domain.ErrNotFound if TripID names a trip the user does not own.
func (s *BookingService) Create(ctx context.Context, sess domain.Session, b domain.Booking) (domain.Booking, error) {
	if err := requireSession("service.BookingService.Create", sess); err != nil {
		return domain.Booking{}, err
	}
	b.UserID = sess.UserID
	b = domain.NormalizeBooking(b)
	if err := domain.ValidateBooking(b); err != nil {
		return domain.Booking{}, err
	}
	if b.TripID != nil {
		if _, err := s.trips.GetByID(ctx, sess.UserID, *b.TripID); err != nil {
			return domain.Booking{}, fmt.Errorf("service.BookingService.Create: trip: %w", err)
		}
	}
	result, err := s.bookings.Create(ctx, b)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single booking.
func (s *BookingService) GetByID(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Booking, error) {
	if err := requireSession("service.BookingService.GetByID", sess); err != nil {
		return domain.Booking{}, err
	}
	result, err := s.bookings.GetByID(ctx, sess.UserID, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the user's bookings, most recently booked first.
func (s *BookingService) List(ctx context.Context, sess domain.Session) ([]domain.Booking, error) {
	if err := requireSession("service.BookingService.List", sess); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.List: %w", err)
	}
	if bookings == nil {
		return []domain.Booking{}, nil
	}
	return bookings, nil
}

// UpdateStatus moves a booking to another lifecycle state.
func (s *BookingService) UpdateStatus(ctx context.Context, sess domain.Session, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	if err := requireSession("service.BookingService.UpdateStatus", sess); err != nil {
		return domain.Booking{}, err
	}
	if !status.Valid() {
		return domain.Booking{}, &domain.ValidationError{
			Field:   "booking_status",
			Rule:    "invalid_booking_status",
			Message: "booking_status must be one of pending, confirmed, cancelled, completed",
		}
	}
	result, err := s.bookings.UpdateStatus(ctx, sess.UserID, id, status)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}
	return result, nil
}

// Delete removes a booking.
func (s *BookingService) Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error {
	if err := requireSession("service.BookingService.Delete", sess); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("service.BookingService.Delete: %w", err)
	}
	return nil
}
