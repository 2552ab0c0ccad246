// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
//
// Every owner-scoped method takes the caller's domain.Session explicitly and
// fails with domain.ErrUnauthorized when it carries no user.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// Clock returns the current instant. Status is classified against the
// calendar date of the returned time in its own location.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	now  Clock
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// now supplies the reference instant for derived status.
func NewTripService(r repo.TripRepo, now Clock) *TripService {
	return &TripService{repo: r, now: now}
}

// Create validates and persists a new trip owned by the session's user.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.TripSummary, error) {
	if err := requireSession("service.TripService.Create", sess); err != nil {
		return domain.TripSummary{}, err
	}
	trip.UserID = sess.UserID
	trip = domain.NormalizeTrip(trip)
	if err := domain.ValidateTrip(trip); err != nil {
		return domain.TripSummary{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return domain.Summarize(result, s.now()), nil
}

// GetByID returns a single trip with its derived status and duration.
// Returns domain.ErrNotFound if the trip does not exist or belongs to someone else.
func (s *TripService) GetByID(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.TripSummary, error) {
	if err := requireSession("service.TripService.GetByID", sess); err != nil {
		return domain.TripSummary{}, err
	}
	result, err := s.repo.GetByID(ctx, sess.UserID, id)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return domain.Summarize(result, s.now()), nil
}

// List returns one page of the user's trips after search, status filter and
// sort have been applied, plus the number of trips that matched before paging.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, sess domain.Session, q domain.TripQuery, p domain.PaginationParams) ([]domain.TripSummary, int64, error) {
	if err := requireSession("service.TripService.List", sess); err != nil {
		return nil, 0, err
	}
	if err := domain.ValidateTripQuery(q); err != nil {
		return nil, 0, err
	}
	trips, err := s.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}

	now := s.now()
	matched := domain.ApplyTripQuery(trips, q, now)
	total := int64(len(matched))

	lo, hi := p.Window(len(matched))

	page := make([]domain.TripSummary, 0, hi-lo)
	for _, t := range matched[lo:hi] {
		page = append(page, domain.Summarize(t, now))
	}
	return page, total, nil
}

// Update validates and persists changes to an existing trip.
// Items keep their day_number; days that fall outside new dates show up as
// unscheduled in the itinerary view.
func (s *TripService) Update(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.TripSummary, error) {
	if err := requireSession("service.TripService.Update", sess); err != nil {
		return domain.TripSummary{}, err
	}
	trip.UserID = sess.UserID
	trip = domain.NormalizeTrip(trip)
	if err := domain.ValidateTrip(trip); err != nil {
		return domain.TripSummary{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.TripSummary{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return domain.Summarize(result, s.now()), nil
}

// Delete removes a trip and its itinerary items.
func (s *TripService) Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error {
	if err := requireSession("service.TripService.Delete", sess); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// requireSession rejects calls made without an authenticated user.
func requireSession(op string, sess domain.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("%s: %w", op, domain.ErrUnauthorized)
	}
	return nil
}
