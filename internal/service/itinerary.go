package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ItineraryService implements business logic for itinerary items and the
// day-by-day itinerary view.
// It holds the trips repo because every item is validated against its trip.
type ItineraryService struct {
	trips repo.TripRepo
	items repo.ItineraryRepo
	now   Clock
}

// NewItineraryService constructs an ItineraryService. Entered clock values
// are interpreted in the location of the times returned by now.
func NewItineraryService(trips repo.TripRepo, items repo.ItineraryRepo, now Clock) *ItineraryService {
	return &ItineraryService{trips: trips, items: items, now: now}
}

// AddItem composes the item's timestamps from the trip day, validates it
// against the trip and appends it to the end of that day.
// Returns domain.ErrNotFound if the trip does not exist for this user.
func (s *ItineraryService) AddItem(ctx context.Context, sess domain.Session, tripID uuid.UUID, in domain.ItemDraft) (domain.ItineraryItem, error) {
	if err := requireSession("service.ItineraryService.AddItem", sess); err != nil {
		return domain.ItineraryItem{}, err
	}
	trip, err := s.trips.GetByID(ctx, sess.UserID, tripID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}

	item := domain.ItineraryItem{
		TripID:      trip.ID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Notes:       strings.TrimSpace(in.Notes),
		DayNumber:   in.DayNumber,
	}
	item.StartTime, item.EndTime, err = domain.ComposeSlot(trip, in.DayNumber, in.StartClock, in.EndClock, s.now().Location())
	if err != nil {
		return domain.ItineraryItem{}, err
	}
	if err := domain.ValidateItineraryItem(trip, item); err != nil {
		return domain.ItineraryItem{}, err
	}

	result, err := s.items.Append(ctx, sess.UserID, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.AddItem: %w", err)
	}
	return result, nil
}

// Itinerary loads a trip and its items and assembles the day-by-day view
// with the trip's current status.
// The two reads run concurrently; the first failure cancels the other.
func (s *ItineraryService) Itinerary(ctx context.Context, sess domain.Session, tripID uuid.UUID) (domain.Itinerary, error) {
	if err := requireSession("service.ItineraryService.Itinerary", sess); err != nil {
		return domain.Itinerary{}, err
	}

	var (
		trip  domain.Trip
		items []domain.ItineraryItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trip, err = s.trips.GetByID(gctx, sess.UserID, tripID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.ListByTrip(gctx, sess.UserID, tripID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Itinerary: %w", err)
	}

	it := domain.BuildItinerary(trip, items)
	it.Status = domain.TripStatus(trip, s.now())
	return it, nil
}

// DeleteItem removes one activity. Other items keep their order index.
func (s *ItineraryService) DeleteItem(ctx context.Context, sess domain.Session, tripID, itemID uuid.UUID) error {
	if err := requireSession("service.ItineraryService.DeleteItem", sess); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, sess.UserID, tripID, itemID); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteItem: %w", err)
	}
	return nil
}
