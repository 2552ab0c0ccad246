// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.TripSummary, error)
	GetByID(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.TripSummary, error)
	List(ctx context.Context, sess domain.Session, q domain.TripQuery, p domain.PaginationParams) ([]domain.TripSummary, int64, error)
	Update(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.TripSummary, error)
	Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error
}

// ItineraryServicer defines the operations behind the itinerary and item endpoints.
type ItineraryServicer interface {
	AddItem(ctx context.Context, sess domain.Session, tripID uuid.UUID, in domain.ItemDraft) (domain.ItineraryItem, error)
	Itinerary(ctx context.Context, sess domain.Session, tripID uuid.UUID) (domain.Itinerary, error)
	DeleteItem(ctx context.Context, sess domain.Session, tripID, itemID uuid.UUID) error
}

// BookingServicer defines the operations behind the booking endpoints.
type BookingServicer interface {
	Create(ctx context.Context, sess domain.Session, b domain.Booking) (domain.Booking, error)
	GetByID(ctx context.Context, sess domain.Session, id uuid.UUID) (domain.Booking, error)
	List(ctx context.Context, sess domain.Session) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, sess domain.Session, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error)
	Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error
}

// PriceAlertServicer defines the operations behind the price alert endpoints.
type PriceAlertServicer interface {
	Create(ctx context.Context, sess domain.Session, a domain.PriceAlert) (domain.PriceAlert, error)
	List(ctx context.Context, sess domain.Session) ([]domain.PriceAlert, error)
	SetActive(ctx context.Context, sess domain.Session, id uuid.UUID, active bool) (domain.PriceAlert, error)
	Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error
}

// ProfileServicer defines the operations behind the profile endpoints.
type ProfileServicer interface {
	Get(ctx context.Context, sess domain.Session) (domain.Profile, error)
	Save(ctx context.Context, sess domain.Session, fullName string) (domain.Profile, error)
}

// SearchHistoryServicer defines the operations behind the search history endpoints.
type SearchHistoryServicer interface {
	Record(ctx context.Context, sess domain.Session, h domain.SearchHistory) (domain.SearchHistory, error)
	Recent(ctx context.Context, sess domain.Session, limit *int) ([]domain.SearchHistory, error)
}

// Services bundles the Server's dependencies. A nil field leaves the
// matching routes unregistered, which keeps handler tests small.
type Services struct {
	Trips         TripServicer
	Itinerary     ItineraryServicer
	Bookings      BookingServicer
	PriceAlerts   PriceAlertServicer
	Profiles      ProfileServicer
	SearchHistory SearchHistoryServicer
}

// Server holds the dependencies shared by every handler.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	svc     Services
	openAPI []byte
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// openAPI is served verbatim at GET /openapi.yaml.
func NewServer(svc Services, openAPI []byte, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, openAPI: openAPI, log: log}
}

// Routes builds the API router. /healthz and /openapi.yaml are public;
// every other route runs behind auth, which must attach a domain.Session.
func (s *Server) Routes(auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		if s.svc.Trips != nil {
			r.Get("/trips", s.ListTrips)
			r.Post("/trips", s.CreateTrip)
			r.Get("/trips/{tripId}", s.GetTrip)
			r.Put("/trips/{tripId}", s.UpdateTrip)
			r.Delete("/trips/{tripId}", s.DeleteTrip)
		}
		if s.svc.Itinerary != nil {
			r.Get("/trips/{tripId}/itinerary", s.GetItinerary)
			r.Post("/trips/{tripId}/items", s.CreateItem)
			r.Delete("/trips/{tripId}/items/{itemId}", s.DeleteItem)
		}
		if s.svc.Bookings != nil {
			r.Get("/bookings", s.ListBookings)
			r.Post("/bookings", s.CreateBooking)
			r.Get("/bookings/{bookingId}", s.GetBooking)
			r.Delete("/bookings/{bookingId}", s.DeleteBooking)
			r.Put("/bookings/{bookingId}/status", s.UpdateBookingStatus)
		}
		if s.svc.PriceAlerts != nil {
			r.Get("/price-alerts", s.ListPriceAlerts)
			r.Post("/price-alerts", s.CreatePriceAlert)
			r.Put("/price-alerts/{alertId}/active", s.SetPriceAlertActive)
			r.Delete("/price-alerts/{alertId}", s.DeletePriceAlert)
		}
		if s.svc.Profiles != nil {
			r.Get("/profile", s.GetProfile)
			r.Put("/profile", s.PutProfile)
		}
		if s.svc.SearchHistory != nil {
			r.Get("/search-history", s.ListSearchHistory)
			r.Post("/search-history", s.CreateSearchHistory)
		}
	})

	return r
}
