package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
// Missing dates decode as nil and are reported by validation.
type TripRequest struct {
	Name        string              `json:"name"`
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	TripType    string              `json:"trip_type"`
	IsPrivate   bool                `json:"is_private"`
}

// Trip is the JSON representation of a trip with its derived values.
type Trip struct {
	ID           openapi_types.UUID `json:"id"`
	Name         string             `json:"name"`
	Destination  string             `json:"destination"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	TripType     string             `json:"trip_type"`
	IsPrivate    bool               `json:"is_private"`
	Status       string             `json:"status"`
	DurationDays int                `json:"duration_days"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := requestToTrip(uuid.Nil, body)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}

	created, err := s.svc.Trips.Create(r.Context(), session(r), trip)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?search=, ?status= (all, upcoming, current, past), ?sort= (date,
// destination), ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		search, status, sortKey *string
		page, limit             *int
	)
	if !queryParam(w, r, "search", &search) ||
		!queryParam(w, r, "status", &status) ||
		!queryParam(w, r, "sort", &sortKey) ||
		!queryParam(w, r, "page", &page) ||
		!queryParam(w, r, "limit", &limit) {
		return
	}

	q := domain.TripQuery{}
	if search != nil {
		q.Search = *search
	}
	if status != nil {
		q.Status = domain.StatusFilter(*status)
	}
	if sortKey != nil {
		q.Sort = domain.SortKey(*sortKey)
	}
	params := domain.NewPaginationParams(page, limit)

	trips, total, err := s.svc.Trips.List(r.Context(), session(r), q, params)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}

	trip, err := s.svc.Trips.GetByID(r.Context(), session(r), id)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := requestToTrip(id, body)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}

	updated, err := s.svc.Trips.Update(r.Context(), session(r), trip)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}

	if err := s.svc.Trips.Delete(r.Context(), session(r), id); err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a TripRequest body into a domain.Trip, keeping the
// path ID for updates. A date missing from the body is a validation error;
// any date that is present, 0001-01-01 included, is passed on as given.
func requestToTrip(id uuid.UUID, body TripRequest) (domain.Trip, error) {
	if err := domain.RequireTripDates(body.StartDate != nil, body.EndDate != nil); err != nil {
		return domain.Trip{}, err
	}
	t := domain.Trip{
		ID:          id,
		Name:        body.Name,
		Destination: body.Destination,
		TripType:    domain.TripType(body.TripType),
		IsPrivate:   body.IsPrivate,
	}
	t.StartDate = body.StartDate.Time
	t.EndDate = body.EndDate.Time
	return t, nil
}

// tripToResponse converts a domain.TripSummary into its JSON representation.
func tripToResponse(s domain.TripSummary) Trip {
	t := s.Trip
	return Trip{
		ID:           t.ID,
		Name:         t.Name,
		Destination:  t.Destination,
		StartDate:    openapi_types.Date{Time: t.StartDate},
		EndDate:      openapi_types.Date{Time: t.EndDate},
		TripType:     string(t.TripType),
		IsPrivate:    t.IsPrivate,
		Status:       string(s.Status),
		DurationDays: s.DurationDays,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
