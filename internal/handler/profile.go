package handler

import (
	"encoding/json"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ProfileRequest is the body of PUT /profile.
type ProfileRequest struct {
	FullName string `json:"full_name"`
}

// Profile is the JSON representation of the caller's profile.
type Profile struct {
	ID        openapi_types.UUID `json:"id"`
	FullName  *string            `json:"full_name"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// SearchHistoryRequest is the body of POST /search-history.
type SearchHistoryRequest struct {
	SearchType   string          `json:"search_type"`
	SearchParams json.RawMessage `json:"search_params"`
}

// SearchHistory is the JSON representation of one recorded search.
type SearchHistory struct {
	ID           openapi_types.UUID `json:"id"`
	SearchType   string             `json:"search_type"`
	SearchParams json.RawMessage    `json:"search_params"`
	CreatedAt    time.Time          `json:"created_at"`
}

// GetProfile handles GET /profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profiles.Get(r.Context(), session(r))
	if err != nil {
		s.fail(w, r, err, "profile")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// PutProfile handles PUT /profile, creating the profile on first use.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	var body ProfileRequest
	if !decodeBody(w, r, &body) {
		return
	}
	p, err := s.svc.Profiles.Save(r.Context(), session(r), body.FullName)
	if err != nil {
		s.fail(w, r, err, "profile")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// ListSearchHistory handles GET /search-history with an optional ?limit=.
func (s *Server) ListSearchHistory(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if !queryParam(w, r, "limit", &limit) {
		return
	}
	rows, err := s.svc.SearchHistory.Recent(r.Context(), session(r), limit)
	if err != nil {
		s.fail(w, r, err, "search")
		return
	}
	out := make([]SearchHistory, len(rows))
	for i, h := range rows {
		out[i] = historyToResponse(h)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateSearchHistory handles POST /search-history.
func (s *Server) CreateSearchHistory(w http.ResponseWriter, r *http.Request) {
	var body SearchHistoryRequest
	if !decodeBody(w, r, &body) {
		return
	}
	h, err := s.svc.SearchHistory.Record(r.Context(), session(r), domain.SearchHistory{
		SearchType:   domain.BookingType(body.SearchType),
		SearchParams: body.SearchParams,
	})
	if err != nil {
		s.fail(w, r, err, "search")
		return
	}
	writeJSON(w, http.StatusCreated, historyToResponse(h))
}

func profileToResponse(p domain.Profile) Profile {
	return Profile{ID: p.ID, FullName: optionalString(p.FullName), CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func historyToResponse(h domain.SearchHistory) SearchHistory {
	return SearchHistory{ID: h.ID, SearchType: string(h.SearchType), SearchParams: h.SearchParams, CreatedAt: h.CreatedAt}
}
