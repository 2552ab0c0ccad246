package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// PriceAlertRequest is the body of POST /price-alerts.
// is_active defaults to true when omitted.
type PriceAlertRequest struct {
	AlertType          string  `json:"alert_type"`
	RouteOrDestination string  `json:"route_or_destination"`
	TargetPrice        float64 `json:"target_price"`
	Currency           string  `json:"currency"`
	IsActive           *bool   `json:"is_active"`
}

// PriceAlertActiveRequest is the body of PUT /price-alerts/{alertId}/active.
type PriceAlertActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// PriceAlert is the JSON representation of a price alert.
type PriceAlert struct {
	ID                 openapi_types.UUID `json:"id"`
	AlertType          string             `json:"alert_type"`
	RouteOrDestination string             `json:"route_or_destination"`
	TargetPrice        float64            `json:"target_price"`
	Currency           string             `json:"currency"`
	IsActive           bool               `json:"is_active"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ListPriceAlerts handles GET /price-alerts.
func (s *Server) ListPriceAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.PriceAlerts.List(r.Context(), session(r))
	if err != nil {
		s.fail(w, r, err, "price alert")
		return
	}
	out := make([]PriceAlert, len(alerts))
	for i, a := range alerts {
		out[i] = alertToResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreatePriceAlert handles POST /price-alerts.
func (s *Server) CreatePriceAlert(w http.ResponseWriter, r *http.Request) {
	var body PriceAlertRequest
	if !decodeBody(w, r, &body) {
		return
	}
	a := domain.PriceAlert{
		AlertType:          domain.BookingType(body.AlertType),
		RouteOrDestination: body.RouteOrDestination,
		TargetPrice:        body.TargetPrice,
		Currency:           body.Currency,
		IsActive:           body.IsActive == nil || *body.IsActive,
	}
	created, err := s.svc.PriceAlerts.Create(r.Context(), session(r), a)
	if err != nil {
		s.fail(w, r, err, "price alert")
		return
	}
	writeJSON(w, http.StatusCreated, alertToResponse(created))
}

// SetPriceAlertActive handles PUT /price-alerts/{alertId}/active.
func (s *Server) SetPriceAlertActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "alertId")
	if !ok {
		return
	}
	var body PriceAlertActiveRequest
	if !decodeBody(w, r, &body) {
		return
	}
	a, err := s.svc.PriceAlerts.SetActive(r.Context(), session(r), id, body.IsActive)
	if err != nil {
		s.fail(w, r, err, "price alert")
		return
	}
	writeJSON(w, http.StatusOK, alertToResponse(a))
}

// DeletePriceAlert handles DELETE /price-alerts/{alertId}.
func (s *Server) DeletePriceAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "alertId")
	if !ok {
		return
	}
	if err := s.svc.PriceAlerts.Delete(r.Context(), session(r), id); err != nil {
		s.fail(w, r, err, "price alert")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func alertToResponse(a domain.PriceAlert) PriceAlert {
	return PriceAlert{
		ID:                 a.ID,
		AlertType:          string(a.AlertType),
		RouteOrDestination: a.RouteOrDestination,
		TargetPrice:        a.TargetPrice,
		Currency:           a.Currency,
		IsActive:           a.IsActive,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
