package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ItemRequest is the body of POST /trips/{tripId}/items. start_time and
// end_time are "HH:MM" clock values on the given day.
type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	DayNumber   int    `json:"day_number"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

// Item is the JSON representation of an itinerary item.
type Item struct {
	ID          openapi_types.UUID `json:"id"`
	TripID      openapi_types.UUID `json:"trip_id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	Location    *string            `json:"location,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	DayNumber   int                `json:"day_number"`
	OrderIndex  int                `json:"order_index"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Day is one calendar day of an itinerary.
type Day struct {
	DayNumber int                `json:"day_number"`
	Date      openapi_types.Date `json:"date"`
	Items     []Item             `json:"items"`
}

// ItineraryResponse is the body of GET /trips/{tripId}/itinerary.
type ItineraryResponse struct {
	Trip        Trip   `json:"trip"`
	Days        []Day  `json:"days"`
	Unscheduled []Item `json:"unscheduled"`
}

// itineraryCSVHeaders defines the column names written as the first row of
// the CSV itinerary.
var itineraryCSVHeaders = []string{
	"day_number", "date", "order_index", "title",
	"start_time", "end_time", "location", "description", "notes",
}

// GetItinerary handles GET /trips/{tripId}/itinerary.
// Use ?format=csv to receive one CSV row per item; default is JSON.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	if format != nil && *format != "json" && *format != "csv" {
		badRequest(w, "format must be json or csv")
		return
	}

	it, err := s.svc.Itinerary.Itinerary(r.Context(), session(r), tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}

	if format != nil && *format == "csv" {
		var buf bytes.Buffer
		if err := encodeItineraryCSV(&buf, it); err != nil {
			s.fail(w, r, fmt.Errorf("handler.Server.GetItinerary: %w", err), "trip")
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="itinerary-`+it.Trip.ID.String()+`.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// CreateItem handles POST /trips/{tripId}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body ItemRequest
	if !decodeBody(w, r, &body) {
		return
	}

	item, err := s.svc.Itinerary.AddItem(r.Context(), session(r), tripID, domain.ItemDraft{
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		Notes:       body.Notes,
		DayNumber:   body.DayNumber,
		StartClock:  body.StartTime,
		EndClock:    body.EndTime,
	})
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(item))
}

// DeleteItem handles DELETE /trips/{tripId}/items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}

	if err := s.svc.Itinerary.DeleteItem(r.Context(), session(r), tripID, itemID); err != nil {
		s.fail(w, r, err, "item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func itineraryToResponse(it domain.Itinerary) ItineraryResponse {
	days := make([]Day, len(it.Days))
	for i, d := range it.Days {
		days[i] = Day{DayNumber: d.DayNumber, Date: openapi_types.Date{Time: d.Date}, Items: itemsToResponse(d.Items)}
	}
	return ItineraryResponse{
		Trip:        tripToResponse(domain.TripSummary{Trip: it.Trip, Status: it.Status, DurationDays: it.DurationDays}),
		Days:        days,
		Unscheduled: itemsToResponse(it.Unscheduled),
	}
}

func itemsToResponse(items []domain.ItineraryItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = itemToResponse(it)
	}
	return out
}

// itemToResponse converts a domain.ItineraryItem into its JSON representation.
// Empty optional text fields become nil pointers (omitted in JSON).
func itemToResponse(it domain.ItineraryItem) Item {
	return Item{
		ID:          it.ID,
		TripID:      it.TripID,
		Title:       it.Title,
		Description: optionalString(it.Description),
		Location:    optionalString(it.Location),
		Notes:       optionalString(it.Notes),
		StartTime:   it.StartTime,
		EndTime:     it.EndTime,
		DayNumber:   it.DayNumber,
		OrderIndex:  it.OrderIndex,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// encodeItineraryCSV writes the itinerary as CSV, one row per item in day
// order. Unscheduled items follow with an empty date column.
func encodeItineraryCSV(w io.Writer, it domain.Itinerary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(itineraryCSVHeaders); err != nil {
		return err
	}
	for _, d := range it.Days {
		for _, item := range d.Items {
			if err := cw.Write(itemToCSVRecord(item, d.Date.Format(time.DateOnly))); err != nil {
				return err
			}
		}
	}
	for _, item := range it.Unscheduled {
		if err := cw.Write(itemToCSVRecord(item, "")); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func itemToCSVRecord(it domain.ItineraryItem, date string) []string {
	return []string{
		strconv.Itoa(it.DayNumber),
		date,
		strconv.Itoa(it.OrderIndex),
		it.Title,
		it.StartTime.Format(time.RFC3339),
		it.EndTime.Format(time.RFC3339),
		it.Location,
		it.Description,
		it.Notes,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
