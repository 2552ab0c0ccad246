package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SearchHistory records one past search so it can be offered again.
type SearchHistory struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SearchType BookingType
	// SearchParams is the submitted search form, always a JSON object.
	SearchParams json.RawMessage
	CreatedAt    time.Time
}

// ValidateSearchHistory checks the search type and payload.
func ValidateSearchHistory(h SearchHistory) error {
	if !h.SearchType.Valid() {
		return invalid("search_type", "invalid_search_type", "search_type must be one of flight, hotel, activity, transport")
	}
	if !isJSONObject(h.SearchParams) {
		return invalid("search_params", "search_params_required", "search_params must be a JSON object")
	}
	return nil
}
