package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PriceAlert is a price-watch subscription on a route or destination.
type PriceAlert struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	AlertType          BookingType
	RouteOrDestination string
	TargetPrice        float64
	Currency           string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NormalizePriceAlert trims the route and fills the default currency.
func NormalizePriceAlert(a PriceAlert) PriceAlert {
	a.RouteOrDestination = strings.TrimSpace(a.RouteOrDestination)
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))
	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}
	return a
}

// ValidatePriceAlert checks required fields and enum membership.
func ValidatePriceAlert(a PriceAlert) error {
	if strings.TrimSpace(a.RouteOrDestination) == "" {
		return invalid("route_or_destination", "route_required", "route_or_destination is required")
	}
	if !a.AlertType.Valid() {
		return invalid("alert_type", "invalid_alert_type", "alert_type must be one of flight, hotel, activity, transport")
	}
	if a.TargetPrice <= 0 {
		return invalid("target_price", "target_price_not_positive", "target_price must be greater than zero")
	}
	if !validCurrency(a.Currency) {
		return invalid("currency", "invalid_currency", "currency must be an ISO 4217 code")
	}
	return nil
}
