package domain

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter selects trips by derived status. StatusAll disables the filter.
type StatusFilter string

const (
	StatusAll StatusFilter = "all"
)

// SortKey selects the ordering of a trip listing.
type SortKey string

const (
	// SortByDate orders by start date, most recent first.
	SortByDate SortKey = "date"
	// SortByDestination orders by destination using case-insensitive collation.
	SortByDestination SortKey = "destination"
)

// TripQuery is the filter/sort configuration for a trip listing.
// Zero values mean: match everything, any status, sort by date.
type TripQuery struct {
	Search string
	Status StatusFilter
	Sort   SortKey
}

// ValidateTripQuery rejects unknown status filters and sort keys.
func ValidateTripQuery(q TripQuery) error {
	switch q.Status {
	case "", StatusAll, StatusFilter(StatusUpcoming), StatusFilter(StatusCurrent), StatusFilter(StatusPast):
	default:
		return invalid("status", "invalid_status_filter", "status must be one of all, upcoming, current, past")
	}
	switch q.Sort {
	case "", SortByDate, SortByDestination:
	default:
		return invalid("sort", "invalid_sort_key", "sort must be one of date, destination")
	}
	return nil
}

// ApplyTripQuery filters and orders trips according to q, classifying status
// against now. The input slice is not modified. Ties on the sort key are
// broken by trip ID so equal inputs always produce equal output.
func ApplyTripQuery(trips []Trip, q TripQuery, now time.Time) []Trip {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Name), needle) &&
			!strings.Contains(strings.ToLower(t.Destination), needle) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && StatusFilter(TripStatus(t, now)) != q.Status {
			continue
		}
		out = append(out, t)
	}

	byID := func(a, b Trip) bool { return a.ID.String() < b.ID.String() }

	switch q.Sort {
	case SortByDestination:
		// A Collator keeps internal buffers and is not safe for concurrent use.
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			if r := c.CompareString(out[i].Destination, out[j].Destination); r != 0 {
				return r < 0
			}
			return byID(out[i], out[j])
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			si, sj := CalendarDate(out[i].StartDate), CalendarDate(out[j].StartDate)
			if !si.Equal(sj) {
				return si.After(sj)
			}
			return byID(out[i], out[j])
		})
	}
	return out
}
