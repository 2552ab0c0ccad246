package domain

import (
	"sort"
	"time"
)

// Status is the upcoming/current/past classification of a trip relative to
// a reference instant. It is always derived, never stored.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusCurrent  Status = "current"
	StatusPast     Status = "past"
)

// CalendarDate reduces t to its calendar date (as seen in t's own location)
// and returns that date as midnight UTC. All date arithmetic in this package
// operates on values produced by CalendarDate, which keeps it free of DST gaps.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// TripDurationDays returns the inclusive number of days a trip spans.
// A trip that starts and ends on the same date lasts one day.
// Days are counted on Unix seconds, which unlike time.Duration do not
// saturate for ranges longer than about 292 years.
func TripDurationDays(t Trip) int {
	start, end := CalendarDate(t.StartDate), CalendarDate(t.EndDate)
	return int(end.Unix()/secondsPerDay-start.Unix()/secondsPerDay) + 1
}

// DayBucket returns the calendar date of the given 1-based trip day.
func DayBucket(t Trip, dayNumber int) time.Time {
	return CalendarDate(t.StartDate).AddDate(0, 0, dayNumber-1)
}

// TripStatus classifies a trip against ref at calendar-date granularity.
// ref is reduced to its date in its own location, so callers choose the
// timezone by converting ref before the call. Both boundary dates count
// as current.
func TripStatus(t Trip, ref time.Time) Status {
	today := CalendarDate(ref)
	switch {
	case CalendarDate(t.StartDate).After(today):
		return StatusUpcoming
	case CalendarDate(t.EndDate).Before(today):
		return StatusPast
	default:
		return StatusCurrent
	}
}

// TripSummary is a trip together with the values derived from it at one
// reference instant.
type TripSummary struct {
	Trip         Trip
	Status       Status
	DurationDays int
}

// Summarize derives status and duration for t against ref.
func Summarize(t Trip, ref time.Time) TripSummary {
	return TripSummary{Trip: t, Status: TripStatus(t, ref), DurationDays: TripDurationDays(t)}
}

// GroupItemsByDay partitions items by DayNumber and orders each bucket by
// OrderIndex ascending. Items with equal OrderIndex keep their input order.
func GroupItemsByDay(items []ItineraryItem) map[int][]ItineraryItem {
	buckets := make(map[int][]ItineraryItem)
	for _, it := range items {
		buckets[it.DayNumber] = append(buckets[it.DayNumber], it)
	}
	for _, b := range buckets {
		sort.SliceStable(b, func(i, j int) bool { return b[i].OrderIndex < b[j].OrderIndex })
	}
	return buckets
}

// NextOrderIndex returns the order index for an item appended to bucket:
// 0 for an empty bucket, otherwise one past the largest index present.
// Indexes freed by deletes are never reused.
func NextOrderIndex(bucket []ItineraryItem) int {
	next := 0
	for _, it := range bucket {
		if it.OrderIndex >= next {
			next = it.OrderIndex + 1
		}
	}
	return next
}

// BuildItinerary assembles the day-by-day view of a trip. Days covers
// exactly TripDurationDays(trip) entries, including days with no items.
// Items whose DayNumber falls outside the trip (left behind after the trip's
// dates were shortened) are returned in Unscheduled, ordered by day then
// order index, rather than being dropped. Status is left for the caller,
// which owns the reference instant.
func BuildItinerary(trip Trip, items []ItineraryItem) Itinerary {
	n := TripDurationDays(trip)
	buckets := GroupItemsByDay(items)

	days := make([]ItineraryDay, n)
	for i := range days {
		dn := i + 1
		dayItems := buckets[dn]
		if dayItems == nil {
			dayItems = []ItineraryItem{}
		}
		days[i] = ItineraryDay{DayNumber: dn, Date: DayBucket(trip, dn), Items: dayItems}
		delete(buckets, dn)
	}

	orphanDays := make([]int, 0, len(buckets))
	for dn := range buckets {
		orphanDays = append(orphanDays, dn)
	}
	sort.Ints(orphanDays)

	unscheduled := []ItineraryItem{}
	for _, dn := range orphanDays {
		unscheduled = append(unscheduled, buckets[dn]...)
	}

	return Itinerary{Trip: trip, DurationDays: n, Days: days, Unscheduled: unscheduled}
}

// ComposeSlot turns "HH:MM" start and end clock values entered for a trip day
// into absolute timestamps in loc. An end clock earlier than the start clock
// means the activity runs past midnight, so the end lands on the next date.
func ComposeSlot(t Trip, dayNumber int, startClock, endClock string, loc *time.Location) (time.Time, time.Time, error) {
	if startClock == "" {
		return time.Time{}, time.Time{}, invalid("start_time", "start_time_required", "start_time is required")
	}
	if endClock == "" {
		return time.Time{}, time.Time{}, invalid("end_time", "end_time_required", "end_time is required")
	}
	sc, err := time.Parse(ClockLayout, startClock)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("start_time", "invalid_start_time", "start_time must be HH:MM")
	}
	ec, err := time.Parse(ClockLayout, endClock)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("end_time", "invalid_end_time", "end_time must be HH:MM")
	}

	date := DayBucket(t, dayNumber)
	start := time.Date(date.Year(), date.Month(), date.Day(), sc.Hour(), sc.Minute(), 0, 0, loc)
	end := time.Date(date.Year(), date.Month(), date.Day(), ec.Hour(), ec.Minute(), 0, 0, loc)
	if end.Before(start) {
		end = time.Date(date.Year(), date.Month(), date.Day()+1, ec.Hour(), ec.Minute(), 0, 0, loc)
	}
	return start, end, nil
}

// ClockLayout is the time-of-day format accepted for itinerary slots.
const ClockLayout = "15:04"
