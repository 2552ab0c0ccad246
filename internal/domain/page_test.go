package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(intPtr(0), intPtr(-5)))
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, domain.NewPaginationParams(intPtr(3), intPtr(500)))
}

func TestPaginationParams_Window(t *testing.T) {
	tests := []struct {
		name   string
		p      domain.PaginationParams
		n      int
		lo, hi int
	}{
		{"first page", domain.PaginationParams{Page: 1, Limit: 2}, 3, 0, 2},
		{"partial last page", domain.PaginationParams{Page: 2, Limit: 2}, 3, 2, 3},
		{"exactly at end", domain.PaginationParams{Page: 3, Limit: 2}, 4, 4, 4},
		{"past the end", domain.PaginationParams{Page: 9, Limit: 20}, 3, 3, 3},
		{"empty collection", domain.PaginationParams{Page: 1, Limit: 20}, 0, 0, 0},
		{"zero page treated as first", domain.PaginationParams{Page: 0, Limit: 2}, 3, 0, 2},
		{"zero limit uses default", domain.PaginationParams{Page: 1}, 30, 0, 20},
		{"page that would overflow", domain.PaginationParams{Page: 100000000000000001, Limit: 100}, 3, 3, 3},
		{"max int page", domain.PaginationParams{Page: math.MaxInt, Limit: 1}, 5, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.p.Window(tt.n)
			assert.Equal(t, tt.lo, lo, "lo")
			assert.Equal(t, tt.hi, hi, "hi")
		})
	}
}
