package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// Bounds for SearchHistoryService.Recent.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// SearchHistoryService records searches and lists recent ones.
type SearchHistoryService struct {
	repo repo.SearchHistoryRepo
}

// NewSearchHistoryService constructs a SearchHistoryService backed by the provided repo.
func NewSearchHistoryService(r repo.SearchHistoryRepo) *SearchHistoryService {
	return &SearchHistoryService{repo: r}
}

// Record validates and stores one search.
func (s *SearchHistoryService) Record(ctx context.Context, sess domain.Session, h domain.SearchHistory) (domain.SearchHistory, error) {
	if err := requireSession("service.SearchHistoryService.Record", sess); err != nil {
		return domain.SearchHistory{}, err
	}
	h.UserID = sess.UserID
	if err := domain.ValidateSearchHistory(h); err != nil {
		return domain.SearchHistory{}, err
	}
	result, err := s.repo.Create(ctx, h)
	if err != nil {
		return domain.SearchHistory{}, fmt.Errorf("service.SearchHistoryService.Record: %w", err)
	}
	return result, nil
}

// Recent returns the caller's latest searches, newest first.
// A nil or non-positive limit means DefaultHistoryLimit; larger values are
// capped at MaxHistoryLimit.
func (s *SearchHistoryService) Recent(ctx context.Context, sess domain.Session, limit *int) ([]domain.SearchHistory, error) {
	if err := requireSession("service.SearchHistoryService.Recent", sess); err != nil {
		return nil, err
	}
	n := DefaultHistoryLimit
	if limit != nil && *limit > 0 {
		n = min(*limit, MaxHistoryLimit)
	}
	out, err := s.repo.ListRecent(ctx, sess.UserID, n)
	if err != nil {
		return nil, fmt.Errorf("service.SearchHistoryService.Recent: %w", err)
	}
	if out == nil {
		return []domain.SearchHistory{}, nil
	}
	return out, nil
}
