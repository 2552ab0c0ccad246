package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ProfileService reads and writes the caller's own profile.
type ProfileService struct {
	repo repo.ProfileRepo
}

// NewProfileService constructs a ProfileService backed by the provided repo.
func NewProfileService(r repo.ProfileRepo) *ProfileService {
	return &ProfileService{repo: r}
}

// Get returns the caller's profile.
// Returns domain.ErrNotFound until the profile has been saved once.
func (s *ProfileService) Get(ctx context.Context, sess domain.Session) (domain.Profile, error) {
	if err := requireSession("service.ProfileService.Get", sess); err != nil {
		return domain.Profile{}, err
	}
	result, err := s.repo.Get(ctx, sess.UserID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return result, nil
}

// Save creates or updates the caller's profile.
func (s *ProfileService) Save(ctx context.Context, sess domain.Session, fullName string) (domain.Profile, error) {
	if err := requireSession("service.ProfileService.Save", sess); err != nil {
		return domain.Profile{}, err
	}
	p := domain.Profile{ID: sess.UserID, FullName: strings.TrimSpace(fullName)}
	if err := domain.ValidateProfile(p); err != nil {
		return domain.Profile{}, err
	}
	result, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.ProfileService.Save: %w", err)
	}
	return result, nil
}
