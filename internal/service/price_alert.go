package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// PriceAlertService implements business logic for PriceAlert operations.
type PriceAlertService struct {
	repo repo.PriceAlertRepo
}

// NewPriceAlertService constructs a PriceAlertService backed by the provided repo.
func NewPriceAlertService(r repo.PriceAlertRepo) *PriceAlertService {
	return &PriceAlertService{repo: r}
}

// Create validates and persists an alert owned by the session's user.
func (s *PriceAlertService) Create(ctx context.Context, sess domain.Session, a domain.PriceAlert) (domain.PriceAlert, error) {
	if err := requireSession("service.PriceAlertService.Create", sess); err != nil {
		return domain.PriceAlert{}, err
	}
	a.UserID = sess.UserID
	a = domain.NormalizePriceAlert(a)
	if err := domain.ValidatePriceAlert(a); err != nil {
		return domain.PriceAlert{}, err
	}
	result, err := s.repo.Create(ctx, a)
	if err != nil {
		return domain.PriceAlert{}, fmt.Errorf("service.PriceAlertService.Create: %w", err)
	}
	return result, nil
}

// List returns the user's alerts, newest first.
func (s *PriceAlertService) List(ctx context.Context, sess domain.Session) ([]domain.PriceAlert, error) {
	if err := requireSession("service.PriceAlertService.List", sess); err != nil {
		return nil, err
	}
	alerts, err := s.repo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("service.PriceAlertService.List: %w", err)
	}
	if alerts == nil {
		return []domain.PriceAlert{}, nil
	}
	return alerts, nil
}

// SetActive switches an alert on or off.
func (s *PriceAlertService) SetActive(ctx context.Context, sess domain.Session, id uuid.UUID, active bool) (domain.PriceAlert, error) {
	if err := requireSession("service.PriceAlertService.SetActive", sess); err != nil {
		return domain.PriceAlert{}, err
	}
	result, err := s.repo.SetActive(ctx, sess.UserID, id, active)
	if err != nil {
		return domain.PriceAlert{}, fmt.Errorf("service.PriceAlertService.SetActive: %w", err)
	}
	return result, nil
}

// Delete removes an alert.
func (s *PriceAlertService) Delete(ctx context.Context, sess domain.Session, id uuid.UUID) error {
	if err := requireSession("service.PriceAlertService.Delete", sess); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, sess.UserID, id); err != nil {
		return fmt.Errorf("service.PriceAlertService.Delete: %w", err)
	}
	return nil
}
