package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/peacein/brewpoint-backend/pkg/errors"

	"github.com/peacein/brewpoint-backend/pkg/db/models"
	"github.com/peacein/brewpoint-backend/pkg/enums"
)

// Service exposes order lookups and status management. Order creation goes
// through the checkout service, which owns the placement transaction.
type Service interface {
	List(ctx context.Context, limit int) ([]models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Order, error) {
	return s.repo.List(ctx, limit)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.repo.UpdateStatus(ctx, id, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating order status")
	}
	return order, nil
}
