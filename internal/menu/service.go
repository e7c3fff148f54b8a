package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/peacein/brewpoint-backend/pkg/errors"

	"github.com/peacein/brewpoint-backend/pkg/db/models"
)

// Service exposes the menu catalog to the API layer.
type Service interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListOptions(ctx context.Context) ([]models.MenuOption, error)
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.MenuItem, error)
}

type service struct {
	repo CatalogRepository
}

func NewService(repo CatalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu: catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("menu item %s not found", id))
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading menu item")
	}
	return item, nil
}

func (s *service) ListOptions(ctx context.Context) ([]models.MenuOption, error) {
	return s.repo.ListOptions(ctx)
}

func (s *service) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.MenuItem, error) {
	if stock < 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "stock must be zero or greater")
	}
	item, err := s.repo.SetStock(ctx, id, stock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("menu item %s not found", id))
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating stock")
	}
	return item, nil
}
