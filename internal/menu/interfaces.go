package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peacein/brewpoint-backend/pkg/db/models"
)

// CatalogRepository defines the persistence surface required by the menu
// service and the placement engine.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository
	List(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
	SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.MenuItem, error)
	ListOptions(ctx context.Context) ([]models.MenuOption, error)
	OptionsByKey(ctx context.Context) (map[string]models.MenuOption, error)
}
