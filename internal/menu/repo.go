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

// Repository implements CatalogRepository on top of gorm.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) CatalogRepository {
	return &Repository{db: tx}
}

func (r *Repository) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DecrementStock atomically subtracts qty from the item's stock. The guard
// in the WHERE clause means the update only lands when enough stock remains;
// stock never goes negative and is never clamped. When no row is updated the
// item is re-read to distinguish a missing item from insufficient stock.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return apperrors.New(apperrors.CodeValidation, fmt.Sprintf("decrement quantity must be positive, got %d", qty))
	}
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return fmt.Errorf("decrementing stock for %s: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	item, err := r.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("menu item %s not found", id))
		}
		return fmt.Errorf("re-reading menu item %s: %w", id, err)
	}
	return apperrors.New(
		apperrors.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s", item.Name),
	).WithDetails(map[string]any{
		"menu_id":   id.String(),
		"available": item.Stock,
	})
}

// SetStock overwrites the item's stock level in a single statement and
// returns the updated item.
func (r *Repository) SetStock(ctx context.Context, id uuid.UUID, stock int) (*models.MenuItem, error) {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ?", id).
		UpdateColumn("stock", stock)
	if res.Error != nil {
		return nil, fmt.Errorf("setting stock for %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repository) ListOptions(ctx context.Context) ([]models.MenuOption, error) {
	var opts []models.MenuOption
	if err := r.db.WithContext(ctx).Order("key asc").Find(&opts).Error; err != nil {
		return nil, fmt.Errorf("listing menu options: %w", err)
	}
	return opts, nil
}

func (r *Repository) OptionsByKey(ctx context.Context) (map[string]models.MenuOption, error) {
	opts, err := r.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.MenuOption, len(opts))
	for _, opt := range opts {
		byKey[opt.Key] = opt
	}
	return byKey, nil
}
