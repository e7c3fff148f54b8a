package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peacein/brewpoint-backend/pkg/config"
	"github.com/peacein/brewpoint-backend/pkg/db/models"
	pkgerrors "github.com/peacein/brewpoint-backend/pkg/errors"
	"github.com/peacein/brewpoint-backend/pkg/redis"
)

type blobStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	OptionsByKey(ctx context.Context) (map[string]models.MenuOption, error)
}

// AddLineInput is a request to add a priced line to a session cart.
type AddLineInput struct {
	MenuID   uuid.UUID `json:"menuId"`
	Quantity int       `json:"quantity"`
	Options  []string  `json:"options"`
}

// Service manages session carts.
type Service interface {
	Fetch(ctx context.Context, sessionID string) (*Cart, error)
	Add(ctx context.Context, sessionID string, input AddLineInput) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*Cart, error)
	Remove(ctx context.Context, sessionID string, lineID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    blobStore
	catalog  catalogReader
	ttl      time.Duration
	maxLines int
}

// NewService builds the cart service.
func NewService(store blobStore, catalog catalogReader, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	if cfg.MaxLines <= 0 {
		return nil, fmt.Errorf("cart max lines must be positive")
	}
	return &service{
		store:    store,
		catalog:  catalog,
		ttl:      cfg.TTL,
		maxLines: cfg.MaxLines,
	}, nil
}

func (s *service) Fetch(ctx context.Context, sessionID string) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	return s.load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, input AddLineInput) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if input.MenuID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item, err := s.catalog.FindByID(ctx, input.MenuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu item %s not found", input.MenuID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading menu item")
	}

	options, err := s.catalog.OptionsByKey(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading menu options")
	}
	surcharge := 0
	for _, key := range input.Options {
		opt, ok := options[key]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown option %q", key))
		}
		surcharge += opt.Surcharge
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if line.MenuID == input.MenuID && sameOptions(line.Options, input.Options) {
			line.Quantity += input.Quantity
			merged = true
			break
		}
	}
	if !merged {
		if len(cart.Lines) >= s.maxLines {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("cart is limited to %d lines", s.maxLines))
		}
		cart.Lines = append(cart.Lines, Line{
			ID:              uuid.New(),
			MenuID:          item.ID,
			Name:            item.Name,
			UnitPrice:       item.Price,
			Quantity:        input.Quantity,
			Options:         input.Options,
			OptionSurcharge: surcharge,
		})
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			cart.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %s not found", lineID))
	}

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Remove(ctx context.Context, sessionID string, lineID uuid.UUID) (*Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	kept := cart.Lines[:0]
	found := false
	for _, line := range cart.Lines {
		if line.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %s not found", lineID))
	}
	cart.Lines = kept

	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	if err := s.store.Del(ctx, s.store.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{Lines: []Line{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart")
	}
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	return &cart, nil
}

// save recomputes totals and rewrites the blob, refreshing the TTL so active
// sessions keep their cart alive.
func (s *service) save(ctx context.Context, sessionID string, cart *Cart) error {
	cart.recalc()
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing cart")
	}
	return nil
}

func validateSession(sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return nil
}
