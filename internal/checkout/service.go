package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/peacein/brewpoint-backend/internal/menu"
	"github.com/peacein/brewpoint-backend/internal/orders"
	"github.com/peacein/brewpoint-backend/pkg/db"
	"github.com/peacein/brewpoint-backend/pkg/db/models"
	"github.com/peacein/brewpoint-backend/pkg/enums"
	pkgerrors "github.com/peacein/brewpoint-backend/pkg/errors"
	"github.com/peacein/brewpoint-backend/pkg/logger"
	"github.com/peacein/brewpoint-backend/pkg/metrics"
	"github.com/peacein/brewpoint-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// LineRequest is one requested order line as submitted by the client.
type LineRequest struct {
	MenuID   uuid.UUID `json:"menuId"`
	Quantity int       `json:"quantity"`
	Options  []string  `json:"options"`
}

// PlaceOrderInput carries the requested lines plus the client's view of the
// total. When DeclaredTotal is set it must match the recomputed total.
type PlaceOrderInput struct {
	Lines         []LineRequest
	DeclaredTotal *int
}

// Service executes order placement: stock reservation and order creation in
// one transaction.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
}

type service struct {
	tx         txRunner
	catalog    menu.CatalogRepository
	ordersRepo orders.Repository
	metrics    *metrics.PlacementMetrics
	log        *logger.Logger
}

// NewService builds the placement service.
func NewService(
	tx txRunner,
	catalog menu.CatalogRepository,
	ordersRepo orders.Repository,
	placementMetrics *metrics.PlacementMetrics,
	log *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:         tx,
		catalog:    catalog,
		ordersRepo: ordersRepo,
		metrics:    placementMetrics,
		log:        log,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	start := time.Now()
	order, err := s.placeOrder(ctx, input)
	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		s.metrics.ObserveDuration("failure", time.Since(start))
		s.metrics.IncFailed(string(code))
		return nil, err
	}
	s.metrics.ObserveDuration("success", time.Since(start))
	s.metrics.IncPlaced()

	ctx = s.log.WithOrderID(ctx, order.ID.String())
	s.log.Info(ctx, fmt.Sprintf("order placed: %d item(s), total %d", len(order.Items), order.TotalAmount))
	return order, nil
}

func (s *service) placeOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		catalog := s.catalog.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		options, err := catalog.OptionsByKey(ctx)
		if err != nil {
			return err
		}

		lines := make(types.OrderLines, 0, len(input.Lines))
		total := 0
		for _, req := range input.Lines {
			line, err := s.reserveLine(ctx, catalog, options, req)
			if err != nil {
				return err
			}
			lines = append(lines, *line)
			total += line.LineTotal
		}

		if input.DeclaredTotal != nil && *input.DeclaredTotal != total {
			return pkgerrors.New(pkgerrors.CodeValidation, "declared total does not match priced total").
				WithDetails(map[string]any{
					"declared": *input.DeclaredTotal,
					"computed": total,
				})
		}

		order := &models.Order{
			ID:          uuid.New(),
			Items:       lines,
			TotalAmount: total,
			Status:      enums.OrderStatusPending,
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// reserveLine prices one line and decrements its stock inside the placement
// transaction. Option surcharges are applied per unit.
func (s *service) reserveLine(
	ctx context.Context,
	catalog menu.CatalogRepository,
	options map[string]models.MenuOption,
	req LineRequest,
) (*types.OrderLine, error) {
	item, err := catalog.FindByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu item %s not found", req.MenuID))
		}
		return nil, err
	}

	surcharge := 0
	for _, key := range req.Options {
		opt, ok := options[key]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown option %q", key)).
				WithDetails(map[string]any{"menu_id": req.MenuID.String(), "option": key})
		}
		surcharge += opt.Surcharge
	}

	if err := catalog.DecrementStock(ctx, req.MenuID, req.Quantity); err != nil {
		return nil, err
	}

	unit := item.Price + surcharge
	return &types.OrderLine{
		MenuID:          item.ID,
		Name:            item.Name,
		UnitPrice:       item.Price,
		Quantity:        req.Quantity,
		Options:         req.Options,
		OptionSurcharge: surcharge,
		LineTotal:       unit * req.Quantity,
	}, nil
}

func validateInput(input PlaceOrderInput) error {
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order contains no items")
	}
	for i, line := range input.Lines {
		if line.MenuID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: menu id required", i))
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %d: quantity must be positive", i))
		}
	}
	if input.DeclaredTotal != nil && *input.DeclaredTotal < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "declared total must be zero or greater")
	}
	return nil
}

// classify maps transaction failures to API error codes. Typed errors pass
// through untouched; serialization failures become retryable conflicts; a
// stock check violation means a concurrent writer drove stock below zero
// before ours committed, so it is reported as insufficient stock.
func classify(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsSerializationFailure(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "placement conflicted with a concurrent order, retry")
	}
	if db.IsCheckViolation(err, "menu_items_stock_non_negative") {
		return pkgerrors.Wrap(pkgerrors.CodeInsufficientStock, err, "insufficient stock")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order placement failed")
}
