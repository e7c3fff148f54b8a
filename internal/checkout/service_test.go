package checkout

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/peacein/brewpoint-backend/internal/menu"
	"github.com/peacein/brewpoint-backend/internal/orders"
	"github.com/peacein/brewpoint-backend/pkg/db/models"
	"github.com/peacein/brewpoint-backend/pkg/enums"
	pkgerrors "github.com/peacein/brewpoint-backend/pkg/errors"
	"github.com/peacein/brewpoint-backend/pkg/logger"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price INTEGER NOT NULL,
  image TEXT,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS menu_options (
  key TEXT PRIMARY KEY,
  label TEXT NOT NULL,
  surcharge INTEGER NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  items TEXT NOT NULL,
  total_amount INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()

	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(
		&testTxRunner{db: conn},
		menu.NewRepository(conn),
		orders.NewRepository(conn),
		nil,
		log,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedItem(t *testing.T, conn *gorm.DB, name string, price, stock int) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{ID: uuid.New(), Name: name, Price: price, Stock: stock}
	if err := conn.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func seedOptions(t *testing.T, conn *gorm.DB) {
	t.Helper()

	opts := []models.MenuOption{
		{Key: "shot", Label: "Extra Shot", Surcharge: 500},
		{Key: "syrup", Label: "Vanilla Syrup", Surcharge: 300},
	}
	for i := range opts {
		if err := conn.Create(&opts[i]).Error; err != nil {
			t.Fatalf("seed option: %v", err)
		}
	}
}

func currentStock(t *testing.T, conn *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var item models.MenuItem
	if err := conn.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return item.Stock
}

func countOrders(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := conn.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return count
}

func TestPlaceOrderSuccess(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	seedOptions(t, conn)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	latte := seedItem(t, conn, "Cafe Latte", 3500, 10)
	svc := newTestService(t, conn)

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: []LineRequest{
			{MenuID: americano.ID, Quantity: 2, Options: []string{"shot"}},
			{MenuID: latte.ID, Quantity: 1, Options: []string{"shot", "syrup"}},
		},
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	// Americano: (2500+500)*2 = 6000, latte: (3500+800)*1 = 4300.
	if order.TotalAmount != 10300 {
		t.Fatalf("expected total 10300, got %d", order.TotalAmount)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Items))
	}
	if order.Items[0].OptionSurcharge != 500 || order.Items[1].OptionSurcharge != 800 {
		t.Fatalf("unexpected surcharges: %+v", order.Items)
	}

	if got := currentStock(t, conn, americano.ID); got != 8 {
		t.Fatalf("expected americano stock 8, got %d", got)
	}
	if got := currentStock(t, conn, latte.ID); got != 9 {
		t.Fatalf("expected latte stock 9, got %d", got)
	}

	fetched, err := orders.NewRepository(conn).FindByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if fetched.TotalAmount != 10300 {
		t.Fatalf("persisted total mismatch: %d", fetched.TotalAmount)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	americano := seedItem(t, conn, "Americano", 2500, 3)
	svc := newTestService(t, conn)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: []LineRequest{{MenuID: americano.ID, Quantity: 4}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok || details["available"] != 3 {
		t.Fatalf("expected available 3 in details, got %v", appErr.Details())
	}

	if got := currentStock(t, conn, americano.ID); got != 3 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
	if countOrders(t, conn) != 0 {
		t.Fatal("no order may be persisted")
	}
}

func TestPlaceOrderRollsBackEarlierLines(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	latte := seedItem(t, conn, "Cafe Latte", 3500, 1)
	svc := newTestService(t, conn)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: []LineRequest{
			{MenuID: americano.ID, Quantity: 2},
			{MenuID: latte.ID, Quantity: 5},
		},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	// The americano decrement from the first line must be rolled back.
	if got := currentStock(t, conn, americano.ID); got != 10 {
		t.Fatalf("expected americano stock 10 after rollback, got %d", got)
	}
	if got := currentStock(t, conn, latte.ID); got != 1 {
		t.Fatalf("expected latte stock 1, got %d", got)
	}
	if countOrders(t, conn) != 0 {
		t.Fatal("no order may be persisted")
	}
}

func TestPlaceOrderSequentialDepletion(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	svc := newTestService(t, conn)
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		Lines: []LineRequest{{MenuID: americano.ID, Quantity: 6}},
	}); err != nil {
		t.Fatalf("first order: %v", err)
	}

	_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
		Lines: []LineRequest{{MenuID: americano.ID, Quantity: 6}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock on second order, got %v", err)
	}

	if got := currentStock(t, conn, americano.ID); got != 4 {
		t.Fatalf("expected stock 4, got %d", got)
	}
	if countOrders(t, conn) != 1 {
		t.Fatalf("expected exactly one committed order")
	}
}

func TestPlaceOrderUnknownMenuItem(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: []LineRequest{{MenuID: uuid.New(), Quantity: 1}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlaceOrderUnknownOption(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	seedOptions(t, conn)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	svc := newTestService(t, conn)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: []LineRequest{{MenuID: americano.ID, Quantity: 1, Options: []string{"oatmilk"}}},
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if got := currentStock(t, conn, americano.ID); got != 10 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestPlaceOrderDeclaredTotalMismatch(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	svc := newTestService(t, conn)

	declared := 999
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines:         []LineRequest{{MenuID: americano.ID, Quantity: 2}},
		DeclaredTotal: &declared,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok || details["computed"] != 5000 {
		t.Fatalf("expected computed 5000 in details, got %v", appErr.Details())
	}

	if got := currentStock(t, conn, americano.ID); got != 10 {
		t.Fatalf("stock must be rolled back, got %d", got)
	}
	if countOrders(t, conn) != 0 {
		t.Fatal("no order may be persisted")
	}
}

func TestPlaceOrderDeclaredTotalMatch(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	americano := seedItem(t, conn, "Americano", 2500, 10)
	svc := newTestService(t, conn)

	declared := 5000
	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines:         []LineRequest{{MenuID: americano.ID, Quantity: 2}},
		DeclaredTotal: &declared,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.TotalAmount != 5000 {
		t.Fatalf("expected total 5000, got %d", order.TotalAmount)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	conn := setupCheckoutTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	cases := []struct {
		name  string
		input PlaceOrderInput
	}{
		{"empty lines", PlaceOrderInput{}},
		{"zero quantity", PlaceOrderInput{Lines: []LineRequest{{MenuID: uuid.New(), Quantity: 0}}}},
		{"negative quantity", PlaceOrderInput{Lines: []LineRequest{{MenuID: uuid.New(), Quantity: -2}}}},
		{"nil menu id", PlaceOrderInput{Lines: []LineRequest{{Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(ctx, tc.input)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
