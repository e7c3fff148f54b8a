package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/peacein/brewpoint-backend/pkg/errors"
)

func TestServiceGetByIDNotFound(t *testing.T) {
	conn := setupMenuTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New())
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceGetByID(t *testing.T) {
	conn := setupMenuTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	item := mustCreateMenuItem(t, conn, "Cafe Latte", 3500, 10)

	fetched, err := svc.GetByID(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if fetched.Name != "Cafe Latte" || fetched.Price != 3500 {
		t.Fatalf("unexpected item: %+v", fetched)
	}
}

func TestServiceSetStockRejectsNegative(t *testing.T) {
	conn := setupMenuTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.SetStock(context.Background(), uuid.New(), -1)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceSetStockUnknownItem(t *testing.T) {
	conn := setupMenuTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.SetStock(context.Background(), uuid.New(), 10)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
