package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/peacein/brewpoint-backend/api/middleware"
	"github.com/peacein/brewpoint-backend/api/responses"
	"github.com/peacein/brewpoint-backend/api/validators"
	"github.com/peacein/brewpoint-backend/internal/cart"
	"github.com/peacein/brewpoint-backend/internal/checkout"
	"github.com/peacein/brewpoint-backend/internal/orders"
	"github.com/peacein/brewpoint-backend/pkg/logger"
)

type placeOrderLine struct {
	MenuID   uuid.UUID `json:"menuId" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
	Options  []string  `json:"options"`
}

type placeOrderRequest struct {
	Items []placeOrderLine `json:"items" validate:"required,min=1,dive"`
	Total *int             `json:"total" validate:"omitempty,min=0"`
}

// PlaceOrder reserves stock and records the order in one transaction. The
// caller's session cart is emptied afterwards; a failure there does not fail
// the already-committed order.
func PlaceOrder(svc checkout.Service, carts cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]checkout.LineRequest, len(req.Items))
		for i, item := range req.Items {
			lines[i] = checkout.LineRequest{
				MenuID:   item.MenuID,
				Quantity: item.Quantity,
				Options:  item.Options,
			}
		}

		order, err := svc.PlaceOrder(r.Context(), checkout.PlaceOrderInput{
			Lines:         lines,
			DeclaredTotal: req.Total,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			if err := carts.Clear(r.Context(), sessionID); err != nil {
				logg.Warn(r.Context(), fmt.Sprintf("clearing cart after placement: %v", err))
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func OrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
