package controllers

import (
	"net/http"

	"github.com/peacein/brewpoint-backend/api/responses"
	"github.com/peacein/brewpoint-backend/api/validators"
	"github.com/peacein/brewpoint-backend/internal/menu"
	"github.com/peacein/brewpoint-backend/pkg/logger"
)

type setStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// AdminSetStock overwrites an item's stock level. Concurrent placements keep
// their own guard, so an overwrite never revives an oversold order.
func AdminSetStock(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, "menuId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setStockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.SetStock(r.Context(), id, *req.Stock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
