package controllers

import (
	"net/http"

	"github.com/peacein/brewpoint-backend/api/responses"
	"github.com/peacein/brewpoint-backend/api/validators"
	"github.com/peacein/brewpoint-backend/internal/menu"
	pkgerrors "github.com/peacein/brewpoint-backend/pkg/errors"
	"github.com/peacein/brewpoint-backend/pkg/logger"
)

// MenuList returns the full catalog with live stock levels.
func MenuList(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu"))
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func MenuDetail(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(r, "menuId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// MenuOptions lists the configured add-on options and their surcharges.
func MenuOptions(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.ListOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu options"))
			return
		}
		responses.WriteSuccess(w, opts)
	}
}
