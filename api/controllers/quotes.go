package controllers

import (
	"net/http"

	"github.com/openskyvn/paragliding-backend/api/responses"
	"github.com/openskyvn/paragliding-backend/api/validators"
	bookingsvc "github.com/openskyvn/paragliding-backend/internal/bookings"
	pkgerrors "github.com/openskyvn/paragliding-backend/pkg/errors"
	"github.com/openskyvn/paragliding-backend/pkg/logger"
)

// Quote returns a price preview without touching storage. It runs the same
// computation as booking creation so the two figures always agree.
func Quote(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload bookingsvc.QuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
