package controllers

import (
	"net/http"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/shippingsvc"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

type shippingQuoteRequest struct {
	CEP string `json:"cep" validate:"required"`
}

// QuoteShipping returns the available shipping tiers for a destination CEP.
// Carrier failures degrade to the static fallback table, never an error.
func QuoteShipping(svc *shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload shippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rates, err := svc.Quote(r.Context(), payload.CEP)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rates)
	}
}
