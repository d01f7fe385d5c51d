package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/pkg/cep"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

// LookupCEP resolves a Brazilian postal code to an address for checkout
// autofill. Provider failures surface as dependency errors.
func LookupCEP(client *cep.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "address lookup unavailable"))
			return
		}

		address, err := client.Lookup(r.Context(), chi.URLParam(r, "cep"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, address)
	}
}
