package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/cart"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
)

// CartTokenHeader scopes cart operations to a client-held opaque token.
const CartTokenHeader = "X-Cart-Token"

func cartToken(r *http.Request) (string, error) {
	token := strings.TrimSpace(r.Header.Get(CartTokenHeader))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	return token, nil
}

// GetCart returns the cart for the request's token; unknown tokens read as
// an empty cart.
func GetCart(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := store.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// AddCartItem merges an item into the cart.
func AddCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		current, err := store.Add(r.Context(), token, cart.Item{
			ProductID: productID,
			Variation: payload.Variation,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

// UpdateCartItem sets the quantity of an existing row.
func UpdateCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		current, err := store.UpdateQuantity(r.Context(), token, productID, payload.Variation, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

type removeCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Variation string `json:"variation"`
}

// RemoveCartItem drops one row from the cart.
func RemoveCartItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		current, err := store.Remove(r.Context(), token, productID, payload.Variation)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, current)
	}
}

// ClearCart empties the cart, typically after checkout.
func ClearCart(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cart.Cart{Items: []cart.Item{}})
	}
}
