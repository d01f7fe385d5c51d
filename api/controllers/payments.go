package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/orders"
	"github.com/marianalima/joalheria-backend/pkg/config"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
	"github.com/marianalima/joalheria-backend/pkg/payments"
)

// PreferenceCreator is the payment-provider surface used at checkout.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, req payments.PreferenceRequest) (*payments.Preference, error)
}

type paymentPreferenceRequest struct {
	OrderID    string `json:"order_id" validate:"required"`
	SuccessURL string `json:"success_url"`
	FailureURL string `json:"failure_url"`
}

type paymentPreferenceResponse struct {
	Preference   *payments.Preference `json:"preference,omitempty"`
	WhatsAppLink string               `json:"whatsapp_link,omitempty"`
}

// CreatePaymentPreference hands an order off to the payment provider.
// Provider failures surface as dependency errors; the response also carries
// the wa.me handoff link for the storefront's manual flow.
func CreatePaymentPreference(provider PreferenceCreator, orderSvc orders.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload paymentPreferenceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := orderSvc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "payment provider not configured"))
			return
		}

		req, err := preferenceFromOrder(*order, payload.SuccessURL, payload.FailureURL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preference, err := provider.CreatePreference(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, paymentPreferenceResponse{
			Preference:   preference,
			WhatsAppLink: orders.WhatsAppLink(cfg.Payments.WhatsApp, *order),
		})
	}
}

func preferenceFromOrder(order orders.OrderDTO, successURL, failureURL string) (payments.PreferenceRequest, error) {
	items := make([]payments.PreferenceItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		unitPrice, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			return payments.PreferenceRequest{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order item price")
		}
		items = append(items, payments.PreferenceItem{
			Title:     item.Name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Currency:  "BRL",
		})
	}

	shippingCost, err := decimal.NewFromString(order.ShippingCost)
	if err != nil {
		return payments.PreferenceRequest{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order shipping cost")
	}
	if shippingCost.IsPositive() {
		items = append(items, payments.PreferenceItem{
			Title:     "Frete",
			Quantity:  1,
			UnitPrice: shippingCost,
			Currency:  "BRL",
		})
	}

	return payments.PreferenceRequest{
		Items:             items,
		PayerName:         order.CustomerName,
		PayerEmail:        order.CustomerEmail,
		ExternalReference: order.ID.String(),
		SuccessURL:        successURL,
		FailureURL:        failureURL,
	}, nil
}
