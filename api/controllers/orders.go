package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/api/middleware"
	"github.com/marianalima/joalheria-backend/api/responses"
	"github.com/marianalima/joalheria-backend/api/validators"
	"github.com/marianalima/joalheria-backend/internal/orders"
	"github.com/marianalima/joalheria-backend/internal/users"
	"github.com/marianalima/joalheria-backend/pkg/config"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/logger"
	"github.com/marianalima/joalheria-backend/pkg/pagination"
)

type createOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerName     string `json:"customer_name" validate:"required,min=2"`
	CustomerWhatsApp string `json:"customer_whatsapp" validate:"required,min=10,max=15"`
	CustomerEmail    string `json:"customer_email" validate:"required,email"`

	CEP          string  `json:"cep" validate:"required"`
	Street       string  `json:"street" validate:"required"`
	Number       string  `json:"number" validate:"required"`
	Complement   *string `json:"complement"`
	Neighborhood string  `json:"neighborhood" validate:"required"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required,len=2"`

	ShippingMethod string `json:"shipping_method" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required"`

	Items []createOrderItemRequest `json:"items" validate:"required,min=1"`
}

type createOrderResponse struct {
	Order        orders.OrderDTO `json:"order"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
}

// CreateOrder handles public checkout. Totals are recomputed server-side
// from catalog prices; the response carries a WhatsApp handoff link.
func CreateOrder(svc orders.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shippingMethod, err := enums.ParseShippingMethod(payload.ShippingMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method"))
			return
		}
		paymentMethod, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		items := make([]orders.CreateOrderItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			items = append(items, orders.CreateOrderItemInput{
				ProductID: productID,
				Variation: item.Variation,
				Quantity:  item.Quantity,
			})
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			CustomerName:     payload.CustomerName,
			CustomerWhatsApp: payload.CustomerWhatsApp,
			CustomerEmail:    payload.CustomerEmail,
			CEP:              payload.CEP,
			Street:           payload.Street,
			Number:           payload.Number,
			Complement:       payload.Complement,
			Neighborhood:     payload.Neighborhood,
			City:             payload.City,
			State:            payload.State,
			ShippingMethod:   shippingMethod,
			PaymentMethod:    paymentMethod,
			Items:            items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, createOrderResponse{
			Order:        *order,
			WhatsAppLink: orders.WhatsAppLink(cfg.Payments.WhatsApp, *order),
		})
	}
}

// MyOrders lists the logged-in customer's orders, matched by account email.
func MyOrders(svc orders.Service, userSvc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := middleware.SessionFromContext(r.Context())
		if record == nil || record.UserID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}

		user, err := userSvc.Get(r.Context(), *record.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByCustomerEmail(r.Context(), user.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AdminListOrders returns the cursor-paginated back-office order feed.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := pagination.Params{Cursor: strings.TrimSpace(r.URL.Query().Get("cursor"))}
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit"))
				return
			}
			params.Limit = limit
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// AdminGetOrder returns one order with its line items.
func AdminGetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateOrderStatus moves an order to a new status (admin).
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// DeleteOrder removes an order and its items (admin).
func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
