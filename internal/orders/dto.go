package orders

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
)

// CreateOrderInput is a validated checkout submission. Totals are never part
// of the input; they are derived server-side.
type CreateOrderInput struct {
	CustomerName     string
	CustomerWhatsApp string
	CustomerEmail    string

	CEP          string
	Street       string
	Number       string
	Complement   *string
	Neighborhood string
	City         string
	State        string

	ShippingMethod enums.ShippingMethod
	PaymentMethod  enums.PaymentMethod

	Items []CreateOrderItemInput
}

// CreateOrderItemInput names a catalog product and quantity; the price
// snapshot comes from the catalog, not the client.
type CreateOrderItemInput struct {
	ProductID uuid.UUID
	Variation string
	Quantity  int
}

// OrderDTO is the order shape returned to clients. Monetary fields are fixed
// two-decimal strings.
type OrderDTO struct {
	ID uuid.UUID `json:"id"`

	CustomerName     string `json:"customer_name"`
	CustomerWhatsApp string `json:"customer_whatsapp"`
	CustomerEmail    string `json:"customer_email"`

	CEP          string  `json:"cep"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`

	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`

	Subtotal     string `json:"subtotal"`
	ShippingCost string `json:"shipping_cost"`
	Discount     string `json:"discount"`
	Total        string `json:"total"`

	Status string `json:"status"`

	Items []OrderItemDTO `json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItemDTO is a line-item snapshot.
type OrderItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	ImageURL  string    `json:"image_url"`
	Variation string    `json:"variation,omitempty"`
	Quantity  int       `json:"quantity"`
}

// OrderPage is a cursor-paginated admin listing.
type OrderPage struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func toOrderDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.StringFixed(2),
			ImageURL:  item.ImageURL,
			Variation: item.Variation,
			Quantity:  item.Quantity,
		})
	}

	return OrderDTO{
		ID:               order.ID,
		CustomerName:     order.CustomerName,
		CustomerWhatsApp: order.CustomerWhatsApp,
		CustomerEmail:    order.CustomerEmail,
		CEP:              order.CEP,
		Street:           order.Street,
		Number:           order.Number,
		Complement:       order.Complement,
		Neighborhood:     order.Neighborhood,
		City:             order.City,
		State:            order.State,
		ShippingMethod:   order.ShippingMethod.String(),
		PaymentMethod:    order.PaymentMethod.String(),
		Subtotal:         order.Subtotal.StringFixed(2),
		ShippingCost:     order.ShippingCost.StringFixed(2),
		Discount:         order.Discount.StringFixed(2),
		Total:            order.Total.StringFixed(2),
		Status:           order.Status.String(),
		Items:            items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

func toOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, toOrderDTO(order))
	}
	return dtos
}

// WhatsAppLink renders a wa.me deep link with a short order summary, used as
// the fallback payment channel.
func WhatsAppLink(number string, order OrderDTO) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Olá! Acabei de fazer o pedido %s.\n", order.ID))
	for _, item := range order.Items {
		if item.Variation != "" {
			sb.WriteString(fmt.Sprintf("- %dx %s (%s)\n", item.Quantity, item.Name, item.Variation))
			continue
		}
		sb.WriteString(fmt.Sprintf("- %dx %s\n", item.Quantity, item.Name))
	}
	sb.WriteString(fmt.Sprintf("Total: R$ %s", order.Total))

	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(sb.String()))
}
