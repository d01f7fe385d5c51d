package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/pagination"
	"github.com/marianalima/joalheria-backend/pkg/pricing"
	"github.com/marianalima/joalheria-backend/pkg/shipping"
)

// Contact constraints enforced at checkout.
const (
	minCustomerNameLen = 2
	minWhatsAppLen     = 10
	maxWhatsAppLen     = 15
)

// ProductSource resolves catalog products for line-item snapshots.
type ProductSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// RateSource resolves the nominal shipping price committed to an order.
type RateSource interface {
	RateFor(ctx context.Context, destinationCEP string, method enums.ShippingMethod) (shipping.Rate, error)
}

// Service exposes order operations to the HTTP layer.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]OrderDTO, error)
	List(ctx context.Context, params pagination.Params) (*OrderPage, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	products ProductSource
	rates    RateSource
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, products ProductSource, rates RateSource) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	if rates == nil {
		return nil, fmt.Errorf("rate source required")
	}
	return &service{repo: repo, products: products, rates: rates}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	items, lines, err := s.snapshotItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.RateFor(ctx, input.CEP, input.ShippingMethod)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Compute(lines, rate.Price, input.PaymentMethod.DiscountRate())
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerWhatsApp: strings.TrimSpace(input.CustomerWhatsApp),
		CustomerEmail:    normalizeEmail(input.CustomerEmail),
		CEP:              input.CEP,
		Street:           strings.TrimSpace(input.Street),
		Number:           strings.TrimSpace(input.Number),
		Complement:       input.Complement,
		Neighborhood:     strings.TrimSpace(input.Neighborhood),
		City:             strings.TrimSpace(input.City),
		State:            strings.ToUpper(strings.TrimSpace(input.State)),
		ShippingMethod:   input.ShippingMethod,
		PaymentMethod:    input.PaymentMethod,
		Subtotal:         quote.RoundedSubtotal(),
		ShippingCost:     quote.RoundedShipping(),
		Discount:         quote.RoundedDiscount(),
		Total:            quote.RoundedTotal(),
		Status:           enums.OrderStatusPending,
		Items:            items,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	dto := toOrderDTO(*created)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	dto := toOrderDTO(*order)
	return &dto, nil
}

func (s *service) ListByCustomerEmail(ctx context.Context, email string) ([]OrderDTO, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}

	orders, err := s.repo.ListByCustomerEmail(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer orders")
	}
	return toOrderDTOs(orders), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	orders, err := s.repo.List(ctx, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	page := &OrderPage{}
	if len(orders) > limit {
		last := orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		orders = orders[:limit]
	}
	page.Orders = toOrderDTOs(orders)
	return page, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	affected, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

func (s *service) snapshotItems(ctx context.Context, inputs []CreateOrderItemInput) ([]models.OrderItem, []pricing.LineItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	lines := make([]pricing.LineItem, 0, len(inputs))

	for i, input := range inputs {
		if input.ProductID == uuid.Nil {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item product id required").
				WithDetails(map[string]any{"index": i})
		}
		if input.Quantity <= 0 {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"index": i})
		}

		product, err := s.products.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "item references unknown product").
					WithDetails(map[string]any{"index": i, "product_id": input.ProductID})
			}
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageURL:  product.ImageURL,
			Variation: strings.TrimSpace(input.Variation),
			Quantity:  input.Quantity,
		})
		lines = append(lines, pricing.LineItem{
			UnitPrice: product.Price,
			Quantity:  input.Quantity,
		})
	}

	return items, lines, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if len(strings.TrimSpace(input.CustomerName)) < minCustomerNameLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name must have at least 2 characters")
	}
	if n := len(strings.TrimSpace(input.CustomerWhatsApp)); n < minWhatsAppLen || n > maxWhatsAppLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer whatsapp must have 10 to 15 characters")
	}
	if normalizeEmail(input.CustomerEmail) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer email required")
	}
	if !input.ShippingMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
