package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/marianalima/joalheria-backend/pkg/pagination"
	"github.com/marianalima/joalheria-backend/pkg/shipping"
)

type stubRepo struct {
	created       *models.Order
	findResult    *models.Order
	findErr       error
	listResult    []models.Order
	statusRows    int64
	statusApplied enums.OrderStatus
	deleteRows    int64
}

func (s *stubRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = order
	return order, nil
}

func (s *stubRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Order, error) {
	return s.findResult, s.findErr
}

func (s *stubRepo) ListByCustomerEmail(_ context.Context, _ string) ([]models.Order, error) {
	return s.listResult, nil
}

func (s *stubRepo) List(_ context.Context, limit int, _ *pagination.Cursor) ([]models.Order, error) {
	if len(s.listResult) > limit {
		return s.listResult[:limit], nil
	}
	return s.listResult, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status enums.OrderStatus) (int64, error) {
	s.statusApplied = status
	return s.statusRows, nil
}

func (s *stubRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubRates struct {
	price decimal.Decimal
}

func (s *stubRates) RateFor(_ context.Context, _ string, method enums.ShippingMethod) (shipping.Rate, error) {
	return shipping.Rate{Method: method, Price: s.price}, nil
}

func validInput(productID uuid.UUID, qty int, payment enums.PaymentMethod) CreateOrderInput {
	return CreateOrderInput{
		CustomerName:     "Ana Souza",
		CustomerWhatsApp: "+5511912345678",
		CustomerEmail:    "Ana@Example.com",
		CEP:              "01310100",
		Street:           "Av. Paulista",
		Number:           "1000",
		Neighborhood:     "Bela Vista",
		City:             "São Paulo",
		State:            "sp",
		ShippingMethod:   enums.ShippingMethodPAC,
		PaymentMethod:    payment,
		Items: []CreateOrderItemInput{
			{ProductID: productID, Quantity: qty, Variation: "45cm"},
		},
	}
}

func newTestService(t *testing.T, repo *stubRepo, unitPrice string, shippingPrice string) (Service, uuid.UUID) {
	t.Helper()
	productID := uuid.New()
	products := &stubProducts{products: map[uuid.UUID]*models.Product{
		productID: {
			ID:       productID,
			Name:     "Colar Ponto de Luz",
			Price:    decimal.RequireFromString(unitPrice),
			ImageURL: "/uploads/colar.jpg",
		},
	}}
	svc, err := NewService(repo, products, &stubRates{price: decimal.RequireFromString(shippingPrice)})
	require.NoError(t, err)
	return svc, productID
}

func TestCreateBelowThresholdChargesShipping(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	dto, err := svc.Create(context.Background(), validInput(productID, 2, enums.PaymentMethodCreditCard))
	require.NoError(t, err)

	assert.Equal(t, "200.00", dto.Subtotal)
	assert.Equal(t, "15.00", dto.ShippingCost)
	assert.Equal(t, "0.00", dto.Discount)
	assert.Equal(t, "215.00", dto.Total)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, "ana@example.com", dto.CustomerEmail)
	assert.Equal(t, "SP", dto.State)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, "Colar Ponto de Luz", dto.Items[0].Name)
	assert.Equal(t, "100.00", dto.Items[0].UnitPrice)
}

func TestCreateFreeShippingAndPixDiscount(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	dto, err := svc.Create(context.Background(), validInput(productID, 4, enums.PaymentMethodPix))
	require.NoError(t, err)

	assert.Equal(t, "400.00", dto.Subtotal)
	assert.Equal(t, "0.00", dto.ShippingCost)
	assert.Equal(t, "20.00", dto.Discount)
	assert.Equal(t, "380.00", dto.Total)
}

func TestCreateIgnoresClientTotalsAndUsesCatalogPrice(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "159.90", "19.90")

	dto, err := svc.Create(context.Background(), validInput(productID, 1, enums.PaymentMethodBoleto))
	require.NoError(t, err)

	assert.Equal(t, "159.90", dto.Subtotal)
	assert.Equal(t, "19.90", dto.ShippingCost)
	assert.Equal(t, "179.80", dto.Total)
	require.NotNil(t, repo.created)
	assert.True(t, repo.created.Subtotal.Equal(decimal.RequireFromString("159.90")))
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	_, err := svc.Create(context.Background(), validInput(uuid.New(), 1, enums.PaymentMethodPix))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	input := validInput(productID, 1, enums.PaymentMethodPix)
	input.Items = nil

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	_, err := svc.Create(context.Background(), validInput(productID, 0, enums.PaymentMethodPix))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateRejectsShortCustomerName(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	input := validInput(productID, 1, enums.PaymentMethodPix)
	input.CustomerName = "A"

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Nil(t, repo.created)
}

func TestCreateRejectsWhatsAppOutsideLengthBounds(t *testing.T) {
	repo := &stubRepo{}
	svc, productID := newTestService(t, repo, "100.00", "15.00")

	for _, contact := range []string{"119999", "+55 11 91234-5678-90-12"} {
		input := validInput(productID, 1, enums.PaymentMethodPix)
		input.CustomerWhatsApp = contact

		_, err := svc.Create(context.Background(), input)
		require.Error(t, err, contact)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}
	assert.Nil(t, repo.created)
}

func TestUpdateStatusAllowsDirectJump(t *testing.T) {
	orderID := uuid.New()
	repo := &stubRepo{
		statusRows: 1,
		findResult: &models.Order{
			ID:     orderID,
			Status: enums.OrderStatusDelivered,
		},
	}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	dto, err := svc.UpdateStatus(context.Background(), orderID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, repo.statusApplied)
	assert.Equal(t, enums.OrderStatusDelivered.String(), dto.Status)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	repo := &stubRepo{statusRows: 1}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatus("cancelled"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, repo.statusApplied)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	repo := &stubRepo{statusRows: 0}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteMissingOrder(t *testing.T) {
	repo := &stubRepo{deleteRows: 0}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListByCustomerEmailRequiresEmail(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := newTestService(t, repo, "100.00", "15.00")

	_, err := svc.ListByCustomerEmail(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestWhatsAppLink(t *testing.T) {
	dto := OrderDTO{
		ID:    uuid.MustParse("7e6a1a0a-97a7-4b6b-8a46-0d2f4f8f5ab1"),
		Total: "215.00",
		Items: []OrderItemDTO{
			{Name: "Colar Ponto de Luz", Quantity: 2, Variation: "45cm"},
		},
	}

	link := WhatsAppLink("+55 (11) 91234-5678", dto)
	assert.Contains(t, link, "https://wa.me/5511912345678?text=")
	assert.Contains(t, link, "215.00")

	assert.Empty(t, WhatsAppLink("", dto))
}
