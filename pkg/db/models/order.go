package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marianalima/joalheria-backend/pkg/enums"
)

// Order is a checkout submission with server-derived totals. Amount columns
// are always written from the pricing calculator, never from client input.
type Order struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`

	CustomerName     string `gorm:"column:customer_name;not null"`
	CustomerWhatsApp string `gorm:"column:customer_whatsapp;not null"`
	CustomerEmail    string `gorm:"column:customer_email;not null;index"`

	CEP          string  `gorm:"column:cep;not null"`
	Street       string  `gorm:"column:street;not null"`
	Number       string  `gorm:"column:number;not null"`
	Complement   *string `gorm:"column:complement"`
	Neighborhood string  `gorm:"column:neighborhood;not null"`
	City         string  `gorm:"column:city;not null"`
	State        string  `gorm:"column:state;not null"`

	ShippingMethod enums.ShippingMethod `gorm:"column:shipping_method;type:text;not null"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`

	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	ShippingCost decimal.Decimal `gorm:"column:shipping_cost;type:numeric(10,2);not null"`
	Discount     decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`

	Status enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a line-item snapshot taken at checkout time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name      string          `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	ImageURL  string          `gorm:"column:image_url;not null;default:''"`
	Variation string          `gorm:"column:variation;not null;default:''"`
	Quantity  int             `gorm:"column:quantity;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
