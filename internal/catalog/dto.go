package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
)

// ProductDTO is the catalog listing shape returned to clients. Price is a
// fixed two-decimal string.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Variations  []string  `json:"variations"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductInput carries a validated product creation request.
type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Category    enums.ProductCategory
	Description string
	ImageURL    string
	Variations  []string
}

// UpdateProductInput carries a partial product update. Nil fields are left
// untouched.
type UpdateProductInput struct {
	Name        *string
	Price       *decimal.Decimal
	Category    *enums.ProductCategory
	Description *string
	ImageURL    *string
	Variations  []string
}

func toProductDTO(product models.Product) ProductDTO {
	variations := make([]string, len(product.Variations))
	copy(variations, product.Variations)

	return ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price.StringFixed(2),
		Category:    product.Category.String(),
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Variations:  variations,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		dtos = append(dtos, toProductDTO(product))
	}
	return dtos
}
