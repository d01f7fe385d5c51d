package catalog

import (
	"context"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

// Seed inserts the default catalog when the products table is empty.
// Returns the number of products inserted (zero when the table already
// has rows).
func (s *service) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if count > 0 {
		return 0, nil
	}

	products := defaultCatalog()
	if err := s.repo.CreateBatch(ctx, products); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed catalog")
	}
	return len(products), nil
}

func defaultCatalog() []models.Product {
	price := func(v string) decimal.Decimal {
		d, _ := decimal.NewFromString(v)
		return d
	}

	return []models.Product{
		{
			Name:        "Colar Ponto de Luz",
			Price:       price("159.90"),
			Category:    enums.ProductCategoryNecklaces,
			Description: "Colar delicado em prata 925 com zircônia cravejada.",
			ImageURL:    "/uploads/colar-ponto-de-luz.jpg",
			Variations:  pq.StringArray{"40cm", "45cm"},
		},
		{
			Name:        "Colar Choker Veneziana",
			Price:       price("189.90"),
			Category:    enums.ProductCategoryNecklaces,
			Description: "Choker em corrente veneziana banhada a ouro 18k.",
			ImageURL:    "/uploads/colar-choker-veneziana.jpg",
			Variations:  pq.StringArray{"35cm", "40cm"},
		},
		{
			Name:        "Brinco Argola Cravejada",
			Price:       price("129.90"),
			Category:    enums.ProductCategoryEarrings,
			Description: "Argola média cravejada com zircônias brancas.",
			ImageURL:    "/uploads/brinco-argola-cravejada.jpg",
			Variations:  pq.StringArray{"Dourado", "Prateado"},
		},
		{
			Name:        "Brinco Gota Cristal",
			Price:       price("99.90"),
			Category:    enums.ProductCategoryEarrings,
			Description: "Brinco pendente com cristal em lapidação gota.",
			ImageURL:    "/uploads/brinco-gota-cristal.jpg",
			Variations:  pq.StringArray{},
		},
		{
			Name:        "Anel Solitário Clássico",
			Price:       price("219.90"),
			Category:    enums.ProductCategoryRings,
			Description: "Anel solitário em prata 925 com zircônia central.",
			ImageURL:    "/uploads/anel-solitario-classico.jpg",
			Variations:  pq.StringArray{"14", "16", "18", "20"},
		},
		{
			Name:        "Anel Aparador Meia Aliança",
			Price:       price("179.90"),
			Category:    enums.ProductCategoryRings,
			Description: "Aparador meia aliança cravejado, banho de ródio.",
			ImageURL:    "/uploads/anel-aparador-meia-alianca.jpg",
			Variations:  pq.StringArray{"14", "16", "18"},
		},
		{
			Name:        "Pulseira Riviera",
			Price:       price("249.90"),
			Category:    enums.ProductCategoryBracelets,
			Description: "Pulseira riviera com zircônias em banho de ouro branco.",
			ImageURL:    "/uploads/pulseira-riviera.jpg",
			Variations:  pq.StringArray{"17cm", "19cm"},
		},
		{
			Name:        "Pulseira Corrente Grumet",
			Price:       price("139.90"),
			Category:    enums.ProductCategoryBracelets,
			Description: "Pulseira grumet em prata 925 com fecho lagosta.",
			ImageURL:    "/uploads/pulseira-corrente-grumet.jpg",
			Variations:  pq.StringArray{"18cm", "20cm"},
		},
	}
}
