package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marianalima/joalheria-backend/pkg/db/models"
	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

type stubRepo struct {
	created      *models.Product
	batch        []models.Product
	findResult   *models.Product
	findErr      error
	listResult   []models.Product
	listCategory *enums.ProductCategory
	updates      map[string]any
	updateErr    error
	deleteRows   int64
	countResult  int64
}

func (s *stubRepo) Create(_ context.Context, product *models.Product) (*models.Product, error) {
	s.created = product
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return product, nil
}

func (s *stubRepo) CreateBatch(_ context.Context, products []models.Product) error {
	s.batch = products
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	return s.findResult, s.findErr
}

func (s *stubRepo) List(_ context.Context, category *enums.ProductCategory) ([]models.Product, error) {
	s.listCategory = category
	return s.listResult, nil
}

func (s *stubRepo) Update(_ context.Context, _ uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.deleteRows, nil
}

func (s *stubRepo) Count(_ context.Context) (int64, error) {
	return s.countResult, nil
}

func TestCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateProductInput{
		Name:     "  ",
		Price:    decimal.NewFromInt(10),
		Category: enums.ProductCategoryRings,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateProductInput{
		Name:     "Anel",
		Price:    decimal.Zero,
		Category: enums.ProductCategoryRings,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Create(context.Background(), CreateProductInput{
		Name:     "Anel",
		Price:    decimal.NewFromInt(10),
		Category: enums.ProductCategory("hats"),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateTrimsAndRounds(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateProductInput{
		Name:       "  Colar Ponto de Luz  ",
		Price:      decimal.RequireFromString("159.999"),
		Category:   enums.ProductCategoryNecklaces,
		Variations: []string{" 40cm ", "", "45cm"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Colar Ponto de Luz", dto.Name)
	assert.Equal(t, "160.00", dto.Price)
	assert.Equal(t, []string{"40cm", "45cm"}, dto.Variations)
	require.NotNil(t, repo.created)
}

func TestGetNotFound(t *testing.T) {
	svc, err := NewService(&stubRepo{findErr: gorm.ErrRecordNotFound})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListFiltersByCategory(t *testing.T) {
	repo := &stubRepo{listResult: []models.Product{{
		ID:         uuid.New(),
		Name:       "Brinco",
		Price:      decimal.RequireFromString("99.90"),
		Category:   enums.ProductCategoryEarrings,
		Variations: pq.StringArray{"Dourado"},
	}}}
	svc, err := NewService(repo)
	require.NoError(t, err)

	category := enums.ProductCategoryEarrings
	dtos, err := svc.List(context.Background(), &category)
	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "99.90", dtos[0].Price)
	require.NotNil(t, repo.listCategory)
	assert.Equal(t, enums.ProductCategoryEarrings, *repo.listCategory)
}

func TestUpdateRequiresFields(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), UpdateProductInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateMissingProduct(t *testing.T) {
	name := "Novo nome"
	svc, err := NewService(&stubRepo{updateErr: gorm.ErrRecordNotFound})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, err := NewService(&stubRepo{deleteRows: 0})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	repo := &stubRepo{countResult: 0}
	svc, err := NewService(repo)
	require.NoError(t, err)

	inserted, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Positive(t, inserted)
	assert.Len(t, repo.batch, inserted)

	populated := &stubRepo{countResult: 12}
	svc, err = NewService(populated)
	require.NoError(t, err)

	inserted, err = svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Nil(t, populated.batch)
}
