package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

type memoryKV struct {
	values map[string][]byte
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, token string) ([]byte, error) {
	payload, ok := m.values[token]
	if !ok {
		return nil, ErrNotFound
	}
	return payload, nil
}

func (m *memoryKV) Set(_ context.Context, token string, payload []byte) error {
	m.values[token] = payload
	return nil
}

func (m *memoryKV) Del(_ context.Context, token string) error {
	delete(m.values, token)
	return nil
}

func TestGetUnknownTokenYieldsEmptyCart(t *testing.T) {
	store := NewStore(newMemoryKV())

	cart, err := store.Get(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGetRequiresToken(t *testing.T) {
	store := NewStore(newMemoryKV())

	_, err := store.Get(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestAddMergesByProductAndVariation(t *testing.T) {
	store := NewStore(newMemoryKV())
	productID := uuid.New()

	cart, err := store.Add(context.Background(), "token-1", Item{ProductID: productID, Variation: "45cm", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = store.Add(context.Background(), "token-1", Item{ProductID: productID, Variation: "45cm", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	cart, err = store.Add(context.Background(), "token-1", Item{ProductID: productID, Variation: "40cm", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddValidatesInput(t *testing.T) {
	store := NewStore(newMemoryKV())

	_, err := store.Add(context.Background(), "token-1", Item{ProductID: uuid.Nil, Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = store.Add(context.Background(), "token-1", Item{ProductID: uuid.New(), Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateQuantity(t *testing.T) {
	store := NewStore(newMemoryKV())
	productID := uuid.New()

	_, err := store.Add(context.Background(), "token-1", Item{ProductID: productID, Quantity: 1})
	require.NoError(t, err)

	cart, err := store.UpdateQuantity(context.Background(), "token-1", productID, "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = store.UpdateQuantity(context.Background(), "token-1", productID, "", 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = store.UpdateQuantity(context.Background(), "token-1", uuid.New(), "", 2)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRemoveDeletesExactRow(t *testing.T) {
	store := NewStore(newMemoryKV())
	productID := uuid.New()

	_, err := store.Add(context.Background(), "token-1", Item{ProductID: productID, Variation: "45cm", Quantity: 1})
	require.NoError(t, err)
	_, err = store.Add(context.Background(), "token-1", Item{ProductID: productID, Variation: "40cm", Quantity: 1})
	require.NoError(t, err)

	cart, err := store.Remove(context.Background(), "token-1", productID, "45cm")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "40cm", cart.Items[0].Variation)

	_, err = store.Remove(context.Background(), "token-1", productID, "45cm")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestClear(t *testing.T) {
	kv := newMemoryKV()
	store := NewStore(kv)
	productID := uuid.New()

	_, err := store.Add(context.Background(), "token-1", Item{ProductID: productID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, store.Clear(context.Background(), "token-1"))

	cart, err := store.Get(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
