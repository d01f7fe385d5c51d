package cart

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

// Item is a cart row keyed by (product id, variation).
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Variation string    `json:"variation,omitempty"`
	Quantity  int       `json:"quantity"`
}

// Cart is the server-side cart payload for one cart token.
type Cart struct {
	Items []Item `json:"items"`
}

// KV is the persistence adapter behind the store. Production uses Redis;
// tests inject an in-memory fake.
type KV interface {
	Get(ctx context.Context, token string) ([]byte, error)
	Set(ctx context.Context, token string, payload []byte) error
	Del(ctx context.Context, token string) error
}

// ErrNotFound is returned by KV adapters when a token has no stored cart.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")

// Store mutates carts through the KV adapter. All mutations merge rows by
// (product id, variation).
type Store struct {
	kv KV
}

// NewStore builds a cart store on top of the adapter.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Get loads the cart for the token; an unknown token yields an empty cart.
func (s *Store) Get(ctx context.Context, token string) (Cart, error) {
	token, err := normalizeToken(token)
	if err != nil {
		return Cart{}, err
	}

	payload, err := s.kv.Get(ctx, token)
	if err != nil {
		if pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
			return Cart{Items: []Item{}}, nil
		}
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var cart Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart")
	}
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return cart, nil
}

// Add merges an item into the cart, incrementing the quantity when the same
// (product id, variation) row already exists.
func (s *Store) Add(ctx context.Context, token string, item Item) (Cart, error) {
	if item.ProductID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if item.Quantity <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cart, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, err
	}

	item.Variation = strings.TrimSpace(item.Variation)
	merged := false
	for i := range cart.Items {
		if sameRow(cart.Items[i], item.ProductID, item.Variation) {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	return cart, s.save(ctx, token, cart)
}

// UpdateQuantity sets the quantity of an existing row.
func (s *Store) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, variation string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cart, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, err
	}

	variation = strings.TrimSpace(variation)
	for i := range cart.Items {
		if sameRow(cart.Items[i], productID, variation) {
			cart.Items[i].Quantity = quantity
			return cart, s.save(ctx, token, cart)
		}
	}
	return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// Remove deletes exactly the (product id, variation) row.
func (s *Store) Remove(ctx context.Context, token string, productID uuid.UUID, variation string) (Cart, error) {
	cart, err := s.Get(ctx, token)
	if err != nil {
		return Cart{}, err
	}

	variation = strings.TrimSpace(variation)
	for i := range cart.Items {
		if sameRow(cart.Items[i], productID, variation) {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return cart, s.save(ctx, token, cart)
		}
	}
	return Cart{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
}

// Clear drops the whole cart for the token.
func (s *Store) Clear(ctx context.Context, token string) error {
	token, err := normalizeToken(token)
	if err != nil {
		return err
	}
	if err := s.kv.Del(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *Store) save(ctx context.Context, token string, cart Cart) error {
	token, err := normalizeToken(token)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, token, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store cart")
	}
	return nil
}

func sameRow(item Item, productID uuid.UUID, variation string) bool {
	return item.ProductID == productID && item.Variation == variation
}

func normalizeToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	return trimmed, nil
}
