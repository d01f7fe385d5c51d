package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/marianalima/joalheria-backend/internal/cart"
)

type mapKV struct {
	data map[string][]byte
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string][]byte{}}
}

func (m *mapKV) Get(ctx context.Context, token string) ([]byte, error) {
	payload, ok := m.data[token]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return payload, nil
}

func (m *mapKV) Set(ctx context.Context, token string, payload []byte) error {
	m.data[token] = payload
	return nil
}

func (m *mapKV) Del(ctx context.Context, token string) error {
	delete(m.data, token)
	return nil
}

func TestGetCartRequiresToken(t *testing.T) {
	handler := GetCart(cart.NewStore(newMapKV()), nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetCartUnknownTokenIsEmpty(t *testing.T) {
	handler := GetCart(cart.NewStore(newMapKV()), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(CartTokenHeader, "fresh-token")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cart.Cart `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", envelope.Data.Items)
	}
}

func TestAddCartItemMergesRows(t *testing.T) {
	store := cart.NewStore(newMapKV())
	handler := AddCartItem(store, nil)
	productID := uuid.New()

	body := `{"product_id": "` + productID.String() + `", "variation": "Dourado", "quantity": 1}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(CartTokenHeader, "token-1")

		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
		}
	}

	current, err := store.Get(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(current.Items) != 1 {
		t.Fatalf("expected merged row, got %+v", current.Items)
	}
	if current.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", current.Items[0].Quantity)
	}
}

func TestRemoveCartItemUnknownRow(t *testing.T) {
	handler := RemoveCartItem(cart.NewStore(newMapKV()), nil)

	body := `{"product_id": "` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(CartTokenHeader, "token-2")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
