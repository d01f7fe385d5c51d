package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-token", WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func sampleRequest() PreferenceRequest {
	return PreferenceRequest{
		Items: []PreferenceItem{{
			Title:     "Colar Lua Dourada",
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("189.90"),
			Currency:  "BRL",
		}},
		PayerName:         "Ana Souza",
		PayerEmail:        "ana@example.com",
		ExternalReference: "order-123",
		SuccessURL:        "https://loja.example.com/sucesso",
	}
}

func TestCreatePreferenceReturnsRedirect(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "order-123", payload["external_reference"])
		assert.Equal(t, "approved", payload["auto_return"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-1","init_point":"https://pay.example.com/pref-1"}`))
	})

	preference, err := client.CreatePreference(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "pref-1", preference.ID)
	assert.Equal(t, "https://pay.example.com/pref-1", preference.InitPoint)
}

func TestCreatePreferenceRejectsEmptyItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("request must not be sent without items")
	})

	_, err := client.CreatePreference(context.Background(), PreferenceRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreatePreferenceSurfacesProviderFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	})

	_, err := client.CreatePreference(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestCreatePreferenceRequiresRedirectURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pref-2"}`))
	})

	_, err := client.CreatePreference(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
