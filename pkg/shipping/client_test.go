package shipping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/pkg/enums"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-token", "01310100", WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client, server
}

func TestFetchRatesNormalizesTiers(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":2,"name":"SEDEX","price":"28.40","delivery_range":{"min":3,"max":5}},
			{"id":1,"name":"PAC","price":"17.10","delivery_range":{"min":8,"max":12}},
			{"id":17,"name":"Mini Envios","price":"12.00","delivery_range":{"min":10,"max":15}}
		]`))
	})

	rates, err := client.FetchRates(context.Background(), "04571010")
	require.NoError(t, err)
	require.Len(t, rates, 2, "unknown service codes must be dropped")

	assert.Equal(t, enums.ShippingMethodPAC, rates[0].Method, "economy tier listed first")
	assert.True(t, rates[0].Price.Equal(decimal.RequireFromString("17.10")))
	assert.Equal(t, "8 a 12 dias úteis", rates[0].DeliveryWindow)

	assert.Equal(t, enums.ShippingMethodSEDEX, rates[1].Method)
	assert.True(t, rates[1].Price.Equal(decimal.RequireFromString("28.40")))
}

func TestFetchRatesSkipsErroredServices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"error":"service unavailable"},
			{"id":2,"name":"SEDEX","price":"30.00","delivery_range":{"min":4,"max":4}}
		]`))
	})

	rates, err := client.FetchRates(context.Background(), "04571010")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, enums.ShippingMethodSEDEX, rates[0].Method)
	assert.Equal(t, "4 dias úteis", rates[0].DeliveryWindow)
}

func TestFetchRatesRejectsMalformedCEP(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.FetchRates(context.Background(), "1234-567")
	assert.Error(t, err)
}

func TestFetchRatesSurfacesUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.FetchRates(context.Background(), "04571010")
	assert.Error(t, err)
}

func TestDefaultRatesShape(t *testing.T) {
	rates := DefaultRates()
	require.Len(t, rates, 2)
	assert.Equal(t, enums.ShippingMethodPAC, rates[0].Method)
	assert.Equal(t, enums.ShippingMethodSEDEX, rates[1].Method)
	assert.True(t, rates[0].Price.LessThan(rates[1].Price))
}
