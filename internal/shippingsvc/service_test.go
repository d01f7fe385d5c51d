package shippingsvc

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	pkgredis "github.com/marianalima/joalheria-backend/pkg/redis"
	"github.com/marianalima/joalheria-backend/pkg/shipping"
)

type stubFetcher struct {
	rates []shipping.Rate
	err   error
	calls int
}

func (s *stubFetcher) FetchRates(_ context.Context, _ string) ([]shipping.Rate, error) {
	s.calls++
	return s.rates, s.err
}

type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) ShippingQuoteKey(cep string) string {
	return "test:shipping:" + cep
}

func liveRates() []shipping.Rate {
	return []shipping.Rate{
		{Method: enums.ShippingMethodPAC, Name: "PAC", Price: decimal.RequireFromString("22.40"), DeliveryWindow: "7 a 10 dias úteis"},
		{Method: enums.ShippingMethodSEDEX, Name: "SEDEX", Price: decimal.RequireFromString("41.10"), DeliveryWindow: "2 a 4 dias úteis"},
	}
}

func TestQuoteRejectsMalformedCEP(t *testing.T) {
	svc := newServiceWith(&stubFetcher{}, newFakeCache(), fakeKeyer{}, time.Minute, nil)

	_, err := svc.Quote(context.Background(), "1234")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestQuoteFallsBackOnUpstreamFailure(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("upstream down")}
	svc := newServiceWith(fetcher, newFakeCache(), fakeKeyer{}, time.Minute, nil)

	rates, err := svc.Quote(context.Background(), "01310100")
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, enums.ShippingMethodPAC, rates[0].Method)
	assert.Equal(t, "19.9", rates[0].Price.String())
	assert.Equal(t, enums.ShippingMethodSEDEX, rates[1].Method)
	assert.Equal(t, "34.9", rates[1].Price.String())
}

func TestQuoteFallsBackOnEmptyResult(t *testing.T) {
	svc := newServiceWith(&stubFetcher{rates: nil}, newFakeCache(), fakeKeyer{}, time.Minute, nil)

	rates, err := svc.Quote(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestQuoteCachesLiveRates(t *testing.T) {
	fetcher := &stubFetcher{rates: liveRates()}
	cache := newFakeCache()
	svc := newServiceWith(fetcher, cache, fakeKeyer{}, time.Minute, nil)

	first, err := svc.Quote(context.Background(), "01310100")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, fetcher.calls)

	second, err := svc.Quote(context.Background(), "01310100")
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 1, fetcher.calls)
	assert.True(t, first[0].Price.Equal(second[0].Price))
	assert.Equal(t, first[1].DeliveryWindow, second[1].DeliveryWindow)
}

func TestQuoteWithoutFetcherUsesDefaults(t *testing.T) {
	svc := newServiceWith(nil, newFakeCache(), fakeKeyer{}, time.Minute, nil)

	rates, err := svc.Quote(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestRateForResolvesTier(t *testing.T) {
	fetcher := &stubFetcher{rates: liveRates()}
	svc := newServiceWith(fetcher, newFakeCache(), fakeKeyer{}, time.Minute, nil)

	rate, err := svc.RateFor(context.Background(), "01310100", enums.ShippingMethodSEDEX)
	require.NoError(t, err)
	assert.Equal(t, "41.1", rate.Price.String())

	_, err = svc.RateFor(context.Background(), "01310100", enums.ShippingMethod("drone"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
