package shippingsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/marianalima/joalheria-backend/pkg/logger"
	pkgredis "github.com/marianalima/joalheria-backend/pkg/redis"
	"github.com/marianalima/joalheria-backend/pkg/shipping"

	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// RateFetcher queries the external carrier API.
type RateFetcher interface {
	FetchRates(ctx context.Context, destinationCEP string) ([]shipping.Rate, error)
}

type quoteCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type quoteKeyer interface {
	ShippingQuoteKey(cep string) string
}

// Service resolves shipping quotes with a Redis cache in front of the
// carrier API. External failures degrade to the static default tiers so
// shipping estimation never blocks checkout.
type Service struct {
	fetcher RateFetcher
	cache   quoteCache
	keyer   quoteKeyer
	ttl     time.Duration
	logg    *logger.Logger
}

// NewService builds the quote service. The fetcher may be nil when no
// carrier API is configured; quotes then always use the defaults.
func NewService(fetcher RateFetcher, cache *pkgredis.Client, ttl time.Duration, logg *logger.Logger) (*Service, error) {
	if cache == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		keyer:   cache,
		ttl:     ttl,
		logg:    logg,
	}, nil
}

func newServiceWith(fetcher RateFetcher, cache quoteCache, keyer quoteKeyer, ttl time.Duration, logg *logger.Logger) *Service {
	return &Service{fetcher: fetcher, cache: cache, keyer: keyer, ttl: ttl, logg: logg}
}

// Quote returns the carrier tiers for the destination CEP. An invalid CEP is
// a validation error; every downstream failure falls back to DefaultRates.
func (s *Service) Quote(ctx context.Context, destinationCEP string) ([]shipping.Rate, error) {
	if !cepPattern.MatchString(destinationCEP) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination CEP must be 8 digits")
	}

	if rates, ok := s.fromCache(ctx, destinationCEP); ok {
		return rates, nil
	}

	if s.fetcher == nil {
		return shipping.DefaultRates(), nil
	}

	rates, err := s.fetcher.FetchRates(ctx, destinationCEP)
	if err != nil || len(rates) == 0 {
		if err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "cep", destinationCEP), "shipping quote fallback: "+err.Error())
		}
		return shipping.DefaultRates(), nil
	}

	s.store(ctx, destinationCEP, rates)
	return rates, nil
}

// RateFor resolves the nominal price and window of a single tier, used when
// an order commits to a method. Falls back to the default tier price when
// the quote does not include the method.
func (s *Service) RateFor(ctx context.Context, destinationCEP string, method enums.ShippingMethod) (shipping.Rate, error) {
	if !method.IsValid() {
		return shipping.Rate{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping method")
	}

	rates, err := s.Quote(ctx, destinationCEP)
	if err != nil {
		return shipping.Rate{}, err
	}
	if rate, ok := findMethod(rates, method); ok {
		return rate, nil
	}
	if rate, ok := findMethod(shipping.DefaultRates(), method); ok {
		return rate, nil
	}
	return shipping.Rate{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping method unavailable")
}

func findMethod(rates []shipping.Rate, method enums.ShippingMethod) (shipping.Rate, bool) {
	for _, rate := range rates {
		if rate.Method == method {
			return rate, true
		}
	}
	return shipping.Rate{}, false
}

type cachedRate struct {
	Method         string `json:"method"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	DeliveryWindow string `json:"delivery_window"`
}

func (s *Service) fromCache(ctx context.Context, cep string) ([]shipping.Rate, bool) {
	raw, err := s.cache.Get(ctx, s.keyer.ShippingQuoteKey(cep))
	if err != nil {
		if !errors.Is(err, pkgredis.Nil) && s.logg != nil {
			s.logg.Warn(ctx, "shipping quote cache read failed: "+err.Error())
		}
		return nil, false
	}

	var cached []cachedRate
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, false
	}

	rates := make([]shipping.Rate, 0, len(cached))
	for _, entry := range cached {
		method, err := enums.ParseShippingMethod(entry.Method)
		if err != nil {
			return nil, false
		}
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, false
		}
		rates = append(rates, shipping.Rate{
			Method:         method,
			Name:           entry.Name,
			Price:          price,
			DeliveryWindow: entry.DeliveryWindow,
		})
	}
	if len(rates) == 0 {
		return nil, false
	}
	return rates, true
}

func (s *Service) store(ctx context.Context, cep string, rates []shipping.Rate) {
	cached := make([]cachedRate, 0, len(rates))
	for _, rate := range rates {
		cached = append(cached, cachedRate{
			Method:         rate.Method.String(),
			Name:           rate.Name,
			Price:          rate.Price.String(),
			DeliveryWindow: rate.DeliveryWindow,
		})
	}
	payload, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.keyer.ShippingQuoteKey(cep), payload, s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "shipping quote cache write failed: "+err.Error())
	}
}
