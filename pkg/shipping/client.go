package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marianalima/joalheria-backend/pkg/enums"
	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

const (
	// Carrier service codes returned by the rate API. Anything else is dropped.
	economyServiceCode = "1"
	expressServiceCode = "2"

	requestBodyReadLimit int64 = 1024
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Rate is a normalized carrier tier offered to the customer.
type Rate struct {
	Method         enums.ShippingMethod `json:"method"`
	Name           string               `json:"name"`
	Price          decimal.Decimal      `json:"price"`
	DeliveryWindow string               `json:"delivery_window"`
}

// DefaultRates returns the static fallback pair used whenever the external
// rate service fails or yields no usable tiers. Shipping estimation must
// never block checkout.
func DefaultRates() []Rate {
	return []Rate{
		{
			Method:         enums.ShippingMethodPAC,
			Name:           "PAC",
			Price:          decimal.NewFromFloat(19.90),
			DeliveryWindow: "8 a 12 dias úteis",
		},
		{
			Method:         enums.ShippingMethodSEDEX,
			Name:           "SEDEX",
			Price:          decimal.NewFromFloat(34.90),
			DeliveryWindow: "3 a 5 dias úteis",
		},
	}
}

// Client calls the external carrier rate API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	originCEP  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the carrier rate client.
func NewClient(baseURL, apiToken, originCEP string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("shipping api url is required")
	}
	if !cepPattern.MatchString(originCEP) {
		return nil, fmt.Errorf("origin CEP must be 8 digits")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(trimmed, "/"),
		apiToken:   strings.TrimSpace(apiToken),
		originCEP:  originCEP,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

type rateRequest struct {
	From     endpoint `json:"from"`
	To       endpoint `json:"to"`
	Services string   `json:"services"`
}

type endpoint struct {
	PostalCode string `json:"postal_code"`
}

type rateResponse struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	DeliveryRange struct {
		Min int `json:"min"`
		Max int `json:"max"`
	} `json:"delivery_range"`
	Error string `json:"error"`
}

// FetchRates queries the carrier API for the destination CEP and normalizes
// the returned services into the two internal tiers, economy first. Tiers
// whose code matches neither rule are dropped. Callers are expected to fall
// back to DefaultRates on error or an empty result.
func (c *Client) FetchRates(ctx context.Context, destinationCEP string) ([]Rate, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "shipping client not configured")
	}
	if !cepPattern.MatchString(destinationCEP) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination CEP must be 8 digits")
	}

	payload, err := json.Marshal(rateRequest{
		From:     endpoint{PostalCode: c.originCEP},
		To:       endpoint{PostalCode: destinationCEP},
		Services: economyServiceCode + "," + expressServiceCode,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal rate request")
	}

	url := c.baseURL + "/api/v0/calculator"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build rate request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute rate request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "rate request failed")
	}

	var services []rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&services); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode rate response")
	}

	return normalizeRates(services), nil
}

func normalizeRates(services []rateResponse) []Rate {
	rates := make([]Rate, 0, 2)
	for _, svc := range services {
		if svc.Error != "" {
			continue
		}
		method, ok := methodForCode(svc.ID.String())
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(svc.Price.String())
		if err != nil || price.IsNegative() {
			continue
		}
		rates = append(rates, Rate{
			Method:         method,
			Name:           nameForMethod(method, svc.Name),
			Price:          price,
			DeliveryWindow: deliveryWindow(svc.DeliveryRange.Min, svc.DeliveryRange.Max),
		})
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Method == enums.ShippingMethodPAC && rates[j].Method != enums.ShippingMethodPAC
	})

	return rates
}

func methodForCode(code string) (enums.ShippingMethod, bool) {
	switch code {
	case economyServiceCode:
		return enums.ShippingMethodPAC, true
	case expressServiceCode:
		return enums.ShippingMethodSEDEX, true
	default:
		return "", false
	}
}

func nameForMethod(method enums.ShippingMethod, apiName string) string {
	if trimmed := strings.TrimSpace(apiName); trimmed != "" {
		return trimmed
	}
	if method == enums.ShippingMethodPAC {
		return "PAC"
	}
	return "SEDEX"
}

func deliveryWindow(min, max int) string {
	if min <= 0 || max <= 0 {
		return ""
	}
	if min == max {
		return fmt.Sprintf("%d dias úteis", max)
	}
	return fmt.Sprintf("%d a %d dias úteis", min, max)
}
