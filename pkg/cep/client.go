package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/marianalima/joalheria-backend/pkg/errors"
)

const requestBodyReadLimit int64 = 1024

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Address is the normalized address data returned for a CEP.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client wraps the ViaCEP-style postal code lookup API.
type Client struct {
	httpClient *http.Client
	baseURL    string
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

// NewClient builds the postal code lookup client.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("cep api url is required")
	}

	client := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(trimmed, "/"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Lookup resolves an 8-digit CEP into its address components. Unlike shipping
// quotes, lookup failures surface to the caller so the client can prompt a
// retry.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cep client not configured")
	}
	if !cepPattern.MatchString(cep) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CEP must be 8 digits")
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, cep)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build cep request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute cep request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "cep request failed")
	}

	var apiResp struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		NotFound     bool   `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cep response")
	}

	if apiResp.NotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "CEP not found")
	}

	return &Address{
		CEP:          strings.ReplaceAll(apiResp.CEP, "-", ""),
		Street:       apiResp.Street,
		Neighborhood: apiResp.Neighborhood,
		City:         apiResp.City,
		State:        apiResp.State,
	}, nil
}
