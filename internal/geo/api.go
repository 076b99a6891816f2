package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"linkpulse/internal/model"
)

// APIBackend queries an ip-api.com compatible endpoint:
// GET {base}/{ip}?fields=status,countryCode,city
type APIBackend struct {
	baseURL string
	client  *http.Client
}

type apiResponse struct {
	Status      string `json:"status"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city"`
}

// NewAPIBackend creates a backend on baseURL
func NewAPIBackend(baseURL string, timeout time.Duration) *APIBackend {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &APIBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Backend
func (b *APIBackend) Name() string { return "api" }

// Lookup implements Backend. A "fail" status is an empty location, not an error.
func (b *APIBackend) Lookup(ctx context.Context, addr netip.Addr) (model.Location, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=%s", b.baseURL, url.PathEscape(addr.String()), url.QueryEscape("status,countryCode,city"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Location{}, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return model.Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Location{}, fmt.Errorf("geo api returned %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.Location{}, fmt.Errorf("failed to decode geo api response: %w", err)
	}

	if body.Status != "success" {
		return model.Location{}, nil
	}

	return model.Location{Country: body.CountryCode, City: body.City}, nil
}

// Close implements Backend
func (b *APIBackend) Close() error {
	b.client.CloseIdleConnections()
	return nil
}
