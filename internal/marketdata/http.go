package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"AssetSentinel/internal/model"
)

// HTTPFetcher implements Fetcher against a market-data REST service exposing
// Singapore rates, index quotes, and SGS bond yields.
type HTTPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPFetcher creates a new fetcher with optional proxy support.
func NewHTTPFetcher(baseURL, apiKey, proxyURL string) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return "rest" }

func (f *HTTPFetcher) FetchRates() (map[string]float64, error) {
	var rates map[string]float64
	if err := f.getJSON("/api/v1/rates/sgd", &rates); err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	return rates, nil
}

func (f *HTTPFetcher) FetchIndices() (map[string]model.IndexQuote, error) {
	var indices map[string]model.IndexQuote
	if err := f.getJSON("/api/v1/indices", &indices); err != nil {
		return nil, fmt.Errorf("fetch indices: %w", err)
	}
	return indices, nil
}

func (f *HTTPFetcher) FetchBondYields() (map[string]float64, error) {
	var yields map[string]float64
	if err := f.getJSON("/api/v1/bonds/sgs", &yields); err != nil {
		return nil, fmt.Errorf("fetch bond yields: %w", err)
	}
	return yields, nil
}

func (f *HTTPFetcher) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, f.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
