package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// ZippopotamClient handles ZIP code lookups against the Zippopotam.us service
type ZippopotamClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewZippopotamClient creates a new Zippopotam client
func NewZippopotamClient(baseURL string) *ZippopotamClient {
	return &ZippopotamClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type zippopotamResponse struct {
	Places []struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		StateAbb  string `json:"state abbreviation"`
	} `json:"places"`
}

// LookupZIP resolves a US ZIP code to lat/lon coordinates and a state abbreviation
func (c *ZippopotamClient) LookupZIP(ctx context.Context, zipCode string) (float64, float64, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/us/"+zipCode, nil)
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to create zippopotam request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RecordProviderCall(ctx, "zippopotam", "zip_lookup", time.Since(start), err)
	if err != nil {
		return 0, 0, "", fmt.Errorf("zippopotam request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, "", NewLookupError("ZIP code %s not found.", zipCode)
	}

	var data zippopotamResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, 0, "", fmt.Errorf("failed to parse zippopotam response: %w", err)
	}

	if len(data.Places) == 0 {
		return 0, 0, "", NewLookupError("No place found for ZIP %s.", zipCode)
	}

	place := data.Places[0]
	lat, err := strconv.ParseFloat(place.Latitude, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid latitude in zippopotam response: %w", err)
	}
	lon, err := strconv.ParseFloat(place.Longitude, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("invalid longitude in zippopotam response: %w", err)
	}

	return lat, lon, strings.TrimSpace(place.StateAbb), nil
}

// IsZIPCode reports whether the address string is a bare 5-digit US ZIP code
func IsZIPCode(address string) bool {
	if len(address) != 5 {
		return false
	}
	for _, ch := range address {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
