package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// Census geocoder benchmarks
const (
	benchmarkCurrent    = "Public_AR_Current"
	benchmarkCensus2020 = "Public_AR_Census2020"
)

// CensusClient handles communication with the US Census geocoding service
type CensusClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCensusClient creates a new Census geocoder client
func NewCensusClient(baseURL string) *CensusClient {
	return &CensusClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type geographyItem struct {
	Basename string `json:"BASENAME"`
	StateAbb string `json:"STUSAB"`
}

type censusCoordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type censusAddressMatch struct {
	Coordinates censusCoordinates          `json:"coordinates"`
	Geographies map[string][]geographyItem `json:"geographies"`
}

type censusResponse struct {
	Result struct {
		AddressMatches []censusAddressMatch       `json:"addressMatches"`
		Geographies    map[string][]geographyItem `json:"geographies"`
	} `json:"result"`
}

// GeocodeAddress resolves a full street address to its state abbreviation and
// congressional district number. When the current benchmark yields no match it
// retries against the Census 2020 benchmark before giving up.
func (c *CensusClient) GeocodeAddress(ctx context.Context, address string) (string, int, error) {
	match, err := c.onelineMatch(ctx, address, benchmarkCurrent)
	if err != nil {
		return "", 0, err
	}
	if match == nil {
		match, err = c.onelineMatch(ctx, address, benchmarkCensus2020)
		if err != nil {
			return "", 0, err
		}
		if match == nil {
			return "", 0, NewLookupError("No geocoding match for that address.")
		}
	}

	state, district, ok := extractStateAndDistrict(match.Geographies)
	if !ok {
		return "", 0, NewLookupError("Could not extract state/district for that address.")
	}
	return state, district, nil
}

// GeocodeAddressCoordinates resolves a full street address to lat/lon coordinates
func (c *CensusClient) GeocodeAddressCoordinates(ctx context.Context, address string) (float64, float64, error) {
	match, err := c.onelineMatch(ctx, address, benchmarkCurrent)
	if err != nil {
		return 0, 0, err
	}
	if match == nil {
		return 0, 0, NewLookupError("No geocoding match for that address.")
	}
	if match.Coordinates.X == 0 && match.Coordinates.Y == 0 {
		return 0, 0, NewLookupError("Coordinates unavailable for that address.")
	}
	return match.Coordinates.Y, match.Coordinates.X, nil
}

// ReverseDistrict resolves lat/lon coordinates to the containing state
// abbreviation and congressional district number.
func (c *CensusClient) ReverseDistrict(ctx context.Context, lat, lon float64) (string, int, error) {
	params := url.Values{}
	params.Set("x", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("y", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("benchmark", benchmarkCurrent)
	params.Set("vintage", "Current_Current")
	params.Set("layers", "all")
	params.Set("format", "json")

	var resp censusResponse
	if err := c.get(ctx, "/geocoder/geographies/coordinates", params, "reverse_geocode", &resp); err != nil {
		return "", 0, err
	}

	state, district, ok := extractStateAndDistrict(resp.Result.Geographies)
	if !ok {
		return "", 0, NewLookupError("No geocoding match for that ZIP.")
	}
	return state, district, nil
}

// onelineMatch queries the oneline address geocoder and returns the first
// match, or nil when the benchmark produced no matches.
func (c *CensusClient) onelineMatch(ctx context.Context, address, benchmark string) (*censusAddressMatch, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("benchmark", benchmark)
	params.Set("vintage", "Current_Current")
	params.Set("layers", "all")
	params.Set("format", "json")

	var resp censusResponse
	if err := c.get(ctx, "/geocoder/geographies/onelineaddress", params, "geocode", &resp); err != nil {
		return nil, err
	}

	if len(resp.Result.AddressMatches) == 0 {
		return nil, nil
	}
	return &resp.Result.AddressMatches[0], nil
}

func (c *CensusClient) get(ctx context.Context, path string, params url.Values, operation string, target interface{}) error {
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create census request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RecordProviderCall(ctx, "census", operation, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("census geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read census response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("Census geocoder returned error", "status", resp.StatusCode, "operation", operation)
		return fmt.Errorf("census geocoder returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse census response: %w", err)
	}
	return nil
}

// extractStateAndDistrict pulls the state abbreviation and congressional
// district number out of a Census geographies map. At-large districts and
// missing district layers resolve to district 0.
func extractStateAndDistrict(geographies map[string][]geographyItem) (string, int, bool) {
	states := geographies["States"]
	if len(states) == 0 {
		return "", 0, false
	}
	state := states[0].StateAbb
	if state == "" {
		return "", 0, false
	}

	var districtItems []geographyItem
	for key, items := range geographies {
		if strings.Contains(key, "Congressional District") {
			districtItems = items
			break
		}
	}

	district := 0
	if len(districtItems) > 0 {
		basename := strings.TrimSpace(districtItems[0].Basename)
		if !strings.HasPrefix(strings.ToLower(basename), "at") {
			var digits strings.Builder
			for _, ch := range basename {
				if ch >= '0' && ch <= '9' {
					digits.WriteRune(ch)
				}
			}
			if digits.Len() > 0 {
				district, _ = strconv.Atoi(digits.String())
			}
		}
	}

	return state, district, true
}
