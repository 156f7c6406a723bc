package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// OpenStatesClient handles communication with the OpenStates v3 API
type OpenStatesClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenStatesClient creates a new OpenStates client
func NewOpenStatesClient(baseURL, apiKey string) *OpenStatesClient {
	return &OpenStatesClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type openStatesPerson struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	Party       string `json:"party"`
	Email       string `json:"email"`
	Image       string `json:"image"`
	URL         string `json:"openstates_url"`
	CurrentRole struct {
		Title string `json:"title"`
		Email string `json:"email"`
	} `json:"current_role"`
	Jurisdiction struct {
		Name           string `json:"name"`
		Classification string `json:"classification"`
	} `json:"jurisdiction"`
}

type openStatesGeoResponse struct {
	Results []openStatesPerson `json:"results"`
}

// PeopleGeo looks up the officials whose districts contain the given coordinates
func (c *OpenStatesClient) PeopleGeo(ctx context.Context, lat, lon float64) ([]Official, error) {
	if c.apiKey == "" {
		return nil, NewLookupError("OPENSTATES_API_KEY missing")
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("per_page", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/people.geo?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create openstates request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RecordProviderCall(ctx, "openstates", "people_geo", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("openstates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openstates returned status %d", resp.StatusCode)
	}

	var payload openStatesGeoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse openstates response: %w", err)
	}

	var officials []Official
	for _, item := range payload.Results {
		official, err := officialFromOpenStates(item)
		if err != nil {
			// Don't fail the whole call because one record is odd
			slog.Warn("Skipping malformed OpenStates record", "id", item.ID, "error", err)
			continue
		}
		officials = append(officials, official)
	}

	if len(officials) == 0 {
		return nil, NewLookupError("No officials returned by OpenStates for that location.")
	}
	return officials, nil
}

// officialFromOpenStates normalizes an OpenStates people.geo record into an Official
func officialFromOpenStates(item openStatesPerson) (Official, error) {
	name := strings.TrimSpace(strings.TrimSpace(item.GivenName) + " " + strings.TrimSpace(item.FamilyName))
	if name == "" {
		name = strings.TrimSpace(item.Name)
	}
	if name == "" {
		return Official{}, fmt.Errorf("record has no name")
	}

	classification := strings.ToLower(item.Jurisdiction.Classification)
	level := classification
	switch classification {
	case "country":
		level = LevelFederal
	case "state":
		level = LevelState
	case "":
		level = LevelState
	}

	state := ""
	if classification == "state" {
		state = item.Jurisdiction.Name
	}

	office := item.CurrentRole.Title
	if office == "" {
		office = "Representative"
	}
	if level == LevelFederal {
		office = "US " + office
	}

	var urls []string
	if item.URL != "" {
		urls = append(urls, item.URL)
	}
	email := item.Email
	if email == "" {
		email = item.CurrentRole.Email
	}
	if email != "" {
		urls = append(urls, "mailto:"+email)
	}

	return Official{
		Level:    level,
		Office:   office,
		Name:     name,
		Party:    item.Party,
		State:    state,
		PhotoURL: item.Image,
		URLs:     urls,
		IDs:      map[string]interface{}{"openstates_id": item.ID},
	}, nil
}
