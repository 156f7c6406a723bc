package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Vikesh2608/EagleReach/pkg/monitoring"
)

// Term types in the congress-legislators dataset
const (
	termTypeSenator        = "sen"
	termTypeRepresentative = "rep"
)

// LegislatorsClient loads the unitedstates/congress-legislators dataset
type LegislatorsClient struct {
	url        string
	httpClient *http.Client
}

// NewLegislatorsClient creates a new congress-legislators dataset client
func NewLegislatorsClient(url string) *LegislatorsClient {
	return &LegislatorsClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Legislator is a single person record in the congress-legislators dataset
type Legislator struct {
	Name struct {
		First        string `json:"first"`
		Middle       string `json:"middle"`
		Last         string `json:"last"`
		OfficialFull string `json:"official_full"`
	} `json:"name"`
	ID    map[string]interface{} `json:"id"`
	Terms []LegislatorTerm       `json:"terms"`
}

// LegislatorTerm is a single term served by a legislator
type LegislatorTerm struct {
	Type     string `json:"type"`
	State    string `json:"state"`
	District *int   `json:"district,omitempty"`
	Party    string `json:"party"`
	Phone    string `json:"phone,omitempty"`
	URL      string `json:"url,omitempty"`
	End      string `json:"end"`
}

// Load fetches the current legislators dataset
func (c *LegislatorsClient) Load(ctx context.Context) ([]Legislator, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create legislators request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	monitoring.RecordProviderCall(ctx, "legislators", "load", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("legislators dataset request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("legislators dataset returned status %d", resp.StatusCode)
	}

	var legislators []Legislator
	if err := json.NewDecoder(resp.Body).Decode(&legislators); err != nil {
		return nil, fmt.Errorf("failed to parse legislators dataset: %w", err)
	}
	return legislators, nil
}

// FederalOfficials filters the dataset down to the two current US Senators for
// the state plus the House Representative for the district. Terms that ended
// in the past are skipped.
func FederalOfficials(legislators []Legislator, state string, district int, now time.Time) ([]Official, error) {
	var senators []Official
	var representative *Official

	today := now.UTC().Truncate(24 * time.Hour)

	for _, person := range legislators {
		if len(person.Terms) == 0 {
			continue
		}
		term := person.Terms[len(person.Terms)-1]

		if end, err := time.Parse("2006-01-02", term.End); err == nil {
			if end.Before(today) {
				continue
			}
		}

		switch {
		case term.Type == termTypeSenator && term.State == state:
			senators = append(senators, officialFromTerm(person, term))
		case term.Type == termTypeRepresentative && term.State == state:
			termDistrict := 0
			if term.District != nil {
				termDistrict = *term.District
			}
			if termDistrict == district {
				o := officialFromTerm(person, term)
				representative = &o
			}
		}
	}

	if len(senators) > 2 {
		senators = senators[:2]
	}

	results := senators
	if representative != nil {
		results = append(results, *representative)
	}
	if len(results) == 0 {
		return nil, NewLookupError("No current federal officials found for that district.")
	}
	return results, nil
}

// officialFromTerm normalizes a congress-legislators record into an Official
func officialFromTerm(person Legislator, term LegislatorTerm) Official {
	full := person.Name.OfficialFull
	if full == "" {
		parts := []string{}
		for _, p := range []string{person.Name.First, person.Name.Middle, person.Name.Last} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		full = strings.Join(parts, " ")
	}

	office := "US Representative"
	if term.Type == termTypeSenator {
		office = "US Senator"
	}

	official := Official{
		Level:  LevelFederal,
		Office: office,
		Name:   full,
		Party:  term.Party,
		State:  term.State,
		IDs:    person.ID,
	}
	if term.District != nil {
		official.District = fmt.Sprintf("%d", *term.District)
	}
	if term.Phone != "" {
		official.Phones = []string{term.Phone}
	}
	if term.URL != "" {
		official.URLs = []string{term.URL}
	}
	return official
}
