package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const censusMatchBody = `{
	"result": {
		"addressMatches": [
			{
				"coordinates": {"x": -89.649, "y": 39.781},
				"geographies": {
					"States": [{"STUSAB": "IL", "BASENAME": "Illinois"}],
					"119th Congressional Districts": [{"BASENAME": "13"}]
				}
			}
		]
	}
}`

const censusEmptyBody = `{"result": {"addressMatches": []}}`

func TestCensusClient_GeocodeAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocoder/geographies/onelineaddress", r.URL.Path)
		assert.Equal(t, "Public_AR_Current", r.URL.Query().Get("benchmark"))
		fmt.Fprint(w, censusMatchBody)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	state, district, err := client.GeocodeAddress(context.Background(), "123 Main St, Springfield, IL")

	require.NoError(t, err)
	assert.Equal(t, "IL", state)
	assert.Equal(t, 13, district)
}

func TestCensusClient_GeocodeAddress_BenchmarkFallback(t *testing.T) {
	var benchmarks []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		benchmark := r.URL.Query().Get("benchmark")
		benchmarks = append(benchmarks, benchmark)
		if benchmark == "Public_AR_Census2020" {
			fmt.Fprint(w, censusMatchBody)
			return
		}
		fmt.Fprint(w, censusEmptyBody)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	state, district, err := client.GeocodeAddress(context.Background(), "123 Main St")

	require.NoError(t, err)
	assert.Equal(t, "IL", state)
	assert.Equal(t, 13, district)
	assert.Equal(t, []string{"Public_AR_Current", "Public_AR_Census2020"}, benchmarks)
}

func TestCensusClient_GeocodeAddress_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, censusEmptyBody)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	_, _, err := client.GeocodeAddress(context.Background(), "nowhere")

	require.Error(t, err)
	assert.True(t, IsLookupError(err))
	assert.Equal(t, "No geocoding match for that address.", err.Error())
}

func TestCensusClient_GeocodeAddress_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	_, _, err := client.GeocodeAddress(context.Background(), "123 Main St")

	require.Error(t, err)
	assert.False(t, IsLookupError(err))
}

func TestCensusClient_ReverseDistrict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocoder/geographies/coordinates", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("x"))
		assert.NotEmpty(t, r.URL.Query().Get("y"))
		fmt.Fprint(w, `{
			"result": {
				"geographies": {
					"States": [{"STUSAB": "WY"}],
					"119th Congressional Districts": [{"BASENAME": "At Large"}]
				}
			}
		}`)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	state, district, err := client.ReverseDistrict(context.Background(), 41.14, -104.82)

	require.NoError(t, err)
	assert.Equal(t, "WY", state)
	assert.Equal(t, 0, district)
}

func TestCensusClient_GeocodeAddressCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, censusMatchBody)
	}))
	defer server.Close()

	client := NewCensusClient(server.URL)
	lat, lon, err := client.GeocodeAddressCoordinates(context.Background(), "123 Main St")

	require.NoError(t, err)
	assert.InDelta(t, 39.781, lat, 0.001)
	assert.InDelta(t, -89.649, lon, 0.001)
}

func TestExtractStateAndDistrict(t *testing.T) {
	tests := []struct {
		name         string
		geographies  map[string][]geographyItem
		wantState    string
		wantDistrict int
		wantOK       bool
	}{
		{
			name: "numbered district",
			geographies: map[string][]geographyItem{
				"States":                        {{StateAbb: "IL"}},
				"118th Congressional Districts": {{Basename: "13"}},
			},
			wantState:    "IL",
			wantDistrict: 13,
			wantOK:       true,
		},
		{
			name: "at-large district",
			geographies: map[string][]geographyItem{
				"States":                        {{StateAbb: "WY"}},
				"118th Congressional Districts": {{Basename: "at Large"}},
			},
			wantState:    "WY",
			wantDistrict: 0,
			wantOK:       true,
		},
		{
			name: "missing district layer",
			geographies: map[string][]geographyItem{
				"States": {{StateAbb: "DC"}},
			},
			wantState:    "DC",
			wantDistrict: 0,
			wantOK:       true,
		},
		{
			name:        "missing state layer",
			geographies: map[string][]geographyItem{},
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, district, ok := extractStateAndDistrict(tt.geographies)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantState, state)
				assert.Equal(t, tt.wantDistrict, district)
			}
		})
	}
}
