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

const testLegislatorsBody = `[
	{
		"name": {"official_full": "Senator One"},
		"terms": [{"type": "sen", "state": "IL", "party": "Democrat", "end": "2031-01-03"}]
	},
	{
		"name": {"official_full": "Senator Two"},
		"terms": [{"type": "sen", "state": "IL", "party": "Democrat", "end": "2031-01-03"}]
	},
	{
		"name": {"official_full": "Rep Thirteen"},
		"terms": [{"type": "rep", "state": "IL", "district": 13, "party": "Democrat", "end": "2031-01-03"}]
	}
]`

func newTestResolver(t *testing.T, useOpenStates bool, openStatesKey string) (*Resolver, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/us/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"places": [{"latitude": "39.78", "longitude": "-89.65", "state abbreviation": "IL"}]}`)
	})
	mux.HandleFunc("/geocoder/geographies/coordinates", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"result": {
				"geographies": {
					"States": [{"STUSAB": "IL"}],
					"119th Congressional Districts": [{"BASENAME": "13"}]
				}
			}
		}`)
	})
	mux.HandleFunc("/geocoder/geographies/onelineaddress", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"result": {
				"addressMatches": [
					{
						"coordinates": {"x": -89.65, "y": 39.78},
						"geographies": {
							"States": [{"STUSAB": "IL"}],
							"119th Congressional Districts": [{"BASENAME": "13"}]
						}
					}
				]
			}
		}`)
	})
	mux.HandleFunc("/legislators.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testLegislatorsBody)
	})
	mux.HandleFunc("/people.geo", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resolver := NewResolver(ResolverConfig{
		Census:        NewCensusClient(server.URL),
		Zippopotam:    NewZippopotamClient(server.URL),
		Legislators:   NewLegislatorsClient(server.URL + "/legislators.json"),
		OpenStates:    NewOpenStatesClient(server.URL, openStatesKey),
		UseOpenStates: useOpenStates,
	})
	return resolver, server
}

func TestResolver_Officials_ZIPPath(t *testing.T) {
	resolver, _ := newTestResolver(t, false, "")

	officials, err := resolver.Officials(context.Background(), "62704")
	require.NoError(t, err)
	require.Len(t, officials, 3)

	assert.Equal(t, "Senator One", officials[0].Name)
	assert.Equal(t, "Senator Two", officials[1].Name)
	assert.Equal(t, "Rep Thirteen", officials[2].Name)
}

func TestResolver_Officials_AddressPath(t *testing.T) {
	resolver, _ := newTestResolver(t, false, "")

	officials, err := resolver.Officials(context.Background(), "123 Main St, Springfield, IL")
	require.NoError(t, err)
	require.Len(t, officials, 3)
}

func TestResolver_Officials_OpenStatesSoftFallback(t *testing.T) {
	// The test OpenStates endpoint always fails; the resolver should fall
	// back to the free federal path instead of surfacing the error.
	resolver, _ := newTestResolver(t, true, "test-key")

	officials, err := resolver.Officials(context.Background(), "62704")
	require.NoError(t, err)
	require.Len(t, officials, 3)
	assert.Equal(t, LevelFederal, officials[0].Level)
}
