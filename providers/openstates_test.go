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

func TestOpenStatesClient_PeopleGeo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people.geo", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `{
			"results": [
				{
					"id": "ocd-person/1",
					"given_name": "Jane",
					"family_name": "Doe",
					"party": "Democratic",
					"openstates_url": "https://openstates.org/person/jane-doe/",
					"image": "https://example.org/jane.jpg",
					"current_role": {"title": "Senator"},
					"jurisdiction": {"name": "Illinois", "classification": "state"}
				},
				{
					"id": "ocd-person/2",
					"name": "John Roe",
					"party": "Republican",
					"current_role": {"title": "Representative"},
					"jurisdiction": {"name": "United States", "classification": "country"}
				},
				{
					"id": "ocd-person/3",
					"jurisdiction": {"name": "Illinois", "classification": "state"}
				}
			]
		}`)
	}))
	defer server.Close()

	client := NewOpenStatesClient(server.URL, "test-key")
	officials, err := client.PeopleGeo(context.Background(), 39.78, -89.65)

	require.NoError(t, err)
	// The record with no name is skipped
	require.Len(t, officials, 2)

	assert.Equal(t, "Jane Doe", officials[0].Name)
	assert.Equal(t, LevelState, officials[0].Level)
	assert.Equal(t, "Senator", officials[0].Office)
	assert.Equal(t, "Illinois", officials[0].State)
	assert.Equal(t, "https://example.org/jane.jpg", officials[0].PhotoURL)
	assert.Contains(t, officials[0].URLs, "https://openstates.org/person/jane-doe/")

	assert.Equal(t, "John Roe", officials[1].Name)
	assert.Equal(t, LevelFederal, officials[1].Level)
	assert.Equal(t, "US Representative", officials[1].Office)
	assert.Empty(t, officials[1].State)
}

func TestOpenStatesClient_PeopleGeo_MissingKey(t *testing.T) {
	client := NewOpenStatesClient("https://v3.openstates.org", "")
	_, err := client.PeopleGeo(context.Background(), 39.78, -89.65)

	require.Error(t, err)
	assert.True(t, IsLookupError(err))
}

func TestOpenStatesClient_PeopleGeo_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": []}`)
	}))
	defer server.Close()

	client := NewOpenStatesClient(server.URL, "test-key")
	_, err := client.PeopleGeo(context.Background(), 39.78, -89.65)

	require.Error(t, err)
	assert.True(t, IsLookupError(err))
	assert.Equal(t, "No officials returned by OpenStates for that location.", err.Error())
}

func TestOpenStatesClient_PeopleGeo_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOpenStatesClient(server.URL, "bad-key")
	_, err := client.PeopleGeo(context.Background(), 39.78, -89.65)

	require.Error(t, err)
	assert.False(t, IsLookupError(err))
}

func TestOfficialFromOpenStates_EmailFallsBackToCurrentRole(t *testing.T) {
	item := openStatesPerson{Name: "Jane Doe"}
	item.CurrentRole.Title = "Senator"
	item.CurrentRole.Email = "jane@example.gov"
	item.Jurisdiction.Classification = "state"
	item.Jurisdiction.Name = "Illinois"

	official, err := officialFromOpenStates(item)
	require.NoError(t, err)
	assert.Contains(t, official.URLs, "mailto:jane@example.gov")
}
