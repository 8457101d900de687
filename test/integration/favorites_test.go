//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"waveo-api/internal/model"
)

func decodeSpots(t *testing.T, envelope apiEnvelope) []model.FavoriteSpot {
	t.Helper()

	var spots []model.FavoriteSpot
	require.NoError(t, json.Unmarshal(envelope.Data, &spots))
	return spots
}

func TestFavoriteToggleScenario(t *testing.T) {
	env := newTestServer(t, "")

	accessToken, _ := signupAndLogin(t, env, "a@x.com")

	addPayload := map[string]any{
		"place_id": "hossegor",
		"name":     "Hossegor",
		"latitude": 43.665, "longitude": -1.4273,
	}

	resp, envelope := doJSON(t, http.MethodPost, env.server.URL+"/api/favorites", addPayload, accessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	spots := decodeSpots(t, envelope)
	require.Len(t, spots, 1)
	require.Equal(t, "hossegor", spots[0].PlaceID)

	resp, envelope = doJSON(t, http.MethodDelete, env.server.URL+"/api/favorites",
		map[string]string{"place_id": "hossegor"}, accessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decodeSpots(t, envelope))

	// The shared row survives; a second account can still attach to it.
	secondToken, _ := signupAndLogin(t, env, "b@x.com")
	resp, envelope = doJSON(t, http.MethodPost, env.server.URL+"/api/favorites", addPayload, secondToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeSpots(t, envelope), 1)
	require.Equal(t, 1, env.favorites.spotCount())

	// Favorites are per-account and require authentication.
	resp, _ = doJSON(t, http.MethodGet, env.server.URL+"/api/favorites", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, envelope = doJSON(t, http.MethodGet, env.server.URL+"/api/favorites", nil, accessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decodeSpots(t, envelope))

	// Removing an unknown place is a 404.
	resp, _ = doJSON(t, http.MethodDelete, env.server.URL+"/api/favorites",
		map[string]string{"place_id": "atlantis"}, accessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileUpdateWithRemovedFavorites(t *testing.T) {
	env := newTestServer(t, "")

	accessToken, _ := signupAndLogin(t, env, "a@x.com")

	_, _ = doJSON(t, http.MethodPost, env.server.URL+"/api/favorites", map[string]any{
		"place_id": "hossegor", "name": "Hossegor",
		"latitude": 43.665, "longitude": -1.4273,
	}, accessToken)

	resp, envelope := doJSON(t, http.MethodPut, env.server.URL+"/api/profile", map[string]any{
		"location":         "Biarritz",
		"surf_level":       "advanced",
		"removedFavorites": []string{"hossegor"},
	}, accessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Location  string               `json:"location"`
		SurfLevel string               `json:"surf_level"`
		Favorites []model.FavoriteSpot `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &profile))
	require.Equal(t, "Biarritz", profile.Location)
	require.Equal(t, "advanced", profile.SurfLevel)
	require.Empty(t, profile.Favorites)
}

func TestGeocodeProxy(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":12345,"lat":"43.665","lon":"-1.4273","display_name":"Hossegor, Landes, France","name":"Hossegor"}]`))
	}))
	t.Cleanup(stub.Close)

	env := newTestServer(t, stub.URL)

	// Missing query parameter.
	resp, _ := doJSON(t, http.MethodGet, env.server.URL+"/api/geocode", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodGet, env.server.URL+"/api/geocode?place=Hossegor", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result model.GeocodeResult
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	require.Equal(t, "12345", result.Key)
	require.Equal(t, "Hossegor", result.Name)
	require.InDelta(t, 43.665, result.Lat, 0.0001)
}
