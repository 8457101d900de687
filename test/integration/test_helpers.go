//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"waveo-api/internal/config"
	"waveo-api/internal/handler"
	"waveo-api/internal/middleware"
	"waveo-api/internal/model"
	"waveo-api/internal/router"
	"waveo-api/internal/service"
	"waveo-api/pkg/apierror"
)

// memAccountStore and memFavoriteStore stand in for the Postgres
// repositories; they enforce the same unique constraints the schema does.
type memAccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{accounts: map[string]model.Account{}}
}

func (s *memAccountStore) FindByID(_ context.Context, id string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return model.Account{}, apierror.New("NOT_FOUND", "account not found", id, http.StatusNotFound)
	}
	return a, nil
}

func (s *memAccountStore) FindByEmail(_ context.Context, email string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, strings.TrimSpace(email)) {
			return a, nil
		}
	}
	return model.Account{}, apierror.New("NOT_FOUND", "account not found", email, http.StatusNotFound)
}

func (s *memAccountStore) FindLatest(_ context.Context) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest model.Account
	found := false
	for _, a := range s.accounts {
		if !found || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
			found = true
		}
	}
	if !found {
		return model.Account{}, apierror.New("NOT_FOUND", "account not found", "", http.StatusNotFound)
	}
	return latest, nil
}

func (s *memAccountStore) Create(_ context.Context, a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return apierror.New("ALREADY_EXISTS", "email already in use", a.Email, http.StatusConflict)
		}
	}
	s.accounts[a.ID] = a
	return nil
}

func (s *memAccountStore) Update(_ context.Context, a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.ID]; !ok {
		return apierror.New("NOT_FOUND", "account not found", a.ID, http.StatusNotFound)
	}
	for id, existing := range s.accounts {
		if id != a.ID && strings.EqualFold(existing.Email, a.Email) {
			return apierror.New("ALREADY_EXISTS", "email already in use", a.Email, http.StatusConflict)
		}
	}
	s.accounts[a.ID] = a
	return nil
}

type memFavoriteStore struct {
	mu    sync.Mutex
	spots map[string]model.FavoriteSpot
	joins map[string]map[string]bool
}

func newMemFavoriteStore() *memFavoriteStore {
	return &memFavoriteStore{
		spots: map[string]model.FavoriteSpot{},
		joins: map[string]map[string]bool{},
	}
}

func (s *memFavoriteStore) ListForAccount(_ context.Context, accountID string) ([]model.FavoriteSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.joins[accountID]
	out := make([]model.FavoriteSpot, 0)
	for _, spot := range s.spots {
		if set[spot.ID] {
			out = append(out, spot)
		}
	}
	return out, nil
}

func (s *memFavoriteStore) UpsertSpot(_ context.Context, placeID string, name string, lat float64, lon float64) (model.FavoriteSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spot, ok := s.spots[placeID]; ok {
		return spot, nil
	}

	spot := model.FavoriteSpot{
		ID:        uuid.NewString(),
		PlaceID:   placeID,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		CreatedAt: time.Now().UTC(),
	}
	s.spots[placeID] = spot
	return spot, nil
}

func (s *memFavoriteStore) FindSpotByPlaceID(_ context.Context, placeID string) (model.FavoriteSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spot, ok := s.spots[placeID]
	if !ok {
		return model.FavoriteSpot{}, apierror.New("NOT_FOUND", "favorite spot not found", placeID, http.StatusNotFound)
	}
	return spot, nil
}

func (s *memFavoriteStore) Connect(_ context.Context, accountID string, spotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.joins[accountID] == nil {
		s.joins[accountID] = map[string]bool{}
	}
	s.joins[accountID][spotID] = true
	return nil
}

func (s *memFavoriteStore) Disconnect(_ context.Context, accountID string, spotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.joins[accountID], spotID)
	return nil
}

func (s *memFavoriteStore) DisconnectByPlaceIDs(_ context.Context, accountID string, placeIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, placeID := range placeIDs {
		if spot, ok := s.spots[placeID]; ok {
			delete(s.joins[accountID], spot.ID)
		}
	}
	return nil
}

func (s *memFavoriteStore) spotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.spots)
}

type testEnv struct {
	server    *httptest.Server
	accounts  *memAccountStore
	favorites *memFavoriteStore
}

func newTestServer(t *testing.T, geocodeURL string) *testEnv {
	t.Helper()

	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()

	authService, err := service.NewAuthService("access-secret", "refresh-secret", time.Hour, 168*time.Hour, accounts)
	require.NoError(t, err)
	favoriteService := service.NewFavoriteService(accounts, favorites)

	if geocodeURL == "" {
		geocodeURL = "http://127.0.0.1:0"
	}
	geocodeService, err := service.NewGeocodeService(geocodeURL, "test-agent", 5*time.Second, time.Minute)
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:         "8080",
		RequestTimeout:     30 * time.Second,
		DatabaseURL:        "unused",
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		JWTAccessTTL:       time.Hour,
		JWTRefreshTTL:      168 * time.Hour,
		CORSOrigins:        []string{"*"},
		RateLimitRPM:       1000,
		AuthRateLimitRPM:   1000,
		GeocodeBaseURL:     geocodeURL,
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, false),
		Profile:  handler.NewProfileHandler(favoriteService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
		Geocode:  handler.NewGeocodeHandler(geocodeService),
		User:     handler.NewUserHandler(authService),
	})

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return &testEnv{server: server, accounts: accounts, favorites: favorites}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
}

func doJSON(t *testing.T, method string, url string, payload any, accessToken string) (*http.Response, apiEnvelope) {
	t.Helper()

	var body *bytes.Reader
	if payload == nil {
		body = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func signupAndLogin(t *testing.T, env *testEnv, email string) (string, *http.Cookie) {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, env.server.URL+"/signup", map[string]string{
		"prenom":     "Léa",
		"nom":        "Martin",
		"location":   "Hossegor",
		"surf_level": "intermediate",
		"username":   "lea",
		"email":      email,
		"password":   "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, http.MethodPost, env.server.URL+"/login", map[string]string{
		"email":    email,
		"password": "Passw0rd!",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &parsed))
	require.NotEmpty(t, parsed.AccessToken)

	var refreshCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refreshToken" {
			refreshCookie = cookie
		}
	}
	require.NotNil(t, refreshCookie, "login must set the refresh cookie")

	return parsed.AccessToken, refreshCookie
}
