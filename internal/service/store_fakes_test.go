package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

// memAccountStore is an in-memory AccountStore enforcing the same
// case-insensitive unique-email rule the Postgres index does.
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

// memFavoriteStore mirrors the shared-row semantics of the favorite tables:
// one row per place_id, a join set per account.
type memFavoriteStore struct {
	mu    sync.Mutex
	spots map[string]model.FavoriteSpot // keyed by place_id
	joins map[string]map[string]bool    // account id -> spot id set
	order []string
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
	for _, placeID := range s.order {
		spot := s.spots[placeID]
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
	s.order = append(s.order, placeID)
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
