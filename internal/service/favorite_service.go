package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

// FavoriteStore is the slice of the persistence layer the favorite service
// needs.
type FavoriteStore interface {
	ListForAccount(ctx context.Context, accountID string) ([]model.FavoriteSpot, error)
	UpsertSpot(ctx context.Context, placeID string, name string, lat float64, lon float64) (model.FavoriteSpot, error)
	FindSpotByPlaceID(ctx context.Context, placeID string) (model.FavoriteSpot, error)
	Connect(ctx context.Context, accountID string, spotID string) error
	Disconnect(ctx context.Context, accountID string, spotID string) error
	DisconnectByPlaceIDs(ctx context.Context, accountID string, placeIDs []string) error
}

type FavoriteService struct {
	accounts  AccountStore
	favorites FavoriteStore
	now       func() time.Time
}

func NewFavoriteService(accounts AccountStore, favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{accounts: accounts, favorites: favorites, now: time.Now}
}

func (s *FavoriteService) List(ctx context.Context, accountID string) ([]model.FavoriteSpot, error) {
	return s.favorites.ListForAccount(ctx, accountID)
}

// Add bookmarks a spot for the account and returns the full list. Both steps
// are idempotent, so repeating the call changes nothing.
func (s *FavoriteService) Add(ctx context.Context, accountID string, req model.AddFavoriteRequest) ([]model.FavoriteSpot, error) {
	req.PlaceID = strings.TrimSpace(req.PlaceID)
	if req.PlaceID == "" {
		return nil, apierror.New("BAD_REQUEST", "place_id is required", "", http.StatusBadRequest)
	}

	spot, err := s.favorites.UpsertSpot(ctx, req.PlaceID, strings.TrimSpace(req.Name), req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.Connect(ctx, accountID, spot.ID); err != nil {
		return nil, err
	}

	return s.favorites.ListForAccount(ctx, accountID)
}

// Remove disconnects the spot from the account. The shared row stays so
// other accounts keep their bookmark.
func (s *FavoriteService) Remove(ctx context.Context, accountID string, placeID string) ([]model.FavoriteSpot, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apierror.New("BAD_REQUEST", "place_id is required", "", http.StatusBadRequest)
	}

	spot, err := s.favorites.FindSpotByPlaceID(ctx, placeID)
	if err != nil {
		return nil, err
	}

	if err := s.favorites.Disconnect(ctx, accountID, spot.ID); err != nil {
		return nil, err
	}

	return s.favorites.ListForAccount(ctx, accountID)
}

// Profile returns the account view together with its favorites.
func (s *FavoriteService) Profile(ctx context.Context, accountID string) (model.ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	spots, err := s.favorites.ListForAccount(ctx, accountID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return model.ProfileResponse{AccountView: account.View(), Favorites: spots}, nil
}

// UpdateProfile applies a partial profile edit, optionally re-hashing a new
// password and disconnecting the listed favorites, then returns the updated
// profile. Concurrent edits are not serialized; the last write wins.
func (s *FavoriteService) UpdateProfile(ctx context.Context, accountID string, req model.UpdateProfileRequest) (model.ProfileResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	if req.Prenom != nil {
		account.Prenom = strings.TrimSpace(*req.Prenom)
	}
	if req.Nom != nil {
		account.Nom = strings.TrimSpace(*req.Nom)
	}
	if req.Username != nil {
		account.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		account.Email = strings.TrimSpace(*req.Email)
	}
	if req.Location != nil {
		account.Location = strings.TrimSpace(*req.Location)
	}
	if req.SurfLevel != nil {
		level := strings.ToLower(strings.TrimSpace(*req.SurfLevel))
		if !model.ValidSurfLevel(level) {
			return model.ProfileResponse{}, apierror.New("BAD_REQUEST", "invalid surf level", level, http.StatusBadRequest)
		}
		account.SurfLevel = level
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := HashSecret(*req.Password)
		if err != nil {
			return model.ProfileResponse{}, err
		}
		account.PasswordHash = hash
	}

	if err := s.favorites.DisconnectByPlaceIDs(ctx, accountID, req.RemovedFavorites); err != nil {
		return model.ProfileResponse{}, err
	}

	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return model.ProfileResponse{}, err
	}

	spots, err := s.favorites.ListForAccount(ctx, accountID)
	if err != nil {
		return model.ProfileResponse{}, err
	}

	return model.ProfileResponse{AccountView: account.View(), Favorites: spots}, nil
}
