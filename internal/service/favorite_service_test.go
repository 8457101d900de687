package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"waveo-api/internal/model"
)

func seedAccount(t *testing.T, store *memAccountStore, email string) model.Account {
	t.Helper()

	hash, err := HashSecret("Passw0rd!")
	require.NoError(t, err)

	now := time.Now().UTC()
	account := model.Account{
		ID:           uuid.NewString(),
		Prenom:       "Léa",
		Nom:          "Martin",
		Username:     "lea",
		Email:        email,
		Location:     "Hossegor",
		SurfLevel:    "intermediate",
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Create(context.Background(), account))
	return account
}

var hossegor = model.AddFavoriteRequest{
	PlaceID:   "hossegor",
	Name:      "Hossegor",
	Latitude:  43.665,
	Longitude: -1.4273,
}

func TestFavoriteAddRemoveToggle(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")

	list, err := svc.Add(context.Background(), account.ID, hossegor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "hossegor", list[0].PlaceID)

	// Adding again is a no-op.
	list, err = svc.Add(context.Background(), account.ID, hossegor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, favorites.spotCount())

	list, err = svc.Remove(context.Background(), account.ID, "hossegor")
	require.NoError(t, err)
	require.Empty(t, list)

	// The shared row survives removal and re-adding reuses it.
	require.Equal(t, 1, favorites.spotCount())
	list, err = svc.Add(context.Background(), account.ID, hossegor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, favorites.spotCount())
}

func TestFavoriteRowSharedBetweenAccounts(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	first := seedAccount(t, accounts, "a@x.com")
	second := seedAccount(t, accounts, "b@x.com")

	_, err := svc.Add(context.Background(), first.ID, hossegor)
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), second.ID, hossegor)
	require.NoError(t, err)
	require.Equal(t, 1, favorites.spotCount())

	// First account unfavorites; second still resolves the row.
	_, err = svc.Remove(context.Background(), first.ID, "hossegor")
	require.NoError(t, err)

	secondList, err := svc.List(context.Background(), second.ID)
	require.NoError(t, err)
	require.Len(t, secondList, 1)
	require.Equal(t, 1, favorites.spotCount())
}

func TestFavoriteValidationAndNotFound(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")

	_, err := svc.Add(context.Background(), account.ID, model.AddFavoriteRequest{})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Remove(context.Background(), account.ID, "")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Remove(context.Background(), account.ID, "never-seen")
	requireStatus(t, err, http.StatusNotFound)
}

func TestProfileIncludesFavorites(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")

	_, err := svc.Add(context.Background(), account.ID, hossegor)
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", profile.Email)
	require.Len(t, profile.Favorites, 1)
}

func TestUpdateProfilePartial(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")

	_, err := svc.Add(context.Background(), account.ID, hossegor)
	require.NoError(t, err)

	newLocation := "Biarritz"
	newLevel := "advanced"
	profile, err := svc.UpdateProfile(context.Background(), account.ID, model.UpdateProfileRequest{
		Location:         &newLocation,
		SurfLevel:        &newLevel,
		RemovedFavorites: []string{"hossegor"},
	})
	require.NoError(t, err)
	require.Equal(t, "Biarritz", profile.Location)
	require.Equal(t, "advanced", profile.SurfLevel)
	require.Empty(t, profile.Favorites)

	// Untouched fields survived.
	require.Equal(t, "Léa", profile.Prenom)
	require.Equal(t, "a@x.com", profile.Email)
	// The spot row itself was only disconnected, not deleted.
	require.Equal(t, 1, favorites.spotCount())
}

func TestUpdateProfileEmailConflictAndBadLevel(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")
	seedAccount(t, accounts, "taken@x.com")

	taken := "taken@x.com"
	_, err := svc.UpdateProfile(context.Background(), account.ID, model.UpdateProfileRequest{Email: &taken})
	requireStatus(t, err, http.StatusConflict)

	bad := "pro"
	_, err = svc.UpdateProfile(context.Background(), account.ID, model.UpdateProfileRequest{SurfLevel: &bad})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUpdateProfilePasswordRehash(t *testing.T) {
	accounts := newMemAccountStore()
	favorites := newMemFavoriteStore()
	svc := NewFavoriteService(accounts, favorites)
	account := seedAccount(t, accounts, "a@x.com")

	newPassword := "Fresh1!"
	_, err := svc.UpdateProfile(context.Background(), account.ID, model.UpdateProfileRequest{Password: &newPassword})
	require.NoError(t, err)

	updated, err := accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.False(t, CheckSecret("Passw0rd!", updated.PasswordHash))
	require.True(t, CheckSecret("Fresh1!", updated.PasswordHash))
}
