package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) ListForAccount(ctx context.Context, accountID string) ([]model.FavoriteSpot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.place_id, s.name, s.latitude, s.longitude, s.created_at
		 FROM favorite_spots s
		 JOIN account_favorites af ON af.spot_id = s.id
		 WHERE af.account_id = $1
		 ORDER BY af.created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	spots := make([]model.FavoriteSpot, 0)
	for rows.Next() {
		var s model.FavoriteSpot
		if err := rows.Scan(&s.ID, &s.PlaceID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

// UpsertSpot creates the shared spot row for place_id when it does not exist
// yet, and returns the row either way. The conflict clause leans on the
// unique index so racing calls for a new place converge on one row.
func (r *FavoriteRepository) UpsertSpot(ctx context.Context, placeID string, name string, lat float64, lon float64) (model.FavoriteSpot, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorite_spots (id, place_id, name, latitude, longitude, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (place_id) DO NOTHING`,
		uuid.NewString(), placeID, name, lat, lon, time.Now().UTC())
	if err != nil {
		return model.FavoriteSpot{}, fmt.Errorf("upsert spot: %w", err)
	}

	return r.FindSpotByPlaceID(ctx, placeID)
}

func (r *FavoriteRepository) FindSpotByPlaceID(ctx context.Context, placeID string) (model.FavoriteSpot, error) {
	var s model.FavoriteSpot
	err := r.pool.QueryRow(ctx,
		`SELECT id, place_id, name, latitude, longitude, created_at
		 FROM favorite_spots WHERE place_id = $1`, placeID).
		Scan(&s.ID, &s.PlaceID, &s.Name, &s.Latitude, &s.Longitude, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.FavoriteSpot{}, apierror.New("NOT_FOUND", "favorite spot not found", placeID, http.StatusNotFound)
	}
	if err != nil {
		return model.FavoriteSpot{}, fmt.Errorf("find spot: %w", err)
	}
	return s, nil
}

func (r *FavoriteRepository) Connect(ctx context.Context, accountID string, spotID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_favorites (account_id, spot_id, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (account_id, spot_id) DO NOTHING`,
		accountID, spotID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("connect favorite: %w", err)
	}
	return nil
}

// Disconnect removes the account's relation to the spot. The spot row itself
// survives so other accounts keep their reference.
func (r *FavoriteRepository) Disconnect(ctx context.Context, accountID string, spotID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM account_favorites WHERE account_id = $1 AND spot_id = $2`,
		accountID, spotID)
	if err != nil {
		return fmt.Errorf("disconnect favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) DisconnectByPlaceIDs(ctx context.Context, accountID string, placeIDs []string) error {
	if len(placeIDs) == 0 {
		return nil
	}

	_, err := r.pool.Exec(ctx,
		`DELETE FROM account_favorites af
		 USING favorite_spots s
		 WHERE af.spot_id = s.id
		   AND af.account_id = $1
		   AND s.place_id = ANY($2)`,
		accountID, placeIDs)
	if err != nil {
		return fmt.Errorf("disconnect favorites by place id: %w", err)
	}
	return nil
}
