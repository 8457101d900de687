package model

import "time"

// FavoriteSpot is a surf spot bookmarked by at least one account. The row is
// shared: place_id is unique and several accounts may reference the same row
// through the join table. Unfavoriting disconnects the account, it never
// deletes the row.
type FavoriteSpot struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
