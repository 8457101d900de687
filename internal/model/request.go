package model

type SignupRequest struct {
	Prenom    string `json:"prenom"`
	Nom       string `json:"nom"`
	Location  string `json:"location"`
	SurfLevel string `json:"surf_level"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest carries a partial profile edit. Nil pointers mean
// "leave unchanged". RemovedFavorites lists place ids to disconnect from the
// account in the same call.
type UpdateProfileRequest struct {
	Prenom           *string  `json:"prenom"`
	Nom              *string  `json:"nom"`
	Username         *string  `json:"username"`
	Email            *string  `json:"email"`
	Location         *string  `json:"location"`
	SurfLevel        *string  `json:"surf_level"`
	Password         *string  `json:"password"`
	RemovedFavorites []string `json:"removedFavorites"`
}

type AddFavoriteRequest struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RemoveFavoriteRequest struct {
	PlaceID string `json:"place_id"`
}
