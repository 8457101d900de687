package model

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ProfileResponse is the account view plus the favorite list, returned by the
// profile endpoints.
type ProfileResponse struct {
	AccountView
	Favorites []FavoriteSpot `json:"favorites"`
}

// GeocodeResult mirrors what the frontend map expects from the geocoding
// proxy.
type GeocodeResult struct {
	Key      string  `json:"key"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Location string  `json:"location"`
	Name     string  `json:"name"`
}
