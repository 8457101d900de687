package model

import "errors"

var (
	// Account related errors
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrBadCredentials  = errors.New("invalid credentials")

	// Token related errors
	ErrTokenMalformed = errors.New("token malformed or badly signed")
	ErrTokenExpired   = errors.New("token expired")

	// Favorite related errors
	ErrSpotNotFound = errors.New("favorite spot not found")

	// Geocoding errors
	ErrPlaceNotFound = errors.New("place not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
