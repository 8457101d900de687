package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

// nominatimPlace is the slice of a Nominatim search result we care about.
// Coordinates arrive as strings on the wire.
type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	DisplayName string      `json:"display_name"`
	Name        string      `json:"name"`
}

type GeocodeService struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     *bigcache.BigCache
}

func NewGeocodeService(baseURL string, userAgent string, timeout time.Duration, cacheTTL time.Duration) (*GeocodeService, error) {
	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(cacheTTL))
	if err != nil {
		return nil, fmt.Errorf("init geocode cache: %w", err)
	}

	return &GeocodeService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
	}, nil
}

// Lookup resolves a place name through Nominatim, serving repeated queries
// from the in-memory cache.
func (s *GeocodeService) Lookup(ctx context.Context, place string) (model.GeocodeResult, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return model.GeocodeResult{}, apierror.New("BAD_REQUEST", "place query parameter is required", "", http.StatusBadRequest)
	}

	cacheKey := strings.ToLower(place)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var result model.GeocodeResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
	}

	result, err := s.fetch(ctx, place)
	if err != nil {
		return model.GeocodeResult{}, err
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(cacheKey, encoded); err != nil {
			slog.Warn("geocode cache set failed", "place", place, "error", err)
		}
	}

	return result, nil
}

func (s *GeocodeService) fetch(ctx context.Context, place string) (model.GeocodeResult, error) {
	query := url.Values{}
	query.Set("q", place+", France")
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return model.GeocodeResult{}, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.GeocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.GeocodeResult{}, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.GeocodeResult{}, fmt.Errorf("read geocode response: %w", err)
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return model.GeocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(places) == 0 {
		return model.GeocodeResult{}, apierror.New("NOT_FOUND", "place not found", place, http.StatusNotFound)
	}

	first := places[0]
	lat, err := first.latFloat()
	if err != nil {
		return model.GeocodeResult{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := first.lonFloat()
	if err != nil {
		return model.GeocodeResult{}, fmt.Errorf("parse longitude: %w", err)
	}

	return model.GeocodeResult{
		Key:      first.PlaceID.String(),
		Lat:      lat,
		Lon:      lon,
		Location: first.DisplayName,
		Name:     first.Name,
	}, nil
}

func (p nominatimPlace) latFloat() (float64, error) {
	return json.Number(p.Lat).Float64()
}

func (p nominatimPlace) lonFloat() (float64, error) {
	return json.Number(p.Lon).Float64()
}
