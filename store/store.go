package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"busx-cli/model"
)

const (
	agencyCacheTTL   = 24 * time.Hour
	scheduleCacheTTL = 10 * time.Minute
	maxRecentRoutes  = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// RecentRoute is a departure/arrival pair the user searched before.
type RecentRoute struct {
	FromID   string `json:"from_id"`
	FromName string `json:"from_name"`
	ToID     string `json:"to_id"`
	ToName   string `json:"to_name"`
}

type routeHistory struct {
	Routes []RecentRoute `json:"routes"`
}

func LoadAgencyCache() ([]model.Agency, bool, error) {
	path, err := cachePath("agencies.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Agency](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= agencyCacheTTL, nil
}

func SaveAgencyCache(agencies []model.Agency) error {
	path, err := cachePath("agencies.json")
	if err != nil {
		return err
	}
	return saveCache(path, agencies)
}

// Schedule caches are keyed per route and day. Seat availability moves
// fast, so the TTL is short.
func LoadScheduleCache(fromID string, toID string, date string) ([]model.Schedule, bool, error) {
	path, err := cachePath(fmt.Sprintf("schedules_%s_%s_%s.json", fromID, toID, date))
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Schedule](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= scheduleCacheTTL, nil
}

func SaveScheduleCache(fromID string, toID string, date string, schedules []model.Schedule) error {
	path, err := cachePath(fmt.Sprintf("schedules_%s_%s_%s.json", fromID, toID, date))
	if err != nil {
		return err
	}
	return saveCache(path, schedules)
}

func LoadRecentRoutes() ([]RecentRoute, error) {
	path, err := configPath("routes.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history routeHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid route history format")
	}
	return history.Routes, nil
}

// RememberRoute moves the route to the front of the history, deduplicating
// by agency pair and capping the list.
func RememberRoute(from model.Agency, to model.Agency) error {
	if from.ID == "" || to.ID == "" {
		return errors.New("agency ids are required")
	}

	history, _ := LoadRecentRoutes()
	next := []RecentRoute{{
		FromID:   from.ID,
		FromName: from.Name,
		ToID:     to.ID,
		ToName:   to.Name,
	}}

	for _, existing := range history {
		if existing.FromID == from.ID && existing.ToID == to.ID {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentRoutes {
			break
		}
	}

	return saveRecentRoutes(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentRoutes(routes []RecentRoute) error {
	path, err := configPath("routes.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := routeHistory{Routes: routes}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "busx-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "busx-cli", name), nil
}
