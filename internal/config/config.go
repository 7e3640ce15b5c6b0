// README: Config loader with env defaults for HTTP, storage, and map provider credentials.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Storage struct {
		// RedisAddr selects the redis backend when set; otherwise routes
		// are persisted under DataDir.
		RedisAddr string
		DataDir   string
	}
	Search struct {
		// AccessToken is the search/directions provider credential. An
		// empty value degrades search to a no-op instead of failing.
		AccessToken string
		Debounce    time.Duration
	}
	Directions struct {
		Provider     string // "mapbox" or "google"
		Profile      string
		GoogleAPIKey string
	}
	// MaptilerKey styles the map tiles on the client. Optional; tiles may
	// simply fail to render without it.
	MaptilerKey string
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("CYCLE_HTTP_ADDR", ":8080")
	cfg.Storage.RedisAddr = os.Getenv("CYCLE_REDIS_ADDR")
	cfg.Storage.DataDir = envOrDefault("CYCLE_DATA_DIR", "data")
	cfg.Search.AccessToken = os.Getenv("MAPBOX_ACCESS_TOKEN")
	cfg.Search.Debounce = time.Duration(envOrDefaultInt("CYCLE_SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond
	cfg.Directions.Provider = envOrDefault("CYCLE_DIRECTIONS_PROVIDER", "mapbox")
	cfg.Directions.Profile = envOrDefault("CYCLE_ROUTE_PROFILE", "mapbox/cycling")
	cfg.Directions.GoogleAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.MaptilerKey = os.Getenv("MAPTILER_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
