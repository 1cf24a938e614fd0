package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	MetricsPort string
	DatabaseURL string
	RedisURL    string
	LogFile     string
	WorkerCount int

	// Card search
	CardAPIURL    string
	SearchBaseURL string
	InStockParam  string
	InStockValue  string
	HTTPTimeout   time.Duration
	CacheTTL      time.Duration
	DemoCardsFile string

	// State map
	MapDataFile       string
	MapStoreColumn    string
	MapCityColumn     string
	MapDefaultStore   string
	MapDefaultCity    string
	MapOutputPath     string
	StatesGeoJSONURL  string
	GeocoderURL       string
	GeocoderUserAgent string
}

func Load() *Config {
	// project root .env first, then the working directory
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":5000"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		LogFile:     os.Getenv("LOG_FILE"),
		WorkerCount: getEnvInt("WORKER_COUNT", 5),

		CardAPIURL:    getEnv("CARD_API_URL", "https://db.ygoprodeck.com/api/v7/cardinfo.php"),
		SearchBaseURL: getEnv("SEARCH_BASE_URL", "https://www.tcgplayer.com/search/yugioh/product"),
		// The marketplace's filter params change from time to time; override here if in-stock stops working.
		InStockParam:  getEnv("IN_STOCK_PARAM", "availability"),
		InStockValue:  getEnv("IN_STOCK_VALUE", "in_stock"),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		CacheTTL:      getEnvDuration("CACHE_TTL", 15*time.Minute),
		DemoCardsFile: os.Getenv("DEMO_CARDS_FILE"),

		MapDataFile:       getEnv("MAP_DATA_FILE", defaultDataFile()),
		MapStoreColumn:    getEnv("MAP_STORE_COLUMN", "Store"),
		MapCityColumn:     getEnv("MAP_CITY_COLUMN", "City"),
		MapDefaultStore:   getEnv("MAP_DEFAULT_STORE", "Miami Beach"),
		MapDefaultCity:    getEnv("MAP_DEFAULT_CITY", "Miami"),
		MapOutputPath:     getEnv("MAP_OUTPUT_PATH", "state_map.html"),
		StatesGeoJSONURL:  getEnv("STATES_GEOJSON_URL", "https://raw.githubusercontent.com/PublicaMundi/MappingAPI/master/data/geojson/us-states.json"),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", "city_state_mapper"),
	}
}

func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stores.csv"
	}
	return filepath.Join(home, "Downloads", "DMA_Store-report (2).xlsx")
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// getEnvDuration accepts Go durations ("10s") or a bare number of seconds.
func getEnvDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return d
}
