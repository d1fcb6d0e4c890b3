package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the environment-driven defaults for a run. CLI flags override them.
type Config struct {
	OutputDir string
	InputDir  string
	StartDate string
	Confirmed bool
	Deaths    bool
	Normalize bool
	StylePath string
	Format    string

	ChromeBin      string
	ViewportWidth  int
	ViewportHeight int
	TileWaitMs     int
	TileTimeoutMs  int

	PostgresDSN string

	KaggleUsername string
	KaggleKey      string
	KaggleBaseURL  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		InputDir:  getEnv("INPUT_DIR", "./novel-corona-virus-2019-dataset"),
		StartDate: getEnv("START_DATE", "2/23/20"),
		Confirmed: getEnvBool("PLOT_CONFIRMED", true),
		Deaths:    getEnvBool("PLOT_DEATHS", true),
		Normalize: getEnvBool("NORM_TO_POPULATION", false),
		StylePath: getEnv("STYLE_FILE", ""),
		Format:    getEnv("ANIMATION_FORMAT", "gif"),

		ChromeBin:      getEnv("CHROME_BIN", ""),
		ViewportWidth:  getEnvInt("VIEWPORT_WIDTH", 1280),
		ViewportHeight: getEnvInt("VIEWPORT_HEIGHT", 800),
		TileWaitMs:     getEnvInt("TILE_WAIT_MS", 0),
		TileTimeoutMs:  getEnvInt("TILE_TIMEOUT_MS", 30000),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		KaggleUsername: getEnv("KAGGLE_USERNAME", ""),
		KaggleKey:      getEnv("KAGGLE_KEY", ""),
		KaggleBaseURL:  getEnv("KAGGLE_BASE_URL", "https://www.kaggle.com"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
