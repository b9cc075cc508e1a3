package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                   string
	DBPath                 string
	LogLevel               string
	LogFile                string
	SeedPath               string
	WorkerCount            int
	QueueSize              int
	MaxQuestionsPerSession int
	SubmitRatePerSecond    float64
	SubmitBurst            int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                   envOr("ADDR", ":8080"),
		DBPath:                 envOr("DB_PATH", "file:genrequiz.db"),
		LogLevel:               envOr("LOG_LEVEL", "INFO"),
		LogFile:                os.Getenv("LOG_FILE"),
		SeedPath:               os.Getenv("SEED_PATH"),
		WorkerCount:            envIntOr("WORKER_COUNT", 1),
		QueueSize:              envIntOr("QUEUE_SIZE", 8),
		MaxQuestionsPerSession: envIntOr("MAX_QUESTIONS_PER_SESSION", 50),
		SubmitRatePerSecond:    envFloatOr("SUBMIT_RATE_PER_SECOND", 5),
		SubmitBurst:            envIntOr("SUBMIT_BURST", 10),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, "WORKER_COUNT must be positive")
	}
	if c.QueueSize <= 0 {
		problems = append(problems, "QUEUE_SIZE must be positive")
	}
	if c.MaxQuestionsPerSession <= 0 {
		problems = append(problems, "MAX_QUESTIONS_PER_SESSION must be positive")
	}
	if c.SubmitRatePerSecond <= 0 {
		problems = append(problems, "SUBMIT_RATE_PER_SECOND must be positive")
	}
	if c.SubmitBurst <= 0 {
		problems = append(problems, "SUBMIT_BURST must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
