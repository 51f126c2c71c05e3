package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingEnv = errors.New("config: missing required environment variable")

// Config carries everything the binaries need, loaded from the environment.
type Config struct {
	DatabaseURL string
	HTTPAddr    string
	AMQPURL     string

	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string

	VectorURL        string
	VectorAPIKey     string
	VectorCollection string
	VectorDim        int

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	AutomationURL    string
	AutomationAPIKey string

	Mailer          string
	GmailCredsFile  string
	GmailTokenFile  string
	DigestFrom      string
	DigestInterval  time.Duration
	DigestTopN      int
	DigestWorkers   int

	ExtractionMinConfidence float64
	MatchTopK               int
	WorkerConcurrency       int
	TokenTTL                time.Duration
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		AMQPURL:     os.Getenv("AMQP_URL"),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),

		VectorURL:        os.Getenv("VECTOR_URL"),
		VectorAPIKey:     os.Getenv("VECTOR_API_KEY"),
		VectorCollection: getEnv("VECTOR_COLLECTION", "seekwell_jobs"),
		VectorDim:        getEnvInt("VECTOR_DIM", 768),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3Bucket:    getEnv("S3_BUCKET", "seekwell-resumes"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		AutomationURL:    os.Getenv("AUTOMATION_URL"),
		AutomationAPIKey: os.Getenv("AUTOMATION_API_KEY"),

		Mailer:         getEnv("MAILER", "log"),
		GmailCredsFile: getEnv("GMAIL_CREDENTIALS_FILE", "credentials.json"),
		GmailTokenFile: getEnv("GMAIL_TOKEN_FILE", "token.json"),
		DigestFrom:     os.Getenv("DIGEST_FROM"),
		DigestInterval: getEnvDuration("DIGEST_INTERVAL", time.Hour),
		DigestTopN:     getEnvInt("DIGEST_TOP_N", 5),
		DigestWorkers:  getEnvInt("DIGEST_WORKERS", 4),

		ExtractionMinConfidence: getEnvFloat("EXTRACTION_MIN_CONFIDENCE", 0.5),
		MatchTopK:               getEnvInt("MATCH_TOP_K", 20),
		WorkerConcurrency:       getEnvInt("WORKER_CONCURRENCY", 4),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 30*24*time.Hour),
	}
	return cfg, nil
}

// Validate checks the variables every binary needs. Callers check the
// service-specific ones (AMQP for the worker, S3 for uploads) themselves.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnv)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingEnv)
	}
	return nil
}

// ValidateWorker covers the additional requirements of cmd/worker.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AMQPURL == "" {
		return fmt.Errorf("%w: AMQP_URL", ErrMissingEnv)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
