package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Groq completion backend
	GroqAPIKey string
	GroqModel  string
	GroqURL    string

	// Reduction
	MaxContextTokens int
	MaxSummaryChunks int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// In-memory state
	DocTTL time.Duration
	JobTTL time.Duration

	// Outbound HTTP
	HTTPTimeout time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	// A .env file is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8080"),

		APIKey: os.Getenv("STUDYPDF_API_KEY"),

		GroqAPIKey: os.Getenv("GROQ_API_KEY"),
		GroqModel:  envOr("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqURL:    envOr("GROQ_URL", "https://api.groq.com/openai/v1/chat/completions"),

		MaxContextTokens: envInt("MAX_CONTEXT_TOKENS", 3500),
		MaxSummaryChunks: envInt("MAX_SUMMARY_CHUNKS", 5),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DocTTL: envDuration("DOC_TTL", 2*time.Hour),
		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		HTTPTimeout: envDuration("HTTP_TIMEOUT", 120*time.Second),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxContextTokens <= 0 {
		cfg.MaxContextTokens = 3500
	}
	if cfg.MaxSummaryChunks <= 0 {
		cfg.MaxSummaryChunks = 5
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DocTTL <= 0 {
		cfg.DocTTL = 2 * time.Hour
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 120 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STUDYPDF_API_KEY is required")
	}
	if c.GroqAPIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
