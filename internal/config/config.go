package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/doctoc/internal/toc"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64
	MaxBatchDocs   int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// TOC site settings
	SettingsPath string
	TOC          toc.Options
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCTOC_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
		MaxBatchDocs:   envInt("MAX_BATCH_DOCS", 200),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		SettingsPath: os.Getenv("TOC_SETTINGS"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.MaxBatchDocs <= 0 {
		cfg.MaxBatchDocs = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return cfg, err
	}
	cfg.TOC = settings.Merge(toc.Defaults())
	applyTOCEnv(&cfg.TOC)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCTOC_API_KEY is required")
	}
	if err := toc.Validate(c.TOC); err != nil {
		return fmt.Errorf("site toc settings: %w", err)
	}
	return nil
}

// applyTOCEnv lets TOC_RUN, TOC_INCLUDE_TITLE and TOC_HEADERS override the
// settings file. Booleans follow the metadata rule: only "true" is true.
func applyTOCEnv(opts *toc.Options) {
	if v, ok := os.LookupEnv("TOC_RUN"); ok {
		opts.Enabled = v == "true"
	}
	if v, ok := os.LookupEnv("TOC_INCLUDE_TITLE"); ok {
		opts.IncludeTitle = v == "true"
	}
	if v, ok := os.LookupEnv("TOC_HEADERS"); ok {
		opts.Headers = v
	}
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
