package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Addr string
	// TLSDomain enables automatic certificates for that host when set.
	TLSDomain      string
	CertCache      string
	LogLevel       zerolog.Level
	AnalyzeWorkers int
	// MaxRemaining is the largest number of held cards the server will solve.
	MaxRemaining int
}

func Defaults() Config {
	return Config{
		Addr:           ":8080",
		CertCache:      "certs",
		LogLevel:       zerolog.InfoLevel,
		AnalyzeWorkers: runtime.NumCPU(),
		MaxRemaining:   24,
	}
}

// Load reads .env if present and overrides the defaults from the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Defaults()
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TLS_DOMAIN"); v != "" {
		cfg.TLSDomain = v
	}
	if v := os.Getenv("CERT_CACHE"); v != "" {
		cfg.CertCache = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if l, err := zerolog.ParseLevel(v); err == nil {
			cfg.LogLevel = l
		}
	}
	if v := os.Getenv("ANALYZE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalyzeWorkers = n
		}
	}
	if v := os.Getenv("MAX_REMAINING"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxRemaining = n
		}
	}
	return cfg
}
