package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings. It is built once at startup and passed
// into the pieces that need it; nothing reads the environment after Load.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	JWTSecret   string
	JWTExpHours int

	UploadDir   string
	MaxUploadMB int64
	CORSOrigins []string
	Port        string
}

// Load reads configuration from the environment. JWT_SECRET is required;
// everything else has a default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable must be set")
	}

	cfg := &Config{
		DBHost:      getenv("DB_HOST", "localhost"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "student_marks_db"),
		DBPort:      getenv("DB_PORT", "5432"),
		JWTSecret:   secret,
		JWTExpHours: getenvInt("JWT_EXP_HOURS", 6),
		UploadDir:   getenv("UPLOAD_DIR", "uploads"),
		MaxUploadMB: int64(getenvInt("MAX_UPLOAD_MB", 10)),
		Port:        getenv("PORT", "8080"),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
