// Package config loads settings from the environment, with an optional
// .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings carries the tunables for the matching engine and its surfaces.
type Settings struct {
	MinScore       float64
	AutoApplyScore float64
	ToleranceEBC   float64
	MaxAlternates  int
	ListenAddr     string
	CatalogPath    string
	DatabaseURL    string
	Debug          bool
}

// Load reads settings from the environment after merging an optional .env
// file. Unset variables fall back to the documented defaults.
func Load() Settings {
	LoadEnv()
	return Settings{
		MinScore:       GetEnvFloat("BREWMATCH_MIN_SCORE", 50),
		AutoApplyScore: GetEnvFloat("BREWMATCH_AUTO_APPLY_SCORE", 90),
		ToleranceEBC:   GetEnvFloat("BREWMATCH_COLOR_TOLERANCE_EBC", 30),
		MaxAlternates:  GetEnvInt("BREWMATCH_MAX_ALTERNATES", 4),
		ListenAddr:     GetEnv("BREWMATCH_LISTEN_ADDR", ":8087"),
		CatalogPath:    GetEnv("BREWMATCH_CATALOG", "catalog.json"),
		DatabaseURL:    GetEnv("BREWMATCH_DATABASE_URL", ""),
		Debug:          GetEnvBool("BREWMATCH_DEBUG", false),
	}
}

// LoadEnv loads environment variables from a .env file if one exists in
// the current or a parent directory. Variables already set in the
// environment win over file values.
func LoadEnv() error {
	envPaths := []string{".env", "../.env", "../../.env"}

	for _, envPath := range envPaths {
		data, err := os.ReadFile(envPath)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
		break
	}
	return nil
}

// GetEnv gets an environment variable with a default.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvFloat gets a float environment variable with a default.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvBool gets a boolean environment variable with a default.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}
