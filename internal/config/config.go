package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string        // dev, prod
	LogLevel            string        // zerolog level name
	AppointmentDuration time.Duration // default slot length for conflict checks
	TaxRate             float64       // applied in the bill summary export
	ExportDir           string        // where bill summaries are written
	AllowDuplicateIDs   bool          // compatibility switch for permissive inserts
	DemoDoctors         int           // doctors created by demo seeding
	DemoPatients        int           // patients created by demo seeding
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                 getEnv("APP_ENV", "dev"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AppointmentDuration: getDuration("APPOINTMENT_DURATION", 30*time.Minute),
		TaxRate:             getFloat("TAX_RATE", 0.05),
		ExportDir:           getEnv("EXPORT_DIR", "data/bills"),
		AllowDuplicateIDs:   getBool("ALLOW_DUPLICATE_IDS", false),
		DemoDoctors:         getInt("DEMO_DOCTORS", 5),
		DemoPatients:        getInt("DEMO_PATIENTS", 20),
	}

	if cfg.AppointmentDuration <= 0 {
		return Config{}, fmt.Errorf("APPOINTMENT_DURATION must be positive, got %s", cfg.AppointmentDuration)
	}
	if cfg.TaxRate < 0 {
		return Config{}, fmt.Errorf("TAX_RATE must not be negative, got %v", cfg.TaxRate)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Minute
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		fmt.Fprintf(os.Stderr, "invalid float for %s=%q, using default %v\n", key, v, def)
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "invalid int for %s=%q, using default %d\n", key, v, def)
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		fmt.Fprintf(os.Stderr, "invalid bool for %s=%q, using default %v\n", key, v, def)
	}
	return def
}
