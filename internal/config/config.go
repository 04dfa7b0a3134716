package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Redis connection settings live in redis.go
// and rate limiter settings in ratelimit.go.
type Config struct {
	Env     string        // application environment (e.g. "dev", "prod")
	Port    string        // HTTP port to listen on
	HoldTTL time.Duration // lifetime of a pending seat hold
}

// defaultHoldTTLSeconds is applied when MAX_EVENT_SEAT_HOLD_TIME_IN_S is
// unset. Whole seconds because the store expires keys at second
// granularity.
const defaultHoldTTLSeconds = 60

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:     must("APP_ENV"),
		Port:    must("APP_PORT"),
		HoldTTL: holdTTL(),
	}
}

// holdTTL reads MAX_EVENT_SEAT_HOLD_TIME_IN_S, a positive integer number
// of seconds.  Unset falls back to the default; a non-positive or
// unparsable value is a configuration error and halts startup.
func holdTTL() time.Duration {
	v, ok := os.LookupEnv("MAX_EVENT_SEAT_HOLD_TIME_IN_S")
	if !ok || v == "" {
		return defaultHoldTTLSeconds * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid MAX_EVENT_SEAT_HOLD_TIME_IN_S: %q", v)
	}
	return time.Duration(n) * time.Second
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
