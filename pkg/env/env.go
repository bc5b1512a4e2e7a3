package env

import "os"

const prefix = "TILLWORKS_"

// Get resolves an environment variable, preferring the TILLWORKS_-prefixed
// name over the bare one, and falls back when neither is set.
func Get(key, fallback string) string {
	if val := os.Getenv(prefix + key); val != "" {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
