// Package env reads the few ambient variables (LOG_FORMAT, PORT) that live
// outside the SHOPWINDOW_-prefixed config structs.
package env

import "os"

// Get returns the value of the given environment variable or a fallback.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
