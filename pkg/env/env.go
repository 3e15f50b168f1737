// Package env reads raw process environment variables. Structured
// configuration lives in pkg/config; this is for the few knobs read before
// config is loaded.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
