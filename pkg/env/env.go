// Package env reads single process variables for the few knobs resolved
// before the typed OPENSKY config is loaded, such as the log format.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
