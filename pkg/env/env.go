package env

import "os"

// Get reads an environment variable outside the envconfig-managed tree,
// falling back when unset or empty. The logger uses this before config
// loading has run.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
