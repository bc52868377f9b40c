package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local from the working directory and from
// dir. Existing process environment variables are never overridden, so the
// first file defining a key wins.
func loadEnvFiles(dir string) []string {
	candidates := []string{".env", ".env.local"}
	if dir != "" && dir != "." {
		candidates = append(candidates, filepath.Join(dir, ".env"), filepath.Join(dir, ".env.local"))
	}
	var loaded []string
	seen := map[string]bool{}
	for _, p := range candidates {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			slog.Warn("Failed to load env file", "path", abs, "error", err)
			continue
		}
		loaded = append(loaded, abs)
	}
	if len(loaded) > 0 {
		slog.Debug("Loaded environment files", "files", loaded)
	}
	return loaded
}
