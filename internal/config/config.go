package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once
// per process. It returns the file that was loaded, or "" if none was found.
// Variables already set in the environment win.
func LoadEnv() (string, error) {
	var loaded string
	var loadErr error
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				loadErr = err
				return
			}
			loaded = candidate
			return
		}
	})
	return loaded, loadErr
}
