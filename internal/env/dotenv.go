package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FileNames returns the dotenv files consulted for a mode, lowest precedence first.
func FileNames(mode Mode) []string {
	return []string{
		".env",
		".env.local",
		".env." + string(mode),
		".env." + string(mode) + ".local",
	}
}

// LoadFiles reads the dotenv files for mode from dir and merges them. Missing
// files are skipped. The process environment is not touched.
func LoadFiles(dir string, mode Mode) (Vars, error) {
	layers := make([]Vars, 0, 4)
	for _, name := range FileNames(mode) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		layers = append(layers, vars)
	}
	return Merge(layers...), nil
}
