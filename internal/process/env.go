package process

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles reads dotenv files in order and returns the merged values and
// the files that were actually read. Missing files are skipped. When a key
// appears in more than one file the first file wins.
func LoadEnvFiles(paths []string) (map[string]string, []string, error) {
	values := make(map[string]string)
	loaded := make([]string, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, loaded, fmt.Errorf("stat env file %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		fileValues, err := godotenv.Read(path)
		if err != nil {
			return nil, loaded, fmt.Errorf("parse env file %s: %w", path, err)
		}
		for key, value := range fileValues {
			if _, seen := values[key]; !seen {
				values[key] = value
			}
		}
		loaded = append(loaded, path)
	}
	return values, loaded, nil
}

// MergeEnv layers file values under the parent environment: a key already
// set in parent is never overridden.
func MergeEnv(parent []string, fileValues map[string]string) []string {
	env := make([]string, 0, len(parent)+len(fileValues))
	present := make(map[string]struct{}, len(parent))
	for _, entry := range parent {
		key, _, _ := strings.Cut(entry, "=")
		present[key] = struct{}{}
		env = append(env, entry)
	}
	keys := make([]string, 0, len(fileValues))
	for key := range fileValues {
		if _, ok := present[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		env = append(env, key+"="+fileValues[key])
	}
	return env
}

// MissingKeys returns the required keys that are absent or empty in env.
func MissingKeys(env []string, required []string) []string {
	values := make(map[string]string, len(env))
	for _, entry := range env {
		key, value, _ := strings.Cut(entry, "=")
		values[key] = value
	}
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(values[key]) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}
