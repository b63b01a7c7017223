// Package store is the local persistence adapter: a SQLite snapshot of the
// full collection, plus a JSON file adapter for export/import and
// file-backed storage. Persistence is last-writer-wins; the in-memory
// collection is authoritative and a failed save never rolls it back.
package store

import (
	"os"
	"path/filepath"
)

const (
	sqliteFileName = "reminders.sqlite"
	dirName        = ".remind"
)

// Store persists collections under Dir.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .remind directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store directory: the nearest .remind above the
// working directory, or ~/.remind.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}
