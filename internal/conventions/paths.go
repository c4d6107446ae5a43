package conventions

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultDataDir is the default tasktrack data directory name (relative to home).
	DefaultDataDir = ".tasktrack"

	// Store files.

	// JSONStoreFile is the filename for the JSON task store.
	JSONStoreFile = "tasks.json"
	// YAMLStoreFile is the filename for the YAML task store.
	YAMLStoreFile = "tasks.yaml"
	// SQLiteStoreFile is the filename for the SQLite task store.
	SQLiteStoreFile = "tasks.db"

	// Store kinds.

	StoreJSON   = "json"
	StoreYAML   = "yaml"
	StoreSQLite = "sqlite"
)

// StoreKinds are the supported store kinds.
var StoreKinds = []string{StoreJSON, StoreYAML, StoreSQLite}

// StoreFile returns the default filename for a store kind.
func StoreFile(kind string) (string, error) {
	switch kind {
	case StoreJSON:
		return JSONStoreFile, nil
	case StoreYAML:
		return YAMLStoreFile, nil
	case StoreSQLite:
		return SQLiteStoreFile, nil
	}
	return "", fmt.Errorf("unknown store kind %q", kind)
}

// StorePath returns the default store path for a store kind inside the data dir.
func StorePath(dataDir, kind string) (string, error) {
	f, err := StoreFile(kind)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, f), nil
}

// ExportFileName returns the default month report filename, e.g. todo_export_2025_03.html.
func ExportFileName(year, month int) string {
	return fmt.Sprintf("todo_export_%04d_%02d.html", year, month)
}
