package indexbuild

import (
	"os"
	"path/filepath"
	"strings"
)

// Config enumerates the core's configuration surface.
type Config struct {
	// IndexFolderPath is the directory for all build outputs.
	IndexFolderPath string
	// TempFileCap is the run-flush byte threshold
	// (INVERTED_INDEX_TEMP_FILE_CAP).
	TempFileCap int
	// FinalFileCap is the primary-partition and secondary-index byte cap
	// (FINAL_INDEX_FILE_CAP).
	FinalFileCap int
	// MaxWordCap is the maximum accepted token length (MAX_WORD_CAP).
	MaxWordCap int
}

// DefaultConfig mirrors the constants the reference implementation's
// wikiIndexer.py hard-codes.
func DefaultConfig(indexFolderPath string) Config {
	return Config{
		IndexFolderPath: indexFolderPath,
		TempFileCap:     100_000_000,
		FinalFileCap:    100_000_000,
		MaxWordCap:      30,
	}
}

// purgePrefixes are the filename prefixes owned exclusively by one build;
// they are removed before a new build starts.
var purgePrefixes = []string{"temp_index_", "index_", "secondary_index", "title_", "stats_"}

// PurgeOutputDir deletes all files in dir matching the build's owned
// prefixes, and creates dir if it does not yet exist.
func PurgeOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Path: dir, Op: "mkdir", Err: err}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &IOError{Path: dir, Op: "readdir", Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, prefix := range purgePrefixes {
			if strings.HasPrefix(name, prefix) {
				path := filepath.Join(dir, name)
				if err := os.Remove(path); err != nil {
					return &IOError{Path: path, Op: "remove", Err: err}
				}
				break
			}
		}
	}
	return nil
}
