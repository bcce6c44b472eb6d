package indexbuild

import (
	"os"
	"path/filepath"
	"time"
)

// Statistics is the statistics sink: an explicit record returned by
// Facade.Finish, rather than ambient process-wide state.
type Statistics struct {
	TotalDocs               int
	TotalTokensEncountered  int
	TotalTokensIndexed      int
	UniqueTokens            int
	RunCount                int
	PrimaryPartitionCount   int
	SecondaryPartitionCount int

	IngestDuration    time.Duration
	MergeDuration     time.Duration
	SecondaryDuration time.Duration

	TotalBytesOnDisk int64
}

// DiskUsage sums the size of every index/title/secondary file under dir.
func DiskUsage(dir string) (int64, error) {
	var total int64
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, &IOError{Path: dir, Op: "readdir", Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matches := false
		for _, prefix := range purgePrefixes {
			if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
				matches = true
				break
			}
		}
		if !matches {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return 0, &IOError{Path: filepath.Join(dir, name), Op: "stat", Err: err}
		}
		total += info.Size()
	}
	return total, nil
}
