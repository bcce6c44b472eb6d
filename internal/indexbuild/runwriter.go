package indexbuild

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// RunWriter is the run writer (component B). On flush, it opens a new run
// file named by a monotonically increasing run index, writes every RunLine
// in order, and closes it.
type RunWriter struct {
	dir       string
	nextIndex int
}

// NewRunWriter creates a run writer rooted at dir.
func NewRunWriter(dir string) *RunWriter {
	return &RunWriter{dir: dir}
}

// RunCount returns how many run files have been written so far.
func (w *RunWriter) RunCount() int {
	return w.nextIndex
}

// Flush writes lines (already sorted by the accumulator) to a new run file
// and returns its path. Failure to open or write is fatal to the build.
func (w *RunWriter) Flush(lines []RunLine) (path string, err error) {
	name := fmt.Sprintf("temp_index_%d.txt", w.nextIndex)
	path = filepath.Join(w.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", &IOError{Path: path, Op: "create", Err: err}
	}

	bw := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := bw.WriteString(line.Serialize()); err != nil {
			f.Close()
			return "", &IOError{Path: path, Op: "write", Err: err}
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", &IOError{Path: path, Op: "flush", Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &IOError{Path: path, Op: "close", Err: err}
	}

	w.nextIndex++
	return path, nil
}
