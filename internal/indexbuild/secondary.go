package indexbuild

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SecondaryResult summarizes a completed secondary-index build.
type SecondaryResult struct {
	Entries   []SecondaryEntry
	FileCount int
}

// BuildSecondary is the secondary index builder (component E). It opens
// each primary partition in ascending index order, reads only the first
// line to extract that partition's first token, and writes the resulting
// (first_token, partition_index) pairs as one or more byte-capped
// secondary_index_<k>.txt files.
func BuildSecondary(partitionPaths []string, dir string, cap int) (*SecondaryResult, error) {
	entries := make([]SecondaryEntry, 0, len(partitionPaths))

	for k, path := range partitionPaths {
		firstToken, err := readFirstToken(path)
		if err != nil {
			return nil, err
		}
		if firstToken == "" {
			continue
		}
		entries = append(entries, SecondaryEntry{FirstToken: firstToken, PartitionIndex: k})
	}

	sw := newSecondaryWriter(dir, cap)
	for _, e := range entries {
		if err := sw.Write(e); err != nil {
			return nil, err
		}
	}
	if err := sw.Close(); err != nil {
		return nil, err
	}

	return &SecondaryResult{Entries: entries, FileCount: sw.index}, nil
}

// readFirstToken reads just the first line of path. It uses
// bufio.Reader.ReadString rather than bufio.Scanner because a FinalLine's
// postings can exceed bufio.MaxScanTokenSize for a common token.
func readFirstToken(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", &IOError{Path: path, Op: "read", Err: err}
		}
		if line == "" {
			return "", nil
		}
	}
	fl, err := parseFinalLine(strings.TrimSuffix(line, "\n"))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = path
		}
		return "", err
	}
	return fl.Token, nil
}

// secondaryWriter accumulates SecondaryEntries and flushes them to
// secondary_index_<k>.txt files bounded by the same byte cap as the
// primary partitions.
type secondaryWriter struct {
	dir     string
	cap     int
	index   int
	pending []byte
}

func newSecondaryWriter(dir string, cap int) *secondaryWriter {
	return &secondaryWriter{dir: dir, cap: cap}
}

func (w *secondaryWriter) Write(e SecondaryEntry) error {
	w.pending = append(w.pending, e.Serialize()...)
	if len(w.pending) >= w.cap {
		return w.flush()
	}
	return nil
}

func (w *secondaryWriter) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	name := fmt.Sprintf("secondary_index_%d.txt", w.index)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, w.pending, 0o644); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	w.index++
	w.pending = w.pending[:0]
	return nil
}

func (w *secondaryWriter) Close() error {
	return w.flush()
}
