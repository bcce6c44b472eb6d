// Package titletable writes the docID -> title lookup the core index
// deliberately omits from its own format (title display is out of scope
// for the token index itself). It is a second, independent byte-capped
// sink alongside the primary and secondary index files.
package titletable

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/devancy/wikidex/internal/indexbuild"
)

// DefaultFileCap is the per-file byte cap used by the original title sink.
const DefaultFileCap = 20000

// Entry pairs one document's ID with its display title.
type Entry struct {
	DocID int
	Title string
}

// Serialize renders an Entry as "docID\ttitle\n".
func (e Entry) Serialize() string {
	return fmt.Sprintf("%d\t%s\n", e.DocID, e.Title)
}

func parseEntry(line string) (Entry, error) {
	idx := strings.IndexByte(line, '\t')
	if idx < 0 {
		return Entry{}, &indexbuild.FormatError{Line: line, Reason: "missing tab separator"}
	}
	docID, err := strconv.Atoi(line[:idx])
	if err != nil {
		return Entry{}, &indexbuild.FormatError{Line: line, Reason: "docID is not an integer"}
	}
	return Entry{DocID: docID, Title: line[idx+1:]}, nil
}

// Writer accumulates serialized entries in memory and flushes them to
// title_<k>.txt files once the pending buffer reaches fileCap bytes,
// following the same byte-capped partitioning scheme as the primary and
// secondary index writers.
type Writer struct {
	dir     string
	fileCap int
	index   int
	pending []byte
}

// NewWriter returns a Writer that partitions output under dir.
func NewWriter(dir string, fileCap int) *Writer {
	return &Writer{dir: dir, fileCap: fileCap}
}

// Add appends one entry, flushing a partition file once fileCap is reached.
func (w *Writer) Add(e Entry) error {
	w.pending = append(w.pending, e.Serialize()...)
	if len(w.pending) >= w.fileCap {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	path := filepath.Join(w.dir, "title_"+strconv.Itoa(w.index)+".txt")
	if err := os.WriteFile(path, w.pending, 0o644); err != nil {
		return &indexbuild.IOError{Path: path, Op: "write", Err: err}
	}
	w.index++
	w.pending = w.pending[:0]
	return nil
}

// Close flushes any remaining buffered entries and returns the number of
// title files written.
func (w *Writer) Close() (int, error) {
	if err := w.flush(); err != nil {
		return w.index, err
	}
	return w.index, nil
}

// Lookup resolves a docID to its title by scanning the title_<k>.txt files
// under dir in order. Returns false if the docID is not found.
func Lookup(dir string, docID int) (string, bool, error) {
	for k := 0; ; k++ {
		path := filepath.Join(dir, "title_"+strconv.Itoa(k)+".txt")
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, nil
			}
			return "", false, &indexbuild.IOError{Path: path, Op: "open", Err: err}
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			entry, err := parseEntry(scanner.Text())
			if err != nil {
				f.Close()
				return "", false, err
			}
			if entry.DocID == docID {
				f.Close()
				return entry.Title, true, nil
			}
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return "", false, &indexbuild.IOError{Path: path, Op: "scan", Err: err}
		}
	}
}
