// Package lookup implements the query-time read path property 7 of the
// index describes: load the sparse secondary index into memory, binary
// search it for the partition that could hold a token, then scan only that
// partition's final-index file for the token's posting list.
package lookup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/devancy/wikidex/internal/indexbuild"
)

// forEachLine invokes fn with each newline-terminated line read from r
// (trailing newline stripped), stopping at the first error fn returns. It
// reads with bufio.Reader.ReadString rather than bufio.Scanner: secondary
// and final-index lines carry a token's full posting list and can exceed
// bufio.MaxScanTokenSize for a common token. path is used only to label a
// genuine read failure as an IOError; errors returned by fn pass through
// unwrapped, since parsing failures already carry their own FormatError.
func forEachLine(r io.Reader, path string, fn func(line string) error) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return &indexbuild.IOError{Path: path, Op: "read", Err: err}
		}
		if line != "" {
			if ferr := fn(strings.TrimSuffix(line, "\n")); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// Index is an in-memory handle onto a built index directory. It holds only
// the secondary index (a handful of bytes per partition) in memory; primary
// partitions are read from disk on demand.
type Index struct {
	dir     string
	entries []indexbuild.SecondaryEntry // sorted ascending by FirstToken
}

// Open loads every secondary_index_<k>.txt file under dir and returns a
// queryable Index. The secondary index may be arbitrarily large in
// principle, but by construction it holds at most one entry per primary
// partition, so it is expected to fit comfortably in memory.
func Open(dir string) (*Index, error) {
	var entries []indexbuild.SecondaryEntry
	for k := 0; ; k++ {
		path := filepath.Join(dir, "secondary_index_"+strconv.Itoa(k)+".txt")
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return nil, &indexbuild.IOError{Path: path, Op: "open", Err: err}
		}
		readErr := forEachLine(f, path, func(line string) error {
			entry, err := indexbuild.ParseSecondaryEntry(line)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
		f.Close()
		if readErr != nil {
			return nil, readErr
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].FirstToken < entries[j].FirstToken })
	return &Index{dir: dir, entries: entries}, nil
}

// ErrNotFound indicates a token has no entry in the index.
var ErrNotFound = fmt.Errorf("lookup: token not found")

// Lookup resolves a single token to its FinalLine posting record. It
// binary-searches the in-memory secondary index for the partition whose
// first_token is the greatest one not exceeding token, then linearly scans
// that one partition file.
func (idx *Index) Lookup(token string) (indexbuild.FinalLine, error) {
	if len(idx.entries) == 0 {
		return indexbuild.FinalLine{}, ErrNotFound
	}

	partition := idx.partitionFor(token)
	path := filepath.Join(idx.dir, "index_"+strconv.Itoa(partition)+".txt")
	f, err := os.Open(path)
	if err != nil {
		return indexbuild.FinalLine{}, &indexbuild.IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	var (
		found   indexbuild.FinalLine
		foundOK bool
	)
	errStop := fmt.Errorf("lookup: stop scan")
	readErr := forEachLine(f, path, func(line string) error {
		fl, err := indexbuild.ParseFinalLine(line)
		if err != nil {
			return err
		}
		if fl.Token == token {
			found, foundOK = fl, true
			return errStop
		}
		if fl.Token > token {
			return errStop // partitions are sorted; token does not exist
		}
		return nil
	})
	if readErr != nil && readErr != errStop {
		return indexbuild.FinalLine{}, readErr
	}
	if foundOK {
		return found, nil
	}
	return indexbuild.FinalLine{}, ErrNotFound
}

// partitionFor returns the greatest first_token <= token's partition index,
// or the very first partition if token precedes every first_token.
func (idx *Index) partitionFor(token string) int {
	i := sort.Search(len(idx.entries), func(i int) bool { return idx.entries[i].FirstToken > token })
	if i == 0 {
		return idx.entries[0].PartitionIndex
	}
	return idx.entries[i-1].PartitionIndex
}

// PartitionCount reports how many secondary-index entries (and therefore
// non-empty primary partitions) were loaded.
func (idx *Index) PartitionCount() int {
	return len(idx.entries)
}
