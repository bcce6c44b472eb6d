package indexbuild

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// runHead is one entry in the merger's min-heap: the current token of run i
// and the run's index. Ties are broken by ascending run index so the merge
// order is deterministic regardless of run file arrival order.
type runHead struct {
	token string
	run   int
}

type runHeap []runHead

func (h runHeap) Len() int { return len(h) }
func (h runHeap) Less(i, j int) bool {
	if h[i].token != h[j].token {
		return h[i].token < h[j].token
	}
	return h[i].run < h[j].run
}
func (h runHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *runHeap) Push(x any)   { *h = append(*h, x.(runHead)) }
func (h *runHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// runReader streams one run file's RunLines, one buffered line at a time.
// It reads with bufio.Reader.ReadString rather than bufio.Scanner: a single
// RunLine carries every posting for a token accumulated within one flush
// window, so its length is bounded only by TempFileCap, not by any
// per-line ceiling a Scanner would impose.
type runReader struct {
	path    string
	f       *os.File
	reader  *bufio.Reader
	offset  int64 // byte offset of the next unread line
	current RunLine
}

func openRun(path string) (*runReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "open", Err: err}
	}
	return &runReader{path: path, f: f, reader: bufio.NewReader(f)}, nil
}

// advance reads the next RunLine, reporting whether one was available.
// On exhaustion it closes the underlying file.
func (r *runReader) advance() (bool, error) {
	lineStart := r.offset
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			r.f.Close()
			return false, &IOError{Path: r.path, Op: "read", Err: err}
		}
		if line == "" {
			r.f.Close()
			return false, nil
		}
		// Last line in the file has no trailing newline; still parse it.
	}
	r.offset += int64(len(line))
	rl, err := parseRunLine(strings.TrimSuffix(line, "\n"))
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			fe.Path = r.path
			fe.Offset = lineStart
		}
		return false, err
	}
	r.current = rl
	return true, nil
}

// MergeResult summarizes a completed k-way merge.
type MergeResult struct {
	UniqueTokens       int
	TotalTokensIndexed int
	PartitionPaths     []string
}

// Merge performs the k-way merge (component D): it streams all run files in
// runPaths, combining RunLines that share a token, computing each token's
// IDF against the finalized corpus size n, and writing FinalLines to
// byte-capped partition files under dir. The merger never deletes run
// files; that is the ingestion façade's responsibility once the merge (and
// any downstream secondary-index build) has succeeded.
func Merge(runPaths []string, n int, finalFileCap int, dir string) (*MergeResult, error) {
	readers := make(map[int]*runReader, len(runPaths))
	h := &runHeap{}
	heap.Init(h)

	for i, path := range runPaths {
		r, err := openRun(path)
		if err != nil {
			return nil, err
		}
		ok, err := r.advance()
		if err != nil {
			return nil, err
		}
		if ok {
			readers[i] = r
			heap.Push(h, runHead{token: r.current.Token, run: i})
		}
	}

	pw := newPartitionWriter(dir, finalFileCap)

	var (
		curToken      string
		curDocCount   int
		curTotalCount int
		curPostings   []string
		haveCurrent   bool
		uniqueTokens  int
		totalIndexed  int
	)

	emit := func() error {
		if !haveCurrent {
			return nil
		}
		if curDocCount == 0 {
			return &ArithmeticError{Token: curToken}
		}
		idf := math.Log10(float64(n) / float64(curDocCount))
		err := pw.Write(FinalLine{
			Token:      curToken,
			IDF:        idf,
			DocCount:   curDocCount,
			TotalCount: curTotalCount,
			Postings:   curPostings,
		})
		if err != nil {
			return err
		}
		uniqueTokens++
		totalIndexed += curTotalCount
		return nil
	}

	for h.Len() > 0 {
		top := heap.Pop(h).(runHead)
		r := readers[top.run]
		tb := r.current

		if haveCurrent && tb.Token == curToken {
			curDocCount += tb.DocCount
			curTotalCount += tb.TotalCount
			curPostings = append(curPostings, tb.Postings...)
		} else {
			if err := emit(); err != nil {
				return nil, err
			}
			curToken = tb.Token
			curDocCount = tb.DocCount
			curTotalCount = tb.TotalCount
			curPostings = append([]string(nil), tb.Postings...)
			haveCurrent = true
		}

		ok, err := r.advance()
		if err != nil {
			return nil, err
		}
		if ok {
			heap.Push(h, runHead{token: r.current.Token, run: top.run})
		} else {
			delete(readers, top.run)
		}
	}

	if err := emit(); err != nil {
		return nil, err
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}

	return &MergeResult{
		UniqueTokens:       uniqueTokens,
		TotalTokensIndexed: totalIndexed,
		PartitionPaths:     pw.paths,
	}, nil
}

// partitionWriter accumulates FinalLines into the current primary-partition
// buffer and flushes it to disk once the buffer reaches finalFileCap bytes.
type partitionWriter struct {
	dir     string
	cap     int
	index   int
	pending []byte
	paths   []string
}

func newPartitionWriter(dir string, cap int) *partitionWriter {
	return &partitionWriter{dir: dir, cap: cap}
}

func (w *partitionWriter) Write(line FinalLine) error {
	w.pending = append(w.pending, line.Serialize()...)
	if len(w.pending) >= w.cap {
		return w.flush()
	}
	return nil
}

func (w *partitionWriter) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	name := fmt.Sprintf("index_%d.txt", w.index)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, w.pending, 0o644); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	w.paths = append(w.paths, path)
	w.index++
	w.pending = w.pending[:0]
	return nil
}

func (w *partitionWriter) Close() error {
	return w.flush()
}
