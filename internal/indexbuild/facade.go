package indexbuild

import (
	"os"
	"time"
)

// Facade is the ingestion façade (component C): the public entry point the
// external tokenizer drives. It owns the accumulator and run writer,
// enforces strictly increasing docIDs, and triggers a flush at the byte
// threshold or on Finish.
type Facade struct {
	cfg Config

	acc    *Accumulator
	writer *RunWriter

	seenAny  bool
	lastDoc  int
	runPaths []string

	tokensEncountered int
	ingestStart       time.Time
}

// NewFacade creates an ingestion façade that will write runs and, on
// Finish, the final index under cfg.IndexFolderPath.
func NewFacade(cfg Config) *Facade {
	return &Facade{
		cfg:         cfg,
		acc:         NewAccumulator(cfg.MaxWordCap),
		writer:      NewRunWriter(cfg.IndexFolderPath),
		ingestStart: time.Now(),
	}
}

// AddDocument folds one document into the accumulator, flushing a run if
// the byte threshold is reached. docID must equal the previous call's
// docID + 1, or 0 on the first call.
func (f *Facade) AddDocument(docID int, fields DocFields) error {
	if !f.seenAny {
		f.ingestStart = time.Now()
	}
	expected := 0
	if f.seenAny {
		expected = f.lastDoc + 1
	}
	if docID != expected {
		return &OrderingError{Expected: expected, Got: docID}
	}
	f.seenAny = true
	f.lastDoc = docID

	tokens, err := f.acc.Add(docID, fields)
	if err != nil {
		return err
	}
	f.tokensEncountered += tokens

	if f.acc.SizeBytes() >= f.cfg.TempFileCap {
		if err := f.flush(); err != nil {
			return err
		}
	}
	return nil
}

// flush drains the accumulator and writes a run file, recording its path.
// An empty drain still writes an (empty) run file when called from
// Finish, mirroring the reference implementation's unconditional final
// dump; the merger tolerates and skips empty runs.
func (f *Facade) flush() error {
	lines := f.acc.DrainSorted()
	path, err := f.writer.Flush(lines)
	if err != nil {
		return err
	}
	f.runPaths = append(f.runPaths, path)
	return nil
}

// Finish forces a final flush, then runs the k-way merger (component D)
// and the secondary index builder (component E), deletes the run files on
// success, and returns the completed build's Statistics.
func (f *Facade) Finish() (*Statistics, error) {
	if err := f.flush(); err != nil {
		return nil, err
	}
	ingestDuration := time.Since(f.ingestStart)

	n := 0
	if f.seenAny {
		n = f.lastDoc + 1
	}

	mergeStart := time.Now()
	mergeResult, err := Merge(f.runPaths, n, f.cfg.FinalFileCap, f.cfg.IndexFolderPath)
	if err != nil {
		return nil, err
	}
	mergeDuration := time.Since(mergeStart)

	secondaryStart := time.Now()
	secondaryResult, err := BuildSecondary(mergeResult.PartitionPaths, f.cfg.IndexFolderPath, f.cfg.FinalFileCap)
	if err != nil {
		return nil, err
	}
	secondaryDuration := time.Since(secondaryStart)

	for _, path := range f.runPaths {
		if err := os.Remove(path); err != nil {
			return nil, &IOError{Path: path, Op: "remove", Err: err}
		}
	}

	diskUsage, err := DiskUsage(f.cfg.IndexFolderPath)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		TotalDocs:               n,
		TotalTokensEncountered:  f.tokensEncountered,
		TotalTokensIndexed:      mergeResult.TotalTokensIndexed,
		UniqueTokens:            mergeResult.UniqueTokens,
		RunCount:                f.writer.RunCount(),
		PrimaryPartitionCount:   len(mergeResult.PartitionPaths),
		SecondaryPartitionCount: secondaryResult.FileCount,
		IngestDuration:          ingestDuration,
		MergeDuration:           mergeDuration,
		SecondaryDuration:       secondaryDuration,
		TotalBytesOnDisk:        diskUsage,
	}, nil
}

// Stats returns the observable ingestion-phase statistics available before
// Finish is called: total docs seen and run count.
func (f *Facade) Stats() (totalDocs, runCount int) {
	totalDocs = 0
	if f.seenAny {
		totalDocs = f.lastDoc + 1
	}
	return totalDocs, f.writer.RunCount()
}
