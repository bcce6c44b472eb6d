package indexbuild

import "sort"

// TermBlock is the in-memory, per-run state for one token within the
// current accumulator window.
type TermBlock struct {
	DocCount   int
	TotalCount int
	Postings   []string
}

// Accumulator is the posting accumulator (component A): a mapping from
// token to TermBlock, plus a running byte counter equal to the sum of
// serialized PostingEntry lengths added since the last flush.
type Accumulator struct {
	terms      map[string]*TermBlock
	bytes      int
	maxWordCap int
}

// NewAccumulator creates an empty accumulator that rejects tokens longer
// than maxWordCap.
func NewAccumulator(maxWordCap int) *Accumulator {
	return &Accumulator{
		terms:      make(map[string]*TermBlock),
		maxWordCap: maxWordCap,
	}
}

// Add folds one document's six field-tokenized streams into the
// accumulator. Documents must be presented in strictly increasing docID
// order by the caller (enforced by the ingestion façade, not here).
// Returns the number of raw tokens encountered across all six streams,
// before deduplication, for the statistics sink.
func (a *Accumulator) Add(docID int, fields DocFields) (tokensEncountered int, err error) {
	combined := make(map[string]*FieldCounts)
	var local map[string]int

	for _, tag := range fieldOrder {
		stream := fields.streams()[tag]
		tokensEncountered += len(stream)
		if local == nil {
			local = make(map[string]int, len(stream))
		} else {
			clear(local)
		}
		for _, tok := range stream {
			if tok == "" {
				continue
			}
			if len(tok) > a.maxWordCap {
				return tokensEncountered, &FormatError{Reason: "token exceeds MAX_WORD_CAP", Line: tok}
			}
			local[tok]++
		}
		for tok, c := range local {
			fc := combined[tok]
			if fc == nil {
				fc = &FieldCounts{}
				combined[tok] = fc
			}
			fc[tag] = c
		}
	}

	for tok, fc := range combined {
		entry := FormatPostingEntry(docID, *fc)
		tb := a.terms[tok]
		if tb == nil {
			tb = &TermBlock{}
			a.terms[tok] = tb
		}
		tb.DocCount++
		tb.TotalCount += fc.Total()
		tb.Postings = append(tb.Postings, entry)
		a.bytes += len(entry)
	}

	return tokensEncountered, nil
}

// SizeBytes returns the current cumulative posting bytes since the last
// flush.
func (a *Accumulator) SizeBytes() int {
	return a.bytes
}

// DrainSorted yields every accumulated token's RunLine in ascending
// byte-lexicographic token order, then empties the accumulator. Go string
// comparison (and sort.Strings) is already byte-order over the UTF-8
// encoding, giving the required ordering for free.
func (a *Accumulator) DrainSorted() []RunLine {
	tokens := make([]string, 0, len(a.terms))
	for tok := range a.terms {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	lines := make([]RunLine, 0, len(tokens))
	for _, tok := range tokens {
		tb := a.terms[tok]
		lines = append(lines, RunLine{
			Token:      tok,
			DocCount:   tb.DocCount,
			TotalCount: tb.TotalCount,
			Postings:   tb.Postings,
		})
	}

	a.terms = make(map[string]*TermBlock)
	a.bytes = 0
	return lines
}
