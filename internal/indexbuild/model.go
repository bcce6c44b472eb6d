// Package indexbuild implements the out-of-core sort-merge inverted-index
// pipeline: accumulate postings in memory, flush sorted runs to disk, then
// k-way merge the runs into a partitioned final index with an IDF-weighted
// posting list per token, plus a sparse secondary index over the partitions.
package indexbuild

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldTag identifies one of the six fixed document fields a token can
// appear in. The zero value is FieldTitle.
type FieldTag int

const (
	FieldTitle FieldTag = iota
	FieldInfobox
	FieldBody
	FieldCategory
	FieldLink
	FieldReference
	numFields
)

// fieldOrder is the fixed serialization order for posting-entry tags.
var fieldOrder = [numFields]FieldTag{
	FieldTitle, FieldInfobox, FieldBody, FieldCategory, FieldLink, FieldReference,
}

// fieldCodes assigns a distinct single-character code per field. The source
// implementation this spec is drawn from emitted 't' for every field,
// collapsing the field distinction; this is a defect and is fixed here.
var fieldCodes = [numFields]byte{'t', 'i', 'b', 'c', 'l', 'r'}

var fieldNames = [numFields]string{
	"title", "infobox", "body", "category", "link", "reference",
}

func (f FieldTag) String() string {
	if f < 0 || int(f) >= int(numFields) {
		return "unknown"
	}
	return fieldNames[f]
}

// Code returns the single-character tag used in serialized postings.
func (f FieldTag) Code() byte {
	return fieldCodes[f]
}

// FieldCounts holds a per-field occurrence count for one (token, document)
// pair, indexed by FieldTag.
type FieldCounts [numFields]int

// Total sums the per-field counts.
func (fc FieldCounts) Total() int {
	total := 0
	for _, c := range fc {
		total += c
	}
	return total
}

// DocFields is the six-tuple of already-tokenized, pre-normalized field
// streams the ingestion façade receives for one document. Order within a
// stream does not matter to the indexer; only per-token occurrence counts
// do.
type DocFields struct {
	Title     []string
	Infobox   []string
	Body      []string
	Category  []string
	Link      []string
	Reference []string
}

// streams returns the six token streams in fixed field order.
func (d DocFields) streams() [numFields][]string {
	return [numFields][]string{d.Title, d.Infobox, d.Body, d.Category, d.Link, d.Reference}
}

// FormatPostingEntry serializes one document's contribution to a token's
// posting list: "<docID> <tag><count>...", omitting fields with a zero
// count, tags emitted in fixed field order.
func FormatPostingEntry(docID int, counts FieldCounts) string {
	var b strings.Builder
	b.Grow(16)
	b.WriteString(strconv.Itoa(docID))
	b.WriteByte(' ')
	for _, tag := range fieldOrder {
		c := counts[tag]
		if c <= 0 {
			continue
		}
		b.WriteByte(tag.Code())
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// RunLine is one token's record within a single on-disk run file.
type RunLine struct {
	Token      string
	DocCount   int
	TotalCount int
	Postings   []string
}

// Serialize renders a RunLine as "token=doc_count=total_count=p1|p2|...\n".
func (r RunLine) Serialize() string {
	var b strings.Builder
	b.WriteString(r.Token)
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(r.DocCount))
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(r.TotalCount))
	b.WriteByte('=')
	b.WriteString(strings.Join(r.Postings, "|"))
	b.WriteByte('\n')
	return b.String()
}

// parseRunLine parses one line of a run file, rejecting malformed input per
// the merger's FormatError failure semantics.
func parseRunLine(line string) (RunLine, error) {
	parts := strings.SplitN(line, "=", 4)
	if len(parts) != 4 {
		return RunLine{}, &FormatError{Line: line, Reason: "expected 4 '='-separated fields"}
	}
	docCount, err := strconv.Atoi(parts[1])
	if err != nil {
		return RunLine{}, &FormatError{Line: line, Reason: "doc_count is not an integer"}
	}
	totalCount, err := strconv.Atoi(parts[2])
	if err != nil {
		return RunLine{}, &FormatError{Line: line, Reason: "total_count is not an integer"}
	}
	var postings []string
	if parts[3] != "" {
		postings = strings.Split(parts[3], "|")
	}
	return RunLine{Token: parts[0], DocCount: docCount, TotalCount: totalCount, Postings: postings}, nil
}

// FinalLine is one token's record within a final primary-partition file.
type FinalLine struct {
	Token      string
	IDF        float64
	DocCount   int
	TotalCount int
	Postings   []string
}

// Serialize renders a FinalLine as
// "token=idf=doc_count=total_count=p1|p2|...\n".
func (fl FinalLine) Serialize() string {
	var b strings.Builder
	b.WriteString(fl.Token)
	b.WriteByte('=')
	b.WriteString(strconv.FormatFloat(fl.IDF, 'g', -1, 64))
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(fl.DocCount))
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(fl.TotalCount))
	b.WriteByte('=')
	b.WriteString(strings.Join(fl.Postings, "|"))
	b.WriteByte('\n')
	return b.String()
}

// parseFinalLine parses one line of a primary-partition file.
func parseFinalLine(line string) (FinalLine, error) {
	parts := strings.SplitN(line, "=", 5)
	if len(parts) != 5 {
		return FinalLine{}, &FormatError{Line: line, Reason: "expected 5 '='-separated fields"}
	}
	idf, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return FinalLine{}, &FormatError{Line: line, Reason: "idf is not a float"}
	}
	docCount, err := strconv.Atoi(parts[2])
	if err != nil {
		return FinalLine{}, &FormatError{Line: line, Reason: "doc_count is not an integer"}
	}
	totalCount, err := strconv.Atoi(parts[3])
	if err != nil {
		return FinalLine{}, &FormatError{Line: line, Reason: "total_count is not an integer"}
	}
	var postings []string
	if parts[4] != "" {
		postings = strings.Split(parts[4], "|")
	}
	return FinalLine{
		Token: parts[0], IDF: idf, DocCount: docCount, TotalCount: totalCount, Postings: postings,
	}, nil
}

// SecondaryEntry maps the first token of one primary partition to that
// partition's index.
type SecondaryEntry struct {
	FirstToken     string
	PartitionIndex int
}

// Serialize renders a SecondaryEntry as "token=partition_index\n".
func (s SecondaryEntry) Serialize() string {
	return fmt.Sprintf("%s=%d\n", s.FirstToken, s.PartitionIndex)
}

func parseSecondaryEntry(line string) (SecondaryEntry, error) {
	idx := strings.LastIndexByte(line, '=')
	if idx < 0 {
		return SecondaryEntry{}, &FormatError{Line: line, Reason: "missing '=' separator"}
	}
	partitionIndex, err := strconv.Atoi(line[idx+1:])
	if err != nil {
		return SecondaryEntry{}, &FormatError{Line: line, Reason: "partition_index is not an integer"}
	}
	return SecondaryEntry{FirstToken: line[:idx], PartitionIndex: partitionIndex}, nil
}

// ParseFinalLine exposes parseFinalLine to other packages (query-time lookup
// reads the same on-disk format the merger writes).
func ParseFinalLine(line string) (FinalLine, error) { return parseFinalLine(line) }

// ParseSecondaryEntry exposes parseSecondaryEntry to other packages.
func ParseSecondaryEntry(line string) (SecondaryEntry, error) { return parseSecondaryEntry(line) }
