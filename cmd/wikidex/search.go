package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devancy/wikidex/internal/config"
	"github.com/devancy/wikidex/internal/ingest"
	"github.com/devancy/wikidex/internal/lookup"
	"github.com/devancy/wikidex/internal/titletable"
)

type searchFlags struct {
	indexDir   string
	maxResults int
}

func newSearchCmd(gf *globalFlags) *cobra.Command {
	var sf searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Interactively query a built index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configFile, gf.envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("index-dir") {
				cfg.IndexDir = sf.indexDir
			}
			return runSearch(cfg, sf.maxResults)
		},
	}

	cmd.Flags().StringVar(&sf.indexDir, "index-dir", "", "index directory to query (overrides config)")
	cmd.Flags().IntVar(&sf.maxResults, "n", 5, "maximum number of results to display")
	return cmd
}

// scoredDoc is one candidate result: a document ID and its accumulated
// TF-IDF score across every query token found in it.
type scoredDoc struct {
	docID int
	score float64
}

func runSearch(cfg config.AppConfig, maxResults int) error {
	idx, err := lookup.Open(cfg.IndexDir)
	if err != nil {
		return fmt.Errorf("opening index at %s: %w", cfg.IndexDir, err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".wikidex_search_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("Enter a search query (Ctrl+C or 'exit' to quit):")
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			return nil
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		displaySearchResults(cfg.IndexDir, idx, query, maxResults)
	}
}

func displaySearchResults(indexDir string, idx *lookup.Index, query string, maxResults int) {
	tokens := ingest.Tokenize(query)
	if len(tokens) == 0 {
		fmt.Println("no indexable terms in query")
		return
	}

	scores := make(map[int]float64)
	for _, token := range tokens {
		fl, err := idx.Lookup(token)
		if err != nil {
			continue
		}
		for _, posting := range fl.Postings {
			docID, count, ok := parsePostingDocID(posting)
			if !ok {
				continue
			}
			scores[docID] += fl.IDF * float64(count)
		}
	}

	if len(scores) == 0 {
		fmt.Println("no matches found")
		return
	}

	results := make([]scoredDoc, 0, len(scores))
	for docID, score := range scores {
		results = append(results, scoredDoc{docID: docID, score: score})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	bold := color.New(color.Bold)
	for i, r := range results {
		title, ok, err := titletable.Lookup(indexDir, r.docID)
		if err != nil || !ok {
			title = fmt.Sprintf("doc %d", r.docID)
		}
		bold.Printf("%d. %s\n", i+1, title)
		fmt.Printf("   score: %.4f\n", r.score)
	}
}

// parsePostingDocID extracts the docID and total field count from a
// serialized posting entry ("<docID> <tag><count>...").
func parsePostingDocID(posting string) (docID int, total int, ok bool) {
	parts := strings.SplitN(posting, " ", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	docID, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	digits := strings.Builder{}
	for _, r := range parts[1] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			n, _ := strconv.Atoi(digits.String())
			total += n
			digits.Reset()
		}
	}
	if digits.Len() > 0 {
		n, _ := strconv.Atoi(digits.String())
		total += n
	}
	return docID, total, true
}
