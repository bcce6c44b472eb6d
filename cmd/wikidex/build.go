package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/devancy/wikidex/internal/config"
	"github.com/devancy/wikidex/internal/indexbuild"
	"github.com/devancy/wikidex/internal/ingest"
	"github.com/devancy/wikidex/internal/statserver"
	"github.com/devancy/wikidex/internal/titletable"
)

type buildFlags struct {
	dumpPath     string
	indexDir     string
	statFilePath string
	maxWordCap   int
	tempFileCap  int
	finalFileCap int
	titleFileCap int
}

func newBuildCmd(gf *globalFlags) *cobra.Command {
	var bf buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the inverted index from a Wikipedia abstract dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configFile, gf.envFile)
			if err != nil {
				return err
			}
			applyBuildFlags(cmd, &cfg, bf)
			return runBuild(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&bf.dumpPath, "dump", "", "path to the wiki abstract dump (overrides config)")
	flags.StringVar(&bf.indexDir, "index-dir", "", "output directory for index files (overrides config)")
	flags.StringVar(&bf.statFilePath, "stat-file", "", "path to the human-readable stats file (overrides config)")
	flags.IntVar(&bf.maxWordCap, "max-word-cap", 0, "maximum token length in bytes")
	flags.IntVar(&bf.tempFileCap, "temp-file-cap", 0, "byte threshold for flushing a run file")
	flags.IntVar(&bf.finalFileCap, "final-file-cap", 0, "byte threshold for a final partition file")
	flags.IntVar(&bf.titleFileCap, "title-file-cap", 0, "byte threshold for a title-table file")
	return cmd
}

// applyBuildFlags overlays explicitly-set CLI flags onto cfg, the highest
// layer of the config precedence chain.
func applyBuildFlags(cmd *cobra.Command, cfg *config.AppConfig, bf buildFlags) {
	changed := cmd.Flags().Changed
	if changed("dump") {
		cfg.DumpPath = bf.dumpPath
	}
	if changed("index-dir") {
		cfg.IndexDir = bf.indexDir
		cfg.Index.IndexFolderPath = bf.indexDir
	}
	if changed("stat-file") {
		cfg.StatFilePath = bf.statFilePath
	}
	if changed("max-word-cap") {
		cfg.Index.MaxWordCap = bf.maxWordCap
	}
	if changed("temp-file-cap") {
		cfg.Index.TempFileCap = bf.tempFileCap
	}
	if changed("final-file-cap") {
		cfg.Index.FinalFileCap = bf.finalFileCap
	}
	if changed("title-file-cap") {
		cfg.TitleFileCap = bf.titleFileCap
	}
}

func runBuild(cfg config.AppConfig) error {
	if _, err := os.Stat(cfg.DumpPath); err != nil {
		return fmt.Errorf("dump file not found: %s", cfg.DumpPath)
	}

	if err := indexbuild.PurgeOutputDir(cfg.IndexDir); err != nil {
		return fmt.Errorf("preparing index directory: %w", err)
	}

	log.Info().Str("path", cfg.DumpPath).Msg("loading wiki dump")
	loadStart := time.Now()
	docs, err := ingest.LoadDump(cfg.DumpPath)
	if err != nil {
		return fmt.Errorf("loading dump: %w", err)
	}
	log.Info().Int("documents", len(docs)).Dur("elapsed", time.Since(loadStart)).Msg("dump loaded")

	classified := ingest.ClassifyAll(docs)

	facade := indexbuild.NewFacade(cfg.Index)
	titleWriter := titletable.NewWriter(cfg.IndexDir, cfg.TitleFileCap)

	bar := progressbar.Default(int64(len(classified)), "indexing")
	for _, doc := range classified {
		if err := facade.AddDocument(doc.DocID, doc.Fields); err != nil {
			return fmt.Errorf("indexing document %d: %w", doc.DocID, err)
		}
		if err := titleWriter.Add(titletable.Entry{DocID: doc.DocID, Title: doc.Title}); err != nil {
			return fmt.Errorf("writing title entry for document %d: %w", doc.DocID, err)
		}
		_ = bar.Add(1)
	}

	stats, err := facade.Finish()
	if err != nil {
		return fmt.Errorf("finishing build: %w", err)
	}
	titleFileCount, err := titleWriter.Close()
	if err != nil {
		return fmt.Errorf("closing title table: %w", err)
	}

	report := statserver.Report{
		RunID:          uuid.NewString(),
		BuiltAt:        time.Now().UTC(),
		TitleFileCount: titleFileCount,
		Statistics:     *stats,
	}
	if err := writeRunMeta(cfg.IndexDir, report); err != nil {
		return err
	}
	if err := writeStatFile(cfg.StatFilePath, report); err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Printf("build %s complete\n", report.RunID)
	fmt.Printf("  documents:         %d\n", report.TotalDocs)
	fmt.Printf("  unique tokens:     %d\n", report.UniqueTokens)
	fmt.Printf("  primary partitions: %d\n", report.PrimaryPartitionCount)
	fmt.Printf("  secondary partitions: %d\n", report.SecondaryPartitionCount)
	fmt.Printf("  disk usage:        %s\n", humanizeBytes(report.TotalBytesOnDisk))
	return nil
}

func writeRunMeta(indexDir string, report statserver.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling run metadata: %w", err)
	}
	path := filepath.Join(indexDir, "runmeta.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeStatFile(path string, report statserver.Report) error {
	lines := []string{
		fmt.Sprintf("Total Documents:\t\t\t%d", report.TotalDocs),
		fmt.Sprintf("Total Tokens Encountered:\t%d", report.TotalTokensEncountered),
		fmt.Sprintf("Total Tokens Indexed:\t\t%d", report.TotalTokensIndexed),
		fmt.Sprintf("Total Unique Tokens:\t\t%d", report.UniqueTokens),
		fmt.Sprintf("Title File Count:\t\t\t%d", report.TitleFileCount),
		fmt.Sprintf("Primary Index File Count:\t%d", report.PrimaryPartitionCount),
		fmt.Sprintf("Secondary Index File Count:\t%d", report.SecondaryPartitionCount),
		fmt.Sprintf("Index Size:\t\t\t\t\t%s", humanizeBytes(report.TotalBytesOnDisk)),
		fmt.Sprintf("Ingest Duration:\t\t\t%s", report.IngestDuration),
		fmt.Sprintf("Merge Duration:\t\t\t\t%s", report.MergeDuration),
		fmt.Sprintf("Secondary Index Duration:\t%s", report.SecondaryDuration),
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing stat file %s: %w", path, err)
	}
	return nil
}

func humanizeBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
