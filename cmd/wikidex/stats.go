package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rodaine/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devancy/wikidex/internal/config"
	"github.com/devancy/wikidex/internal/statserver"
)

type statsFlags struct {
	indexDir string
	serve    bool
	addr     string
}

func newStatsCmd(gf *globalFlags) *cobra.Command {
	var sf statsFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print or serve the statistics from the most recent build",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configFile, gf.envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("index-dir") {
				cfg.IndexDir = sf.indexDir
			}
			if !cmd.Flags().Changed("addr") {
				sf.addr = cfg.ServerAddr
			}
			return runStats(cfg, sf)
		},
	}

	cmd.Flags().StringVar(&sf.indexDir, "index-dir", "", "index directory to read run metadata from (overrides config)")
	cmd.Flags().BoolVar(&sf.serve, "serve", false, "serve statistics over HTTP instead of printing them")
	cmd.Flags().StringVar(&sf.addr, "addr", "", "HTTP listen address when --serve is set (overrides config)")
	return cmd
}

func runStats(cfg config.AppConfig, sf statsFlags) error {
	report, err := readRunMeta(cfg.IndexDir)
	if err != nil {
		return err
	}

	if sf.serve {
		log.Info().Str("addr", sf.addr).Msg("serving statistics")
		return statserver.New(report).Run(sf.addr)
	}

	printStatsTable(report)
	return nil
}

func readRunMeta(indexDir string) (statserver.Report, error) {
	path := filepath.Join(indexDir, "runmeta.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return statserver.Report{}, fmt.Errorf("reading %s (run `wikidex build` first): %w", path, err)
	}
	var report statserver.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return statserver.Report{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return report, nil
}

func printStatsTable(report statserver.Report) {
	tbl := table.New("Metric", "Value")
	tbl.AddRow("Run ID", report.RunID)
	tbl.AddRow("Built At", report.BuiltAt)
	tbl.AddRow("Total Documents", report.TotalDocs)
	tbl.AddRow("Total Tokens Encountered", report.TotalTokensEncountered)
	tbl.AddRow("Total Tokens Indexed", report.TotalTokensIndexed)
	tbl.AddRow("Unique Tokens", report.UniqueTokens)
	tbl.AddRow("Run Count", report.RunCount)
	tbl.AddRow("Primary Partitions", report.PrimaryPartitionCount)
	tbl.AddRow("Secondary Partitions", report.SecondaryPartitionCount)
	tbl.AddRow("Title Files", report.TitleFileCount)
	tbl.AddRow("Disk Usage (bytes)", report.TotalBytesOnDisk)
	tbl.AddRow("Ingest Duration", report.IngestDuration)
	tbl.AddRow("Merge Duration", report.MergeDuration)
	tbl.AddRow("Secondary Duration", report.SecondaryDuration)
	tbl.Print()
}
