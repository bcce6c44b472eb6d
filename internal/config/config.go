// Package config loads wikidex's settings through four layers, lowest to
// highest precedence: built-in defaults, a TOML config file, environment
// variables (optionally populated from a .env file), and finally CLI flags
// applied by the caller on top of the returned AppConfig.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/devancy/wikidex/internal/indexbuild"
	"github.com/devancy/wikidex/internal/titletable"
)

// AppConfig is the fully resolved application configuration: the
// indexbuild.Config the core pipeline needs, plus the ambient settings
// (dump location, server address, title table cap) surrounding it.
type AppConfig struct {
	DumpPath     string
	IndexDir     string
	StatFilePath string
	ServerAddr   string
	TitleFileCap int

	Index indexbuild.Config
}

// fileConfig is the shape of the optional TOML config file. Every field is
// a pointer so an absent key leaves the corresponding AppConfig field at
// its current (default or env-derived) value instead of zeroing it.
type fileConfig struct {
	DumpPath     *string `toml:"dump_path"`
	IndexDir     *string `toml:"index_dir"`
	StatFilePath *string `toml:"stat_file_path"`
	ServerAddr   *string `toml:"server_addr"`
	MaxWordCap   *int    `toml:"max_word_cap"`
	TempFileCap  *int    `toml:"temp_file_cap"`
	FinalFileCap *int    `toml:"final_file_cap"`
	TitleFileCap *int    `toml:"title_file_cap"`
}

// Default returns the built-in configuration: the same run parameters the
// reference indexer shipped with, plus ambient defaults for the dump path,
// output directory, and stats server.
func Default() AppConfig {
	indexDir := "indexFolder"
	return AppConfig{
		DumpPath:     "enwiki-latest-abstract1.xml.gz",
		IndexDir:     indexDir,
		StatFilePath: "fileStat.txt",
		ServerAddr:   ":8080",
		TitleFileCap: titletable.DefaultFileCap,
		Index:        indexbuild.DefaultConfig(indexDir),
	}
}

// Load resolves an AppConfig by layering a TOML file (if tomlPath is
// non-empty and exists) and environment variables over Default(). envFile,
// if non-empty, is loaded into the process environment first via godotenv;
// a missing envFile is not an error.
func Load(tomlPath, envFile string) (AppConfig, error) {
	cfg := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: load env file %q: %w", envFile, err)
		}
	}

	if tomlPath != "" {
		if err := applyTOMLFile(&cfg, tomlPath); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyTOMLFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *AppConfig) {
	if fc.DumpPath != nil {
		cfg.DumpPath = *fc.DumpPath
	}
	if fc.IndexDir != nil {
		cfg.IndexDir = *fc.IndexDir
		cfg.Index.IndexFolderPath = *fc.IndexDir
	}
	if fc.StatFilePath != nil {
		cfg.StatFilePath = *fc.StatFilePath
	}
	if fc.ServerAddr != nil {
		cfg.ServerAddr = *fc.ServerAddr
	}
	if fc.MaxWordCap != nil {
		cfg.Index.MaxWordCap = *fc.MaxWordCap
	}
	if fc.TempFileCap != nil {
		cfg.Index.TempFileCap = *fc.TempFileCap
	}
	if fc.FinalFileCap != nil {
		cfg.Index.FinalFileCap = *fc.FinalFileCap
	}
	if fc.TitleFileCap != nil {
		cfg.TitleFileCap = *fc.TitleFileCap
	}
}

// Environment variable names. WIKIDEX_INDEX_FOLDER/_TEMP_CAP/_FINAL_CAP/
// _MAX_WORD mirror the core index build parameters; the rest (dump path,
// stat file, server address) cover the ambient settings the core config
// doesn't own.
const (
	envDumpPath     = "WIKIDEX_DUMP_PATH"
	envIndexFolder  = "WIKIDEX_INDEX_FOLDER"
	envTempCap      = "WIKIDEX_TEMP_CAP"
	envFinalCap     = "WIKIDEX_FINAL_CAP"
	envMaxWord      = "WIKIDEX_MAX_WORD"
	envTitleCap     = "WIKIDEX_TITLE_CAP"
	envStatFilePath = "WIKIDEX_STAT_FILE"
	envServerAddr   = "WIKIDEX_SERVER_ADDR"
)

func applyEnv(cfg *AppConfig) {
	if v, ok := os.LookupEnv(envDumpPath); ok {
		cfg.DumpPath = v
	}
	if v, ok := os.LookupEnv(envIndexFolder); ok {
		cfg.IndexDir = v
		cfg.Index.IndexFolderPath = v
	}
	if v, ok := lookupEnvInt(envTempCap); ok {
		cfg.Index.TempFileCap = v
	}
	if v, ok := lookupEnvInt(envFinalCap); ok {
		cfg.Index.FinalFileCap = v
	}
	if v, ok := lookupEnvInt(envMaxWord); ok {
		cfg.Index.MaxWordCap = v
	}
	if v, ok := lookupEnvInt(envTitleCap); ok {
		cfg.TitleFileCap = v
	}
	if v, ok := os.LookupEnv(envStatFilePath); ok {
		cfg.StatFilePath = v
	}
	if v, ok := os.LookupEnv(envServerAddr); ok {
		cfg.ServerAddr = v
	}
}

func lookupEnvInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
