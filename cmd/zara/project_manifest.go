package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"zara/internal/diagfmt"
	"zara/internal/trace"
)

const manifestName = "zara.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	// overrides holds flag values for every key set in the file.
	overrides []flagOverride
}

type projectConfig struct {
	Lexer   lexerConfig   `toml:"lexer"`
	Symbols symbolsConfig `toml:"symbols"`
	Output  outputConfig  `toml:"output"`
	Trace   traceConfig   `toml:"trace"`
}

type lexerConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	Cache          bool `toml:"cache"`
}

type symbolsConfig struct {
	Strict     bool `toml:"strict"`
	Scoped     bool `toml:"scoped"`
	WarnShadow bool `toml:"warn_shadow"`
}

type outputConfig struct {
	Format     string `toml:"format"`
	Color      string `toml:"color"`
	DiagFormat string `toml:"diag_format"`
	PathMode   string `toml:"path_mode"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// flagOverride maps one config key to a flag. An empty commands list means
// every command that has the flag.
type flagOverride struct {
	flag     string
	value    string
	commands []string
}

var (
	tokenizeFormats = []string{"pretty", "json", "msgpack"}
	symbolsFormats  = []string{"pretty", "json", "listing"}
)

func findZaraToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findZaraToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := loadManifestFile(manifestPath)
	return m, true, err
}

func loadManifestFile(path string) (*projectManifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg, overrides, err := loadProjectConfig(abs)
	if err != nil {
		return nil, err
	}
	return &projectManifest{
		Path:      abs,
		Root:      filepath.Dir(abs),
		Config:    cfg,
		overrides: overrides,
	}, nil
}

func loadProjectConfig(path string) (projectConfig, []flagOverride, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return projectConfig{}, nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	var overrides []flagOverride
	set := func(flag, value string, commands ...string) {
		overrides = append(overrides, flagOverride{flag: flag, value: value, commands: commands})
	}

	if meta.IsDefined("lexer", "max_diagnostics") {
		if cfg.Lexer.MaxDiagnostics < 0 {
			return projectConfig{}, nil, fmt.Errorf("%s: [lexer].max_diagnostics must be >= 0", path)
		}
		set("max-diagnostics", strconv.Itoa(cfg.Lexer.MaxDiagnostics))
	}
	if meta.IsDefined("lexer", "jobs") {
		if cfg.Lexer.Jobs < 0 {
			return projectConfig{}, nil, fmt.Errorf("%s: [lexer].jobs must be >= 0", path)
		}
		set("jobs", strconv.Itoa(cfg.Lexer.Jobs))
	}
	if meta.IsDefined("lexer", "cache") {
		set("cache", strconv.FormatBool(cfg.Lexer.Cache))
	}

	if meta.IsDefined("symbols", "strict") {
		set("strict", strconv.FormatBool(cfg.Symbols.Strict))
	}
	if meta.IsDefined("symbols", "scoped") {
		set("scoped", strconv.FormatBool(cfg.Symbols.Scoped))
	}
	if meta.IsDefined("symbols", "warn_shadow") {
		set("warn-shadow", strconv.FormatBool(cfg.Symbols.WarnShadow))
	}

	if meta.IsDefined("output", "format") {
		format := strings.ToLower(strings.TrimSpace(cfg.Output.Format))
		inTokenize := slices.Contains(tokenizeFormats, format)
		inSymbols := slices.Contains(symbolsFormats, format)
		if !inTokenize && !inSymbols {
			return projectConfig{}, nil, fmt.Errorf("%s: [output].format %q is not one of pretty|json|msgpack|listing", path, cfg.Output.Format)
		}
		// msgpack есть только у tokenize, listing только у symbols
		if inTokenize {
			set("format", format, "tokenize")
		}
		if inSymbols {
			set("format", format, "symbols")
		}
	}
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "on", "off":
		default:
			return projectConfig{}, nil, fmt.Errorf("%s: [output].color must be auto|on|off", path)
		}
		set("color", cfg.Output.Color)
	}
	if meta.IsDefined("output", "diag_format") {
		switch cfg.Output.DiagFormat {
		case "pretty", "short", "json":
		default:
			return projectConfig{}, nil, fmt.Errorf("%s: [output].diag_format must be pretty|short|json", path)
		}
		set("diag-format", cfg.Output.DiagFormat)
	}
	if meta.IsDefined("output", "path_mode") {
		if _, err := diagfmt.ParsePathMode(cfg.Output.PathMode); err != nil {
			return projectConfig{}, nil, fmt.Errorf("%s: [output].path_mode: %w", path, err)
		}
		set("path-mode", cfg.Output.PathMode)
	}

	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return projectConfig{}, nil, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
		set("trace-level", cfg.Trace.Level)
	}
	if meta.IsDefined("trace", "mode") {
		if _, err := trace.ParseMode(cfg.Trace.Mode); err != nil {
			return projectConfig{}, nil, fmt.Errorf("%s: [trace].mode: %w", path, err)
		}
		set("trace-mode", cfg.Trace.Mode)
	}
	if meta.IsDefined("trace", "output") && cfg.Trace.Output != "" {
		out := cfg.Trace.Output
		if out != "-" && !filepath.IsAbs(out) {
			out = filepath.Join(filepath.Dir(path), out)
		}
		set("trace", out)
	}

	return cfg, overrides, nil
}

// apply sets every flag of cmd that the manifest configures and the user
// did not pass explicitly.
func (m *projectManifest) apply(cmd *cobra.Command) error {
	for _, o := range m.overrides {
		if len(o.commands) > 0 && !slices.Contains(o.commands, cmd.Name()) {
			continue
		}
		f := cmd.Flags().Lookup(o.flag)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(o.value); err != nil {
			return fmt.Errorf("%s: invalid value %q for --%s: %w", m.Path, o.value, o.flag, err)
		}
	}
	return nil
}

// applyProjectConfig loads --config or the nearest zara.toml and applies it
// to cmd. A missing zara.toml is not an error.
func applyProjectConfig(cmd *cobra.Command) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	var manifest *projectManifest
	if configPath != "" {
		if manifest, err = loadManifestFile(configPath); err != nil {
			return err
		}
	} else {
		var ok bool
		manifest, ok, err = loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return manifest.apply(cmd)
}
