package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/popup-picker/internal/app"
	"github.com/atomicstack/popup-picker/internal/catalog"
	uistate "github.com/atomicstack/popup-picker/internal/ui/state"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// ErrMissingCatalog is returned when no catalog path was configured.
var ErrMissingCatalog = errors.New("a catalog path is required (--catalog or POPUP_PICKER_CATALOG)")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envCatalog      = "POPUP_PICKER_CATALOG"
	envConfig       = "POPUP_PICKER_CONFIG"
	envWidth        = "POPUP_PICKER_WIDTH"
	envHeight       = "POPUP_PICKER_HEIGHT"
	envShowFooter   = "POPUP_PICKER_FOOTER"
	envTrace        = "POPUP_PICKER_TRACE"
	envLogFile      = "POPUP_PICKER_LOG_FILE"
	envPageSize     = "POPUP_PICKER_PAGE_SIZE"
	envPageDelay    = "POPUP_PICKER_PAGE_DELAY"
	envMatch        = "POPUP_PICKER_MATCH"
	envNoFilter     = "POPUP_PICKER_NO_FILTER"
	envRoot         = "POPUP_PICKER_ROOT"
	defaultPageSize = 50
)

type fileConfig struct {
	Catalog    *string        `toml:"catalog"`
	UI         fileUI         `toml:"ui"`
	Search     fileSearch     `toml:"search"`
	Pagination filePagination `toml:"pagination"`
	Logging    fileLogging    `toml:"logging"`
}

type fileUI struct {
	Width  *int    `toml:"width"`
	Height *int    `toml:"height"`
	Footer *bool   `toml:"footer"`
	Root   *string `toml:"root"`
}

type fileSearch struct {
	Match     *string `toml:"match"`
	Filtering *bool   `toml:"filtering"`
}

type filePagination struct {
	PageSize     *int     `toml:"page_size"`
	Ratio        *float64 `toml:"ratio"`
	MinThreshold *int     `toml:"min_threshold"`
	MaxThreshold *int     `toml:"max_threshold"`
	DelayMS      *int     `toml:"delay_ms"`
}

type fileLogging struct {
	File  *string `toml:"file"`
	Trace *bool   `toml:"trace"`
}

// Load parses configuration from CLI arguments, environment variables and the
// optional TOML file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("popup-picker", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	catalogFlag := fs.StringP("catalog", "c", "", "path to the YAML catalog to browse")
	configFlag := fs.String("config", "", "path to a TOML configuration file")
	width := fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", false, "enable footer hint row")
	trace := fs.Bool("trace", false, "enable verbose JSON trace logging")
	logFile := fs.String("log-file", "", "path to the log file")
	pageSize := fs.Int("page-size", defaultPageSize, "entries fetched per page")
	pageDelay := fs.Duration("page-delay", 0, "minimum delay between page fetches")
	match := fs.String("match", uistate.MatchSubstring, "matching mode: substring or fuzzy")
	noFilter := fs.Bool("no-filter", false, "disable search filtering")
	root := fs.String("root", "", "slash separated path of the level to open first")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	configPath := envOrDefault(env, envConfig, "")
	if fs.Changed("config") {
		configPath = *configFlag
	}
	var file fileConfig
	if configPath != "" {
		loaded, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	pagination := uistate.DefaultPaginationConfig()
	if file.Pagination.Ratio != nil {
		pagination.Ratio = *file.Pagination.Ratio
	}
	if file.Pagination.MinThreshold != nil {
		pagination.MinThreshold = *file.Pagination.MinThreshold
	}
	if file.Pagination.MaxThreshold != nil {
		pagination.MaxThreshold = *file.Pagination.MaxThreshold
	}

	resolvedCatalog := pickString(fs, "catalog", *catalogFlag, env, envCatalog, file.Catalog)
	resolvedWidth := pickInt(fs, "width", *width, env, envWidth, file.UI.Width, 0)
	resolvedHeight := pickInt(fs, "height", *height, env, envHeight, file.UI.Height, 0)
	resolvedFooter := pickBool(fs, "footer", *footer, env, envShowFooter, file.UI.Footer, false)
	resolvedTrace := pickBool(fs, "trace", *trace, env, envTrace, file.Logging.Trace, false)
	resolvedLogFile := pickString(fs, "log-file", *logFile, env, envLogFile, file.Logging.File)
	resolvedPageSize := pickInt(fs, "page-size", *pageSize, env, envPageSize, file.Pagination.PageSize, defaultPageSize)
	resolvedMatch := pickString(fs, "match", *match, env, envMatch, file.Search.Match)
	if resolvedMatch == "" {
		resolvedMatch = uistate.MatchSubstring
	}
	resolvedRoot := pickString(fs, "root", *root, env, envRoot, file.UI.Root)

	filtering := true
	if file.Search.Filtering != nil {
		filtering = *file.Search.Filtering
	}
	filtering = !envOrBool(env, envNoFilter, !filtering)
	if fs.Changed("no-filter") {
		filtering = !*noFilter
	}

	var delay time.Duration
	if file.Pagination.DelayMS != nil {
		delay = time.Duration(*file.Pagination.DelayMS) * time.Millisecond
	}
	delay = envOrDuration(env, envPageDelay, delay)
	if fs.Changed("page-delay") {
		delay = *pageDelay
	}

	cfg := Config{
		App: app.Config{
			CatalogPath: resolvedCatalog,
			Width:       resolvedWidth,
			Height:      resolvedHeight,
			ShowFooter:  resolvedFooter,
			RootPath:    catalog.SplitPath(resolvedRoot),
			PageSize:    resolvedPageSize,
			PageDelay:   delay,
			Match:       resolvedMatch,
			Filtering:   filtering,
			Pagination:  pagination,
		},
		Logging: Logging{
			FilePath: resolvedLogFile,
			Trace:    resolvedTrace,
		},
		File: configPath,
		Flags: map[string]string{
			"catalog":   resolvedCatalog,
			"config":    configPath,
			"width":     strconv.Itoa(resolvedWidth),
			"height":    strconv.Itoa(resolvedHeight),
			"footer":    strconv.FormatBool(resolvedFooter),
			"trace":     strconv.FormatBool(resolvedTrace),
			"logFile":   resolvedLogFile,
			"pageSize":  strconv.Itoa(resolvedPageSize),
			"pageDelay": delay.String(),
			"match":     resolvedMatch,
			"filtering": strconv.FormatBool(filtering),
			"root":      resolvedRoot,
		},
		Args: append([]string(nil), fs.Args()...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

func pickString(fs *pflag.FlagSet, name, flagValue string, env map[string]string, key string, file *string) string {
	if fs.Changed(name) {
		return flagValue
	}
	fallback := ""
	if file != nil {
		fallback = *file
	}
	return envOrDefault(env, key, fallback)
}

func pickInt(fs *pflag.FlagSet, name string, flagValue int, env map[string]string, key string, file *int, def int) int {
	if fs.Changed(name) {
		return flagValue
	}
	fallback := def
	if file != nil {
		fallback = *file
	}
	return envOrInt(env, key, fallback)
}

func pickBool(fs *pflag.FlagSet, name string, flagValue bool, env map[string]string, key string, file *bool, def bool) bool {
	if fs.Changed(name) {
		return flagValue
	}
	fallback := def
	if file != nil {
		fallback = *file
	}
	return envOrBool(env, key, fallback)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.CatalogPath) == "" {
		return ErrMissingCatalog
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.PageSize < 1 {
		return fmt.Errorf("page size must be >= 1 (got %d)", a.PageSize)
	}
	if a.PageDelay < 0 {
		return fmt.Errorf("page delay must be >= 0 (got %s)", a.PageDelay)
	}
	p := a.Pagination
	if p.Ratio <= 0 || p.Ratio > 1 {
		return fmt.Errorf("pagination ratio must be in (0, 1] (got %g)", p.Ratio)
	}
	if p.MinThreshold < 1 || p.MinThreshold > p.MaxThreshold {
		return fmt.Errorf("pagination thresholds must satisfy 1 <= min <= max (got %d, %d)", p.MinThreshold, p.MaxThreshold)
	}
	switch a.Match {
	case uistate.MatchSubstring, uistate.MatchFuzzy:
	default:
		return fmt.Errorf("unknown match mode %q (want %s or %s)", a.Match, uistate.MatchSubstring, uistate.MatchFuzzy)
	}
	return nil
}
