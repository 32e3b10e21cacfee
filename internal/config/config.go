package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Charts
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	ChartWidth    int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int    `mapstructure:"chart_height" yaml:"chart_height"`
	KDEPoints     int    `mapstructure:"kde_points" yaml:"kde_points"`
	Density2DGrid int    `mapstructure:"density2d_grid" yaml:"density2d_grid"`

	// Input parsing
	Delimiter  string   `mapstructure:"delimiter" yaml:"delimiter"`
	Decimal    string   `mapstructure:"decimal" yaml:"decimal"`
	Thousands  string   `mapstructure:"thousands" yaml:"thousands"`
	SheetName  string   `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int      `mapstructure:"sheet_index" yaml:"sheet_index"`
	NAValues   []string `mapstructure:"na_values" yaml:"na_values"`

	ReportFormat string `mapstructure:"report_format" yaml:"report_format"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"output_dir", "chart_width", "chart_height", "kde_points", "density2d_grid",
	"delimiter", "decimal", "thousands", "sheet_name", "sheet_index", "na_values",
	"report_format", "log_level",
}

// Default returns the built-in settings.
func Default() *Global {
	return &Global{
		OutputDir:     "./eda-charts",
		ChartWidth:    1024,
		ChartHeight:   640,
		KDEPoints:     200,
		Density2DGrid: 40,
		SheetIndex:    1,
		ReportFormat:  "markdown",
		LogLevel:      "info",
	}
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".eda"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.eda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("EDA")
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("kde_points", d.KDEPoints)
	v.SetDefault("density2d_grid", d.Density2DGrid)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal", "")
	v.SetDefault("thousands", "")
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", d.SheetIndex)
	v.SetDefault("na_values", []string{})
	v.SetDefault("report_format", d.ReportFormat)
	v.SetDefault("log_level", d.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// a missing file is fine; a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(c.NAValues) == 0 {
		c.NAValues = nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges and single-character separators.
func (c *Global) Validate() error {
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return fmt.Errorf("chart size %dx%d too small (min 100x100)", c.ChartWidth, c.ChartHeight)
	}
	if c.KDEPoints < 2 {
		return fmt.Errorf("kde_points must be at least 2, got %d", c.KDEPoints)
	}
	if c.Density2DGrid < 2 {
		return fmt.Errorf("density2d_grid must be at least 2, got %d", c.Density2DGrid)
	}
	if c.SheetIndex < 1 {
		return fmt.Errorf("sheet_index is 1-based, got %d", c.SheetIndex)
	}
	for key, val := range map[string]string{"delimiter": c.Delimiter, "decimal": c.Decimal, "thousands": c.Thousands} {
		if _, err := Rune(val); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	switch c.ReportFormat {
	case "markdown", "json":
	default:
		return fmt.Errorf("invalid report_format %q (use markdown or json)", c.ReportFormat)
	}
	return nil
}

// Rune converts a separator setting to a rune. Empty means unset; "\t" and "tab" mean a tab.
func Rune(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "TAB":
		return '\t', nil
	case "space":
		return ' ', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Get returns the display form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "output_dir":
		return c.OutputDir, nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	case "kde_points":
		return strconv.Itoa(c.KDEPoints), nil
	case "density2d_grid":
		return strconv.Itoa(c.Density2DGrid), nil
	case "delimiter":
		return c.Delimiter, nil
	case "decimal":
		return c.Decimal, nil
	case "thousands":
		return c.Thousands, nil
	case "sheet_name":
		return c.SheetName, nil
	case "sheet_index":
		return strconv.Itoa(c.SheetIndex), nil
	case "na_values":
		return strings.Join(c.NAValues, ","), nil
	case "report_format":
		return c.ReportFormat, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// Set parses val into key and validates the result. On error c is unchanged.
func (c *Global) Set(key, val string) error {
	next := *c
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	var err error
	switch key {
	case "output_dir":
		next.OutputDir = val
	case "chart_width":
		next.ChartWidth, err = atoi()
	case "chart_height":
		next.ChartHeight, err = atoi()
	case "kde_points":
		next.KDEPoints, err = atoi()
	case "density2d_grid":
		next.Density2DGrid, err = atoi()
	case "delimiter":
		next.Delimiter = val
	case "decimal":
		next.Decimal = val
	case "thousands":
		next.Thousands = val
	case "sheet_name":
		next.SheetName = val
	case "sheet_index":
		next.SheetIndex, err = atoi()
	case "na_values":
		next.NAValues = nil
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				next.NAValues = append(next.NAValues, s)
			}
		}
	case "report_format":
		next.ReportFormat = strings.ToLower(val)
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			next.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
