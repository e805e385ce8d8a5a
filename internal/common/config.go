package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFile is loaded when no --config flag is given and the file exists.
const DefaultConfigFile = "corporate-reports.toml"

// DefaultEnvFile holds secrets such as EDINET_API_KEY.
const DefaultEnvFile = ".env"

// Config represents the application configuration
type Config struct {
	Edinet  EdinetConfig  `toml:"edinet"`
	Logging LoggingConfig `toml:"logging"`
	Report  ReportConfig  `toml:"report"`
}

// EdinetConfig configures the EDINET API client
type EdinetConfig struct {
	APIKey          string `toml:"api_key"`          // Subscription key; usually "{EDINET_API_KEY}" resolved from .env
	BaseURL         string `toml:"base_url"`         // API v2 base URL
	Timeout         string `toml:"timeout"`          // HTTP timeout, e.g. "60s"
	RequestInterval string `toml:"request_interval"` // Minimum delay between calls, e.g. "350ms"
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "console", "file"
	File   string   `toml:"file"`   // Log file path when output includes "file"
}

// ReportConfig configures report.html assembly
type ReportConfig struct {
	CSSPath       string `toml:"css_path"`        // Stylesheet href written into report.html
	TOCScriptPath string `toml:"toc_script_path"` // TOC toggle script src
	AnalyticsID   string `toml:"analytics_id"`    // Optional gtag measurement ID
	TemplatesDir  string `toml:"templates_dir"`   // Optional override directory for report.html.tmpl
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Edinet: EdinetConfig{
			BaseURL:         "https://api.edinet-fsa.go.jp/api/v2",
			Timeout:         "60s",
			RequestInterval: "350ms", // ~3 requests per second
		},
		Logging: LoggingConfig{
			Level:  "warn", // Command output goes to stdout; keep logs quiet by default
			Output: []string{"console"},
			File:   "logs/corporate-reports.log",
		},
		Report: ReportConfig{
			CSSPath:       "../../assets/report.css",
			TOCScriptPath: "../../assets/toc.js",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> files -> .env references -> env.
// Later files override earlier files. A missing .env is not an error.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	envMap, err := loadEnvFile(DefaultEnvFile)
	if err != nil {
		return nil, err
	}

	// Resolve {KEY} references against .env, then the process environment
	kvMap := environMap()
	for k, v := range envMap {
		if _, exists := kvMap[k]; !exists {
			kvMap[k] = v
		}
	}
	if err := ReplaceInStruct(config, kvMap, GetLogger()); err != nil {
		return nil, fmt.Errorf("failed to resolve config references: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// loadEnvFile exports .env entries into the process environment without
// overriding variables that are already set, and returns the entries.
func loadEnvFile(path string) (map[string]string, error) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return envMap, nil
}

func environMap() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// EDINET
	if apiKey := os.Getenv("EDINET_API_KEY"); apiKey != "" {
		config.Edinet.APIKey = apiKey
	}
	if baseURL := os.Getenv("CORPREPORTS_EDINET_BASE_URL"); baseURL != "" {
		config.Edinet.BaseURL = baseURL
	}
	if timeout := os.Getenv("CORPREPORTS_EDINET_TIMEOUT"); timeout != "" {
		config.Edinet.Timeout = timeout
	}
	if interval := os.Getenv("CORPREPORTS_EDINET_REQUEST_INTERVAL"); interval != "" {
		config.Edinet.RequestInterval = interval
	}

	// Logging
	if level := os.Getenv("CORPREPORTS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("CORPREPORTS_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Report
	if cssPath := os.Getenv("CORPREPORTS_REPORT_CSS_PATH"); cssPath != "" {
		config.Report.CSSPath = cssPath
	}
	if tocPath := os.Getenv("CORPREPORTS_REPORT_TOC_SCRIPT_PATH"); tocPath != "" {
		config.Report.TOCScriptPath = tocPath
	}
}

// ParseDuration parses a config duration, falling back to def when empty or invalid.
func ParseDuration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}
