package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Fallback policy constants
	FallbackError     = "error"
	FallbackReference = "reference"

	// Default values
	DefaultPort              = 8080
	DefaultHost              = "127.0.0.1"
	DefaultLogLevel          = "info"
	DefaultMaxFileSize       = 100 * 1024 * 1024 // 100MB
	DefaultMaxCandidatePages = 12
	DefaultContextWindow     = 150

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the report extractor server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Report configuration
	ReportDirectory   string
	MaxFileSize       int64 // Maximum report file size in bytes
	MaxCandidatePages int   // Cap on candidate pages per extraction rule
	ContextWindow     int   // Keyword proximity radius in characters
	Fallback          string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		ReportDirectory:   currentDir,
		MaxFileSize:       DefaultMaxFileSize,
		MaxCandidatePages: DefaultMaxCandidatePages,
		ContextWindow:     DefaultContextWindow,
		Fallback:          FallbackError,
		Version:           "1.0.0",
		ServerName:        "mcp-report-extractor",
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.ReportDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.ReportDirectory); err == nil {
			cfg.ReportDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_REPORT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.ReportDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxpages", cfg.MaxCandidatePages)
	viper.SetDefault("contextwindow", cfg.ContextWindow)
	viper.SetDefault("fallback", cfg.Fallback)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.ReportDirectory, "Directory containing report files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum report file size in bytes")
	pflag.Int("maxpages", cfg.MaxCandidatePages, "Maximum candidate pages scanned per extraction rule")
	pflag.Int("contextwindow", cfg.ContextWindow, "Keyword proximity window in characters")
	pflag.String("fallback", cfg.Fallback, "Empty-extraction policy: 'error' or 'reference'")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("maxpages", pflag.Lookup("maxpages"))
	_ = viper.BindPFlag("contextwindow", pflag.Lookup("contextwindow"))
	_ = viper.BindPFlag("fallback", pflag.Lookup("fallback"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Report Extractor - A Model Context Protocol server that extracts structured datasets from report documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                             "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/reports                      "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/reports --fallback=reference "+
			"# serve labeled reference data when extraction is empty\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_MODE          Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_HOST          Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_PORT          Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_DIR           Report directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_LOGLEVEL      Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_MAXFILESIZE   Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_MAXPAGES      Candidate page cap per rule\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_CONTEXTWINDOW Keyword proximity window\n")
		fmt.Fprintf(os.Stderr, "  MCP_REPORT_FALLBACK      Empty-extraction policy\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.ReportDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxCandidatePages = viper.GetInt("maxpages")
	cfg.ContextWindow = viper.GetInt("contextwindow")
	cfg.Fallback = viper.GetString("fallback")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate report directory
	if c.ReportDirectory == "" {
		return errors.New("report directory cannot be empty")
	}

	// Check if report directory exists, create if it doesn't
	if _, err := os.Stat(c.ReportDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.ReportDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create report directory %s: %w", c.ReportDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access report directory %s: %w", c.ReportDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate extraction bounds
	if c.MaxCandidatePages <= 0 {
		return errors.New("candidate page cap must be positive")
	}
	if c.ContextWindow <= 0 {
		return errors.New("context window must be positive")
	}

	// Validate fallback policy
	if c.Fallback != FallbackError && c.Fallback != FallbackReference {
		return fmt.Errorf("invalid fallback policy: %s (must be 'error' or 'reference')", c.Fallback)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, ReportDirectory: %s, LogLevel: %s, MaxFileSize: %d, MaxCandidatePages: %d}",
		c.Mode, c.Host, c.Port, c.ReportDirectory, c.LogLevel, c.MaxFileSize, c.MaxCandidatePages)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
