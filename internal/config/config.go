package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultAPIEndpoint is the action API of the Chinese WikiFur.
	DefaultAPIEndpoint = "https://zh.wikifur.com/w/api.php"

	// DefaultPage is the template page the bot maintains.
	DefaultPage = "模板:人物"

	// DefaultPrimaryCategory lists every person.
	DefaultPrimaryCategory = "人物"

	// DefaultDeceasedCategory lists the persons who have passed away.
	DefaultDeceasedCategory = "逝世的人物"

	// DefaultMaxGroupSize is the largest number of entries in one template column.
	DefaultMaxGroupSize = 200

	// DefaultMaxAttempts is the number of edit attempts when edits conflict.
	DefaultMaxAttempts = 3

	// DefaultTimeout is the timeout of a single API request.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent identifies the bot to the wiki.
	DefaultUserAgent = "wikifur-persons-template-bot/1.0 (+https://github.com/TimXiedada/wikifur-persons-template-bot)"

	// AppName is the application name used for XDG directory paths.
	AppName = "personsbot"
)

// Environment variables that supply credentials. They take precedence over
// the configuration file.
const (
	EnvUsername = "PERSONSBOT_USERNAME"
	EnvPassword = "PERSONSBOT_PASSWORD"
)

// Config holds all options of one bot run. It is populated from defaults,
// the configuration file, the environment and CLI flags, in that order, and
// passed to the components that need it.
type Config struct {
	// APIEndpoint is the absolute URL of the wiki's api.php.
	APIEndpoint string

	// Username is the bot password user name, e.g. "Bot@personsbot".
	Username string

	// Password is the bot password.
	Password string

	// PrimaryCategory lists every person.
	PrimaryCategory string

	// DeceasedCategory lists the persons marked as deceased.
	DeceasedCategory string

	// Page is the title of the template page.
	Page string

	// Summary is the edit summary. Empty selects the default summary.
	Summary string

	// MaxGroupSize is the entry ceiling of a template column.
	MaxGroupSize int

	// MaxAttempts is the number of edit attempts on edit conflicts.
	MaxAttempts int

	// BotEdit marks edits with the bot flag.
	BotEdit bool

	// Timeout is the timeout of a single API request.
	Timeout time.Duration

	// UserAgent is sent with every API request.
	UserAgent string

	// Verbose enables debug logging. It wins over Quiet.
	Verbose bool

	// Quiet limits logging to warnings and errors.
	Quiet bool

	// Send publishes the template to the wiki.
	Send bool

	// DryRun prints a diff against the live page instead of the template.
	// It is ignored when Send is set.
	DryRun bool

	// ReportFile is where the run summary is written. The extension picks
	// the format. Empty disables the summary.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the file is searched for in the usual locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIEndpoint:      DefaultAPIEndpoint,
		PrimaryCategory:  DefaultPrimaryCategory,
		DeceasedCategory: DefaultDeceasedCategory,
		Page:             DefaultPage,
		MaxGroupSize:     DefaultMaxGroupSize,
		MaxAttempts:      DefaultMaxAttempts,
		BotEdit:          true,
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
	}
}

// XDGConfigDir returns the XDG config directory for the bot.
// On Linux: ~/.config/personsbot
// On macOS: ~/Library/Application Support/personsbot
// On Windows: %APPDATA%\personsbot
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// HasCredentials reports whether both user name and password are set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.APIEndpoint == "" {
		return ErrNoSiteURL
	}
	if c.Page == "" {
		return ErrNoPage
	}
	if c.PrimaryCategory == "" || c.DeceasedCategory == "" {
		return ErrNoCategory
	}
	if c.MaxGroupSize < 1 {
		return ErrInvalidMaxGroupSize
	}
	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// One half of a credential pair is always a mistake.
	if (c.Username == "") != (c.Password == "") {
		return ErrIncompleteCredentials
	}
	if c.Send && !c.HasCredentials() {
		return ErrNoCredentials
	}

	return nil
}
