package config

import "time"

// File represents the structure of the .personsbot configuration file.
type File struct {
	Site        SiteSection        `yaml:"site,omitempty"`
	Credentials CredentialsSection `yaml:"credentials,omitempty"`
	Categories  CategoriesSection  `yaml:"categories,omitempty"`
	Template    TemplateSection    `yaml:"template,omitempty"`
	Publish     PublishSection     `yaml:"publish,omitempty"`
}

// SiteSection describes how to reach the wiki.
type SiteSection struct {
	// API is the absolute URL of api.php.
	API string `yaml:"api,omitempty"`

	// UserAgent overrides the default User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout is the per-request timeout, e.g. "30s".
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// CredentialsSection holds the bot password.
type CredentialsSection struct {
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// CategoriesSection names the source categories.
type CategoriesSection struct {
	Persons  string `yaml:"persons,omitempty"`
	Deceased string `yaml:"deceased,omitempty"`
}

// TemplateSection configures the generated template.
type TemplateSection struct {
	Page         string `yaml:"page,omitempty"`
	MaxGroupSize int    `yaml:"maxGroupSize,omitempty"`
}

// PublishSection configures the edit.
type PublishSection struct {
	Summary     string `yaml:"summary,omitempty"`
	MaxAttempts int    `yaml:"maxAttempts,omitempty"`

	// Bot sets the bot flag on edits. Unset keeps the default.
	Bot *bool `yaml:"bot,omitempty"`
}

// Apply overlays every value set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	setString(&cfg.APIEndpoint, f.Site.API)
	setString(&cfg.UserAgent, f.Site.UserAgent)
	if f.Site.Timeout != 0 {
		cfg.Timeout = f.Site.Timeout
	}

	setString(&cfg.Username, f.Credentials.Username)
	setString(&cfg.Password, f.Credentials.Password)

	setString(&cfg.PrimaryCategory, f.Categories.Persons)
	setString(&cfg.DeceasedCategory, f.Categories.Deceased)

	setString(&cfg.Page, f.Template.Page)
	if f.Template.MaxGroupSize != 0 {
		cfg.MaxGroupSize = f.Template.MaxGroupSize
	}

	setString(&cfg.Summary, f.Publish.Summary)
	if f.Publish.MaxAttempts != 0 {
		cfg.MaxAttempts = f.Publish.MaxAttempts
	}
	if f.Publish.Bot != nil {
		cfg.BotEdit = *f.Publish.Bot
	}
}

// ApplyEnv overlays credentials from the environment onto cfg.
// getenv is usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	setString(&cfg.Username, getenv(EnvUsername))
	setString(&cfg.Password, getenv(EnvPassword))
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
