package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ServerSettings holds the HTTP server configuration.
type ServerSettings struct {
	Port   string `mapstructure:"port" validate:"required"`
	APIKey string `mapstructure:"api_key" validate:"required"`
}

// Validate checks that all fields in ServerSettings are valid
func (s *ServerSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ServerSettings: %w", err)
	}
	return nil
}

// UploadSettings bounds depositions and feeds the validation pipeline.
type UploadSettings struct {
	// DocumentDir is the directory documents are stored in, keyed by
	// document ID.
	DocumentDir          string   `mapstructure:"document_dir" validate:"required"`
	MaxSizeBytes         int64    `mapstructure:"max_size_bytes" validate:"required,min=1"`
	AcceptedContentTypes []string `mapstructure:"accepted_content_types" validate:"required,min=1"`
	MinImageEdge         int      `mapstructure:"min_image_edge" validate:"required,min=1"`
}

// Validate checks that all fields in UploadSettings are valid
func (s *UploadSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for UploadSettings: %w", err)
	}
	return nil
}

// ClassifierSettings configures the external AI classifier service.
// The service is optional; with Enabled false the check reports a
// skip.
type ClassifierSettings struct {
	Enabled        bool    `mapstructure:"enabled"`
	URL            string  `mapstructure:"url"`
	APIKey         string  `mapstructure:"api_key"`
	Threshold      float64 `mapstructure:"threshold" validate:"omitempty,gt=0,lte=1"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,min=1,max=300"`
}

// Validate checks that all fields in ClassifierSettings are valid
func (s *ClassifierSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ClassifierSettings: %w", err)
	}
	if s.Enabled && s.URL == "" {
		return fmt.Errorf("url is required when the classifier is enabled")
	}
	return nil
}

// PageSettings are the display toggles of the HTML status page.
type PageSettings struct {
	ShowInfo         bool   `mapstructure:"show_info"`
	ShowResponseTime bool   `mapstructure:"show_response_time"`
	ShowTimestamp    bool   `mapstructure:"show_timestamp"`
	GithubRepo       string `mapstructure:"github_repo"`
	DefaultRedirect  string `mapstructure:"default_redirect"`
}

// MaintenanceSettings control the startup cleanup pass.
type MaintenanceSettings struct {
	CleanupOnStart bool `mapstructure:"cleanup_on_start"`
	// StaleAfterDays is the retention window for documents that never
	// saw an access event.
	StaleAfterDays int `mapstructure:"stale_after_days" validate:"omitempty,min=1"`
}

// Validate checks that all fields in MaintenanceSettings are valid
func (s *MaintenanceSettings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MaintenanceSettings: %w", err)
	}
	return nil
}

// RestConfig aggregates every setting of the REST binary.
type RestConfig struct {
	Server      ServerSettings      `mapstructure:"server"`
	Database    DatabaseSettings    `mapstructure:"database"`
	Logger      LoggerSettings      `mapstructure:"logger"`
	Upload      UploadSettings      `mapstructure:"upload"`
	Classifier  ClassifierSettings  `mapstructure:"classifier"`
	Page        PageSettings        `mapstructure:"page"`
	Maintenance MaintenanceSettings `mapstructure:"maintenance"`
}

// Validate checks every settings section.
func (c *RestConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Upload.Validate(); err != nil {
		return err
	}
	if err := c.Classifier.Validate(); err != nil {
		return err
	}
	return c.Maintenance.Validate()
}

// InitializeRestConfig loads the yaml config at the given path and
// applies DOCDEPOT_* environment overrides, e.g. DOCDEPOT_SERVER_API_KEY
// or DOCDEPOT_MAINTENANCE_CLEANUP_ON_START.
func InitializeRestConfig(configPath string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("DOCDEPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setRestDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.api_key", "test")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "data/data.db")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("upload.document_dir", "data/documents")
	v.SetDefault("upload.max_size_bytes", 32<<20)
	v.SetDefault("upload.accepted_content_types", []string{"application/pdf", "image/png", "image/jpeg"})
	v.SetDefault("upload.min_image_edge", 150)
	v.SetDefault("classifier.enabled", false)
	v.SetDefault("classifier.threshold", 0.55)
	v.SetDefault("classifier.timeout_seconds", 10)
	v.SetDefault("page.github_repo", "https://github.com/tna76874/docdepot")
	v.SetDefault("maintenance.cleanup_on_start", true)
	v.SetDefault("maintenance.stale_after_days", 30)
}
