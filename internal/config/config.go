package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every process setting, parsed once from the environment in
// main and injected through constructors.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR"      envDefault:":8080"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"expense_tracker"`

	Token      TokenConfig      `envPrefix:"TOKEN_"`
	Cloudinary CloudinaryConfig `envPrefix:"CLOUDINARY_"`
	SMTP       SMTPConfig       `envPrefix:"SMTP_"`

	GoogleClientID      string `env:"GOOGLE_CLIENT_ID"`
	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL"`
}

// TokenConfig holds JWT signing settings. The signing secrets live here and
// nowhere else; the token issuer receives them at construction.
type TokenConfig struct {
	Issuer                      string        `env:"ISSUER"                    envDefault:"expense-tracker-api"`
	AccessTokenSecret           string        `env:"ACCESS_SECRET"`
	AccessTokenExpiresIn        time.Duration `env:"ACCESS_EXPIRES_IN"         envDefault:"1h"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_SECRET"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_EXPIRES_IN" envDefault:"15m"`
}

// CloudinaryConfig holds the image host credentials.
type CloudinaryConfig struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
	Folder    string `env:"FOLDER" envDefault:"expense_tracker/profile-pictures"`
}

// SMTPConfig holds the mail server settings for password reset emails.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the settings that have no sensible default.
func (c *Config) validate() error {
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_ACCESS_SECRET environment variable")
	}
	if c.Token.PasswordResetTokenSecret == "" {
		return fmt.Errorf("missing TOKEN_PASSWORD_RESET_SECRET environment variable")
	}
	if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
		return fmt.Errorf("incomplete CLOUDINARY_* configuration")
	}

	return nil
}
