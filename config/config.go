package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at startup and
// passed by value to the components that need it.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Mail        MailConfig     `mapstructure:"mail"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Seed        SeedConfig     `mapstructure:"seed"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CorsOrigins     []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

// MailConfig holds outbound email configuration
type MailConfig struct {
	Provider      string         `mapstructure:"provider"` // log, smtp, sendgrid
	From          string         `mapstructure:"from"`
	FromName      string         `mapstructure:"from_name"`
	AdminEmail    string         `mapstructure:"admin_email"`
	WebsiteDomain string         `mapstructure:"website_domain"`
	QueueSize     int            `mapstructure:"queue_size"`
	Workers       int            `mapstructure:"workers"`
	SendTimeout   time.Duration  `mapstructure:"send_timeout"`
	SMTP          SMTPConfig     `mapstructure:"smtp"`
	SendGrid      SendGridConfig `mapstructure:"sendgrid"`
}

// SMTPConfig holds SMTP relay settings
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SendGridConfig holds SendGrid API settings
type SendGridConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	EnforceAdmin bool          `mapstructure:"enforce_admin"`
}

// SeedConfig controls startup data seeding
type SeedConfig struct {
	Catalogue bool `mapstructure:"catalogue"`
}

// Load reads configuration from config.yaml under path, a .env file and
// PORTAL_* environment variables, in increasing order of precedence.
func Load(path string) (Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that have a closed set of options.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be one of: sqlite, postgres (got %q)", c.Database.Driver)
	}
	switch c.Mail.Provider {
	case "log", "smtp", "sendgrid":
	default:
		return fmt.Errorf("mail.provider must be one of: log, smtp, sendgrid (got %q)", c.Mail.Provider)
	}
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return errors.New("auth.jwt_secret is required outside development")
	}
	return nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/portal.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", "30m")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.from_name", "BIM Mills")
	v.SetDefault("mail.admin_email", "")
	v.SetDefault("mail.website_domain", "http://localhost:3000")
	v.SetDefault("mail.queue_size", 64)
	v.SetDefault("mail.workers", 2)
	v.SetDefault("mail.send_timeout", "20s")
	v.SetDefault("mail.smtp.host", "smtp.gmail.com")
	v.SetDefault("mail.smtp.port", 587)
	v.SetDefault("mail.smtp.username", "")
	v.SetDefault("mail.smtp.password", "")
	v.SetDefault("mail.sendgrid.api_key", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "60m")
	v.SetDefault("auth.enforce_admin", false)

	v.SetDefault("seed.catalogue", true)
}
