package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/portal.db", cfg.Database.DSN)
	assert.Equal(t, "log", cfg.Mail.Provider)
	assert.Equal(t, 587, cfg.Mail.SMTP.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Seed.Catalogue)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORTAL_DATABASE_DRIVER", "postgres")
	t.Setenv("PORTAL_DATABASE_DSN", "postgres://localhost/portal")
	t.Setenv("PORTAL_MAIL_SMTP_PORT", "2525")
	t.Setenv("PORTAL_AUTH_ENFORCE_ADMIN", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/portal", cfg.Database.DSN)
	assert.Equal(t, 2525, cfg.Mail.SMTP.Port)
	assert.True(t, cfg.Auth.EnforceAdmin)
}

func TestLoadYAMLAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "mail:\n  provider: sendgrid\n  from: orders@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORTAL_MAIL_ADMIN_EMAIL=admin@example.com\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PORTAL_MAIL_ADMIN_EMAIL") })

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sendgrid", cfg.Mail.Provider)
	assert.Equal(t, "orders@example.com", cfg.Mail.From)
	assert.Equal(t, "admin@example.com", cfg.Mail.AdminEmail)
}

func TestValidate(t *testing.T) {
	base := Config{
		Environment: "development",
		Database:    DatabaseConfig{Driver: "sqlite"},
		Mail:        MailConfig{Provider: "log"},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Database.Driver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "database.driver")

	bad = base
	bad.Mail.Provider = "pigeon"
	assert.ErrorContains(t, bad.Validate(), "mail.provider")

	for _, env := range []string{"production", "staging", ""} {
		bad = base
		bad.Environment = env
		assert.ErrorContains(t, bad.Validate(), "jwt_secret", env)
	}

	bad = base
	bad.Environment = "production"
	bad.Auth.JWTSecret = "s3cret"
	assert.NoError(t, bad.Validate())
}
