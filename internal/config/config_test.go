// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "0.0.0.0:9090"

database:
  path: "./identity.db"

redis:
  addr: "localhost:6379"
  password: "secret"
  db: 2

auth:
  secret_key: "test-secret-key"
  admin_registration_code: "test-admin-code"
  token_ttl: "45m"

otp:
  ttl: "10m"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:9090" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:9090")
	}
	if cfg.Database.Path != "./identity.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./identity.db")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("Redis.DB = %d, want 2", cfg.Redis.DB)
	}
	if cfg.Auth.SecretKey != "test-secret-key" {
		t.Errorf("Auth.SecretKey = %q, want %q", cfg.Auth.SecretKey, "test-secret-key")
	}
	if cfg.Auth.AdminRegistrationCode != "test-admin-code" {
		t.Errorf("Auth.AdminRegistrationCode = %q, want %q", cfg.Auth.AdminRegistrationCode, "test-admin-code")
	}
	if cfg.Auth.TokenTTL != 45*time.Minute {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 45*time.Minute)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Errorf("OTP.TTL = %v, want %v", cfg.OTP.TTL, 10*time.Minute)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./identity.db"

auth:
  secret_key: "test-secret-key"
  admin_registration_code: "test-admin-code"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != DefaultHTTPAddr {
		t.Errorf("Server.HTTPAddr = %q, want default %q", cfg.Server.HTTPAddr, DefaultHTTPAddr)
	}
	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %v, want default %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
	if cfg.OTP.TTL != DefaultOTPTTL {
		t.Errorf("OTP.TTL = %v, want default %v", cfg.OTP.TTL, DefaultOTPTTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr = %q, want empty (memory store)", cfg.Redis.Addr)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("SHELFWISE_TEST_SECRET", "expanded-secret")
	t.Setenv("SHELFWISE_TEST_CODE", "expanded-code")

	path := writeConfig(t, `
database:
  path: "./identity.db"

auth:
  secret_key: ${SHELFWISE_TEST_SECRET}
  admin_registration_code: ${SHELFWISE_TEST_CODE}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.SecretKey != "expanded-secret" {
		t.Errorf("Auth.SecretKey = %q, want %q", cfg.Auth.SecretKey, "expanded-secret")
	}
	if cfg.Auth.AdminRegistrationCode != "expanded-code" {
		t.Errorf("Auth.AdminRegistrationCode = %q, want %q", cfg.Auth.AdminRegistrationCode, "expanded-code")
	}
}

func TestLoad_UnsetEnvVarFailsValidation(t *testing.T) {
	// An unset variable expands to empty, which the secret_key check
	// then rejects.
	path := writeConfig(t, `
database:
  path: "./identity.db"

auth:
  secret_key: ${SHELFWISE_DEFINITELY_UNSET_VAR}
  admin_registration_code: "code"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "secret_key") {
		t.Errorf("expected secret_key validation error, got %v", err)
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing secret key",
			content: `
database:
  path: "./identity.db"
auth:
  admin_registration_code: "code"
`,
			wantErr: "secret_key",
		},
		{
			name: "missing admin code",
			content: `
database:
  path: "./identity.db"
auth:
  secret_key: "secret"
`,
			wantErr: "admin_registration_code",
		},
		{
			name: "missing database path",
			content: `
auth:
  secret_key: "secret"
  admin_registration_code: "code"
`,
			wantErr: "database.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./identity.db"
auth:
  secret_key: "secret"
  admin_registration_code: "code"
  token_ttl: "ninety minutes"
`)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "token_ttl") {
		t.Errorf("expected token_ttl parse error, got %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
