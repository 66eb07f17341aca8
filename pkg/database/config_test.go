package database_test

import (
	"strings"
	"testing"

	"github.com/intakehq/intake/pkg/database"
)

func validConfig() database.Config {
	return database.Config{Name: "intake", User: "intake"}
}

func TestFinalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("host: got %s, want localhost", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("port: got %d, want 5432", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("ssl_mode: got %s, want disable", cfg.SSLMode)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("max_open_conns: got %d, want 25", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("max_idle_conns: got %d, want 5", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime != "15m" {
		t.Errorf("conn_max_lifetime: got %s, want 15m", cfg.ConnMaxLifetime)
	}
	if cfg.ConnTimeout != "5s" {
		t.Errorf("conn_timeout: got %s, want 5s", cfg.ConnTimeout)
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "5433")
	t.Setenv("TEST_DB_PASSWORD", "secret")

	env := &database.Env{
		Host:     "TEST_DB_HOST",
		Port:     "TEST_DB_PORT",
		Password: "TEST_DB_PASSWORD",
	}

	cfg := validConfig()
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "db.internal" {
		t.Errorf("host: got %s, want db.internal", cfg.Host)
	}
	if cfg.Port != 5433 {
		t.Errorf("port: got %d, want 5433", cfg.Port)
	}
	if cfg.Password != "secret" {
		t.Errorf("password: got %s, want secret", cfg.Password)
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "intake"}, "name required"},
		{"missing user", database.Config{Name: "intake"}, "user required"},
		{
			"bad lifetime",
			database.Config{Name: "intake", User: "intake", ConnMaxLifetime: "forever"},
			"invalid conn_max_lifetime",
		},
		{
			"bad timeout",
			database.Config{Name: "intake", User: "intake", ConnTimeout: "soon"},
			"invalid conn_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := validConfig()
	if err := base.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	overlay := database.Config{Host: "prod.internal", Port: 6432}
	base.Merge(&overlay)

	if base.Host != "prod.internal" {
		t.Errorf("host: got %s, want prod.internal", base.Host)
	}
	if base.Port != 6432 {
		t.Errorf("port: got %d, want 6432", base.Port)
	}
	if base.Name != "intake" {
		t.Errorf("name: got %s, want intake (unchanged)", base.Name)
	}
}

func TestDsn(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	dsn := cfg.Dsn()
	for _, part := range []string{"host=localhost", "port=5432", "dbname=intake", "user=intake", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("dsn missing %q: %s", part, dsn)
		}
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ConnMaxLifetimeDuration().Minutes() != 15 {
		t.Errorf("conn_max_lifetime: got %v, want 15m", cfg.ConnMaxLifetimeDuration())
	}
	if cfg.ConnTimeoutDuration().Seconds() != 5 {
		t.Errorf("conn_timeout: got %v, want 5s", cfg.ConnTimeoutDuration())
	}
}
