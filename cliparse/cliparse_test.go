// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "SEED_DATA", "DATABASE_URL", "DATABASE_TYPE"} {
		t.Setenv(key, "")
	}

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("expected development env, got %q", cfg.Env)
	}
	if cfg.SeedData {
		t.Error("seeding should be off by default")
	}
	if cfg.ArchiveEnabled() {
		t.Error("archive should be disabled without a database URL")
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEED_DATA", "true")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
	if !cfg.SeedData {
		t.Error("expected SEED_DATA to enable seeding")
	}
	if !cfg.ArchiveEnabled() || cfg.DatabaseType != "postgres" {
		t.Errorf("unexpected archive config: %+v", cfg)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SEED_DATA", "true")

	cfg, err := ParseFlags([]string{"-p", "8080", "-e", "development", "-seed=false", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SeedData {
		t.Error("CLI -seed=false should override SEED_DATA")
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("expected database URL from flag, got %q", cfg.DatabaseURL)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"bad environment", nil, []string{"-e", "staging"}},
		{"bad seed env", map[string]string{"SEED_DATA": "maybe"}, nil},
		{"bad database type", nil, []string{"-t", "mysql"}},
		{"unknown flag", nil, []string{"-x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "APP_ENV", "SEED_DATA", "DATABASE_URL", "DATABASE_TYPE"} {
				t.Setenv(key, tc.env[key])
			}

			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BALLOTBOX_TEST_A=from-file\nBALLOTBOX_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BALLOTBOX_TEST_A", "")
	os.Unsetenv("BALLOTBOX_TEST_A")
	t.Setenv("BALLOTBOX_TEST_B", "from-env")

	if err := LoadEnv(path); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("BALLOTBOX_TEST_A") })

	if got := os.Getenv("BALLOTBOX_TEST_A"); got != "from-file" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("BALLOTBOX_TEST_B"); got != "from-env" {
		t.Errorf("existing env should win, got %q", got)
	}
}

func TestLoadEnv_MissingFile(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
