package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hadas32/smart-parking-hub/pkg/session"
)

func TestReadFromEnvironment(t *testing.T) {
	t.Setenv(EnvServer, "https://parking.example.com")
	t.Setenv(EnvTokenFile, "/tmp/token")
	t.Setenv(EnvCacheFile, "/tmp/cache.json")

	config := NewConfig()
	config.ReadFromEnvironment()

	if config.Server != "https://parking.example.com" {
		t.Errorf("server = %q", config.Server)
	}
	if config.TokenFilename != "/tmp/token" {
		t.Errorf("token file = %q", config.TokenFilename)
	}
	if config.CacheFilename != "/tmp/cache.json" {
		t.Errorf("cache file = %q", config.CacheFilename)
	}
}

func TestEnvironmentDoesNotOverrideFlags(t *testing.T) {
	t.Setenv(EnvServer, "https://wrong.example.com")
	t.Setenv(EnvTokenName, "wrong")

	config := NewConfig()
	config.Server = "https://parking.example.com"
	config.TokenFilename = "/tmp/token"
	config.ReadFromEnvironment()

	if config.Server != "https://parking.example.com" {
		t.Errorf("environment overwrote explicit server: %q", config.Server)
	}
	if config.KeyringTokenName != "" {
		t.Errorf("token name set despite explicit token file: %q", config.KeyringTokenName)
	}
}

func TestReadConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	contents := `
server: https://parking.example.com
token_file: /tmp/token
cache_file: /tmp/cache.json
cache_ttl_seconds: 300
`
	if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	config := NewConfig()
	config.ConfigFilename = filename
	if err := config.ReadConfigFile(); err != nil {
		t.Fatalf("failed to read config file: %s", err)
	}
	if config.Server != "https://parking.example.com" {
		t.Errorf("server = %q", config.Server)
	}
	if config.TokenFilename != "/tmp/token" {
		t.Errorf("token file = %q", config.TokenFilename)
	}
	if config.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %s", config.CacheTTL)
	}
}

func TestConfigFileDoesNotOverrideExplicitValues(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	contents := `
server: https://wrong.example.com
token_name: wrong
cache_ttl_seconds: 300
`
	if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	config := NewConfig()
	config.ConfigFilename = filename
	config.Server = "https://parking.example.com"
	config.TokenFilename = "/tmp/token"
	config.CacheTTL = time.Minute
	if err := config.ReadConfigFile(); err != nil {
		t.Fatalf("failed to read config file: %s", err)
	}
	if config.Server != "https://parking.example.com" {
		t.Errorf("config file overwrote explicit server: %q", config.Server)
	}
	if config.KeyringTokenName != "" {
		t.Errorf("token name set despite explicit token file: %q", config.KeyringTokenName)
	}
	if config.CacheTTL != time.Minute {
		t.Errorf("config file overwrote explicit cache ttl: %s", config.CacheTTL)
	}
}

func TestReadConfigFileRejectsMalformedYAML(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(filename, []byte("server: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	config := NewConfig()
	config.ConfigFilename = filename
	if err := config.ReadConfigFile(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestStorePrefersTokenFile(t *testing.T) {
	config := NewConfig()
	config.TokenFilename = filepath.Join(t.TempDir(), "token")
	config.KeyringTokenName = "ignored"

	store, err := config.Store()
	if err != nil {
		t.Fatalf("failed to build store: %s", err)
	}
	if _, ok := store.(*session.FileStore); !ok {
		t.Errorf("expected a file store, got %T", store)
	}
}

func TestConnectRequiresServer(t *testing.T) {
	config := NewConfig()
	if _, err := config.Connect(); err == nil {
		t.Error("expected error when no server is configured")
	}
}
