/*
Package cli facilitates building command-line applications that talk to a
parking management service. It defines a [Config] type that registers
common command-line flags (using the Golang flag package), fills in gaps
from environment variables and an optional YAML file, and stores the
bearer token in an OS-dependent credential store via [keyring].

# Example

	config := cli.NewConfig()
	config.RegisterCommandLineFlags() // server URL, token location, keyring options
	flag.Parse()
	config.ReadFromEnvironment()      // fill in missing fields

	hub, err := config.Connect()
	if err != nil {
		panic(err)
	}
	defer config.SaveCache(hub.Cache)

The returned [Hub] bundles the gateway, the session controller, and the
cache coordinator, wired so that a 401 from any request tears the session
down and empties the cache.
*/
package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/99designs/keyring"
	"gopkg.in/yaml.v3"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/cache"
	"github.com/hadas32/smart-parking-hub/pkg/gateway"
	"github.com/hadas32/smart-parking-hub/pkg/session"
)

// Environment variable names used by [Config.ReadFromEnvironment].
const (
	EnvServer       = "PARKING_SERVER"
	EnvTokenName    = "PARKING_TOKEN_NAME"
	EnvTokenFile    = "PARKING_TOKEN_FILE"
	EnvCacheFile    = "PARKING_CACHE_FILE"
	EnvKeyringType  = "PARKING_KEYRING_TYPE"
	EnvKeyringPass  = "PARKING_KEYRING_PASSWORD"
	EnvKeyringPath  = "PARKING_KEYRING_PATH"
	EnvKeyringDebug = "PARKING_KEYRING_DEBUG"
)

const (
	keyringServiceName = "com.smart-parking-hub.auth"
	keyringDirectory   = "~/.parking_keys"
)

// Config fields determine which service the client talks to and where the
// bearer token lives.
type Config struct {
	Server           string // Base URL of the parking service, e.g. https://localhost:7001
	KeyringTokenName string // Name for the bearer token in the system keyring
	TokenFilename    string // Plain-file alternative to the keyring
	CacheFilename    string // Optional collection-cache snapshot file
	CacheTTL         time.Duration
	ConfigFilename   string // Optional YAML config file
	Backend          keyring.Config
	BackendType      backendType
	Debug            bool // Enable keyring debug messages

	password *string
}

// fileConfig is the YAML shape of -config files.
type fileConfig struct {
	Server          string `yaml:"server"`
	TokenName       string `yaml:"token_name"`
	TokenFile       string `yaml:"token_file"`
	CacheFile       string `yaml:"cache_file"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	Keyring         struct {
		Type string `yaml:"type"`
		Path string `yaml:"path"`
	} `yaml:"keyring"`
}

// Hub bundles the wired-together client components.
type Hub struct {
	Gateway  *gateway.Client
	Sessions *session.Controller
	Cache    *cache.Coordinator
}

func NewConfig() *Config {
	c := Config{
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getPassword
	c.Backend.FilePasswordFunc = c.getPassword
	return &c
}

func (c *Config) RegisterCommandLineFlags() {
	flag.StringVar(&c.Server, "server", "", "Parking service base `URL`. Defaults to $PARKING_SERVER.")
	flag.StringVar(&c.ConfigFilename, "config", "", "YAML configuration `file`.")
	flag.StringVar(&c.KeyringTokenName, "token-name", "", "System keyring `name` for the bearer token. Defaults to $PARKING_TOKEN_NAME.")
	flag.StringVar(&c.TokenFilename, "token-file", "", "`File` containing the bearer token. Defaults to $PARKING_TOKEN_FILE.")
	flag.StringVar(&c.CacheFilename, "cache-file", "", "Load and save cached collections from `file`. Defaults to $PARKING_CACHE_FILE.")
	flag.DurationVar(&c.CacheTTL, "cache-ttl", 0, "Expire cached collections after this `duration` (0 disables expiry).")
	flag.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+availableBackendNames()+"). Defaults to $PARKING_KEYRING_TYPE.")
	flag.StringVar(&c.Backend.FileDir, "keyring-file-dir", keyringDirectory, "keyring `directory` for file-backed keyring types")
	flag.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
}

// ReadFromEnvironment populates c using environment variables. Values that
// are already populated are not overwritten, so call it after flag.Parse.
func (c *Config) ReadFromEnvironment() {
	if c.Server == "" {
		c.Server = os.Getenv(EnvServer)
		log.Debug("Set server to '%s'", c.Server)
	}
	if c.KeyringTokenName == "" && c.TokenFilename == "" {
		c.KeyringTokenName = os.Getenv(EnvTokenName)
		c.TokenFilename = os.Getenv(EnvTokenFile)
	}
	if c.CacheFilename == "" {
		c.CacheFilename = os.Getenv(EnvCacheFile)
	}
	if c.BackendType.String() == string(keyring.InvalidBackend) {
		if err := c.BackendType.Set(os.Getenv(EnvKeyringType)); err == nil {
			log.Debug("Set keyring type to '%s'", c.BackendType)
		}
	}
	if c.password == nil {
		password := os.Getenv(EnvKeyringPass)
		c.password = &password
	}
	if c.Backend.FileDir == "" {
		c.Backend.FileDir = os.Getenv(EnvKeyringPath)
	}
	if !c.Debug {
		_, c.Debug = os.LookupEnv(EnvKeyringDebug)
	}
}

// ReadConfigFile merges values from c.ConfigFilename. Explicit flag and
// environment values win over the file.
func (c *Config) ReadConfigFile() error {
	if c.ConfigFilename == "" {
		return nil
	}
	data, err := os.ReadFile(c.ConfigFilename)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid config file %s: %w", c.ConfigFilename, err)
	}
	if c.Server == "" {
		c.Server = fc.Server
	}
	if c.KeyringTokenName == "" && c.TokenFilename == "" {
		c.KeyringTokenName = fc.TokenName
		c.TokenFilename = fc.TokenFile
	}
	if c.CacheFilename == "" {
		c.CacheFilename = fc.CacheFile
	}
	if c.CacheTTL == 0 && fc.CacheTTLSeconds > 0 {
		c.CacheTTL = time.Duration(fc.CacheTTLSeconds) * time.Second
	}
	if c.Backend.FileDir == keyringDirectory && fc.Keyring.Path != "" {
		c.Backend.FileDir = fc.Keyring.Path
	}
	if c.BackendType.String() == string(keyring.InvalidBackend) {
		return c.BackendType.Set(fc.Keyring.Type)
	}
	return nil
}

// Store returns the configured token store: a token file if one was named,
// otherwise the system keyring.
func (c *Config) Store() (session.Store, error) {
	if c.TokenFilename != "" {
		return &session.FileStore{Path: c.TokenFilename}, nil
	}
	return session.NewKeyringStore(c.Backend, c.KeyringTokenName)
}

// Connect wires up a gateway, session controller, and cache coordinator
// for the configured service.
func (c *Config) Connect() (*Hub, error) {
	if c.Server == "" {
		return nil, fmt.Errorf("no server configured (set -server or $%s)", EnvServer)
	}
	store, err := c.Store()
	if err != nil {
		return nil, err
	}

	gw := gateway.New(c.Server, store)
	coord := cache.New(gw, c.CacheTTL)
	sessions := session.NewController(store, gw, coord)
	gw.SetAuthFailureHook(sessions.HandleAuthFailure)

	if c.CacheFilename != "" {
		if err := coord.ImportFromFile(c.CacheFilename); err != nil {
			if !os.IsNotExist(err) {
				log.Warning("Ignoring unreadable cache file %s: %s", c.CacheFilename, err)
			}
		}
	}
	return &Hub{Gateway: gw, Sessions: sessions, Cache: coord}, nil
}

// SaveCache persists the coordinator's collections to the configured cache
// file, if any.
func (c *Config) SaveCache(coord *cache.Coordinator) {
	if c.CacheFilename == "" {
		return
	}
	if err := coord.ExportToFile(c.CacheFilename); err != nil {
		log.Error("Error updating cache file: %s", err)
	}
}
