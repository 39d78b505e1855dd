package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quickchat/internal/transport"
)

// Name is used for the config file name, the home directory and the env
// prefix.
const Name = "quickchat"

// Storage backends selectable with the store key.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config keys.
const (
	KeyHome       = "home"
	KeyBaseURL    = "base_url"
	KeyStore      = "store"
	KeyRedisURL   = "redis_url"
	KeyNamespace  = "namespace"
	KeyPassphrase = "passphrase"
	KeyTimeout    = "timeout"
	KeyRetries    = "retries"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

// ErrUnknownStore is returned for a store value other than file, redis or
// memory.
var ErrUnknownStore = errors.New("unknown store backend")

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        `mapstructure:"home"`     // state directory, e.g. $HOME/.quickchat
	BaseURL    string        `mapstructure:"base_url"` // backend base URL
	Store      string        `mapstructure:"store"`
	RedisURL   string        `mapstructure:"redis_url"`
	Namespace  string        `mapstructure:"namespace"`
	Passphrase string        `mapstructure:"passphrase"` // seals file-store values when set
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"` // network-error retries; 0 disables
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"`

	HTTP *http.Client `mapstructure:"-"` // optional; built from Timeout when nil
}

// SetDefaults registers every key so that environment variables are seen by
// Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHome, "")
	v.SetDefault(KeyBaseURL, transport.DefaultBaseURL)
	v.SetDefault(KeyStore, StoreFile)
	v.SetDefault(KeyRedisURL, "")
	v.SetDefault(KeyNamespace, "default")
	v.SetDefault(KeyPassphrase, "")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRetries, 0)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
}

// LoadConfig reads configFile, or searches ./quickchat.yaml and
// $HOME/.quickchat/quickchat.yaml when it is empty. A missing config file is
// not an error. QUICKCHAT_* environment variables override file values, and
// flags bound to v override both.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "."+Name))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(Name))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home: %w", err)
		}
		c.Home = filepath.Join(dir, "."+Name)
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case "":
		c.Store = StoreFile
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	if c.Store == StoreRedis && c.RedisURL == "" {
		return fmt.Errorf("store %q requires %s", StoreRedis, KeyRedisURL)
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	return nil
}
