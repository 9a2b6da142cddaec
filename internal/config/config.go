package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	// DefaultPort is the Web Clipper service's default listen port.
	DefaultPort = 41184

	configDirName  = ".joplin-mcp"
	configFileName = "config"

	keyringService = "joplin-mcp"
	keyringUser    = "api-token"
)

// Config is the full configuration surface: one required credential plus
// the port and the auto-launch switch. Precedence: environment variables
// (JOPLIN_TOKEN, JOPLIN_PORT, JOPLIN_AUTO_LAUNCH) over the config file
// (~/.joplin-mcp/config.yaml) over the system keyring (token only) over
// defaults.
type Config struct {
	Token      string `mapstructure:"token"`
	Port       int    `mapstructure:"port"`
	AutoLaunch bool   `mapstructure:"auto_launch"`
}

// Default returns the zero configuration: no token, standard port,
// auto-launch on.
func Default() *Config {
	return &Config{Port: DefaultPort, AutoLaunch: true}
}

// Load resolves the configuration. A missing config file is fine; a missing
// token is not an error here — callers that need it get an auth failure
// with guidance from the API client.
func Load() (*Config, error) {
	// Pick up a .env from the working directory first, like the original
	// deployment did. Missing file is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("port", DefaultPort)
	v.SetDefault("auto_launch", true)

	v.SetEnvPrefix("joplin")
	_ = v.BindEnv("token")
	_ = v.BindEnv("port")
	_ = v.BindEnv("auto_launch")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Token == "" {
		if token, err := keyring.Get(keyringService, keyringUser); err == nil {
			cfg.Token = token
		}
	}
	return &cfg, nil
}

// BaseURL returns the loopback base URL of the Data API. Remote Joplin
// deployments are out of scope: the sync server offers no note-mutation
// endpoints, so loopback is the only meaningful target.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

// Dir returns the configuration directory (~/.joplin-mcp).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// StoreToken persists the API token, preferring the system keyring and
// falling back to the config file on headless systems where no keyring
// daemon answers. Returns a description of where the token ended up.
func StoreToken(token string) (string, error) {
	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		return "system keyring", nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, configFileName+".yaml")
	v := viper.New()
	v.SetConfigFile(path)
	_ = v.ReadInConfig() // keep existing keys if the file is already there
	v.Set("token", token)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("could not save config: %w", err)
	}
	return path, nil
}

// DeleteToken removes a keyring-stored token. Config-file tokens are left
// for the user to edit; this only clears the secret store.
func DeleteToken() error {
	return keyring.Delete(keyringService, keyringUser)
}
