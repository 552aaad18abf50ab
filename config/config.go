// Ininicializing common application configuration
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the public DeepAI quickstart key. With it the upstream
// usually refuses the call and the relay answers in preview mode.
const PlaceholderAPIKey = "quickstart-QUdJIGlzIGNvbWluZy4uLi4K"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Client   ClientConfig   `mapstructure:"client"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	AppVersion   string        `mapstructure:"app_version"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Env          string        `mapstructure:"environment"`
	Mode         string        `mapstructure:"mode"`
}

type UpstreamConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// PreviewMode reports whether the relay runs with the placeholder credential.
func (u UpstreamConfig) PreviewMode() bool {
	return u.APIKey == "" || u.APIKey == PlaceholderAPIKey
}

// Key returns the credential sent upstream, never empty.
func (u UpstreamConfig) Key() string {
	if u.APIKey == "" {
		return PlaceholderAPIKey
	}
	return u.APIKey
}

type ClientConfig struct {
	RelayURL  string `mapstructure:"relay_url"`
	OutputDir string `mapstructure:"output_dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig builds a viper instance from ./config/config.yaml, an optional
// .env file and the process environment. Neither file is required.
func LoadConfig() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("could not read .env file: %s", err.Error())
	}

	viperInstance := viper.New()
	setDefaults(viperInstance)

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvPrefix("ANIMEGEN")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()
	if err := viperInstance.BindEnv("upstream.api_key", "ANIMEGEN_UPSTREAM_API_KEY", "DEEPAI_API_KEY"); err != nil {
		return nil, err
	}

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Info("config file not found, using defaults")
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Load is LoadConfig followed by ParseConfig.
func Load() (*Config, error) {
	v, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return ParseConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.app_version", "1.0.0")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timeout", 2*time.Minute)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("upstream.url", "https://api.deepai.org/api/toonify")
	v.SetDefault("upstream.api_key", PlaceholderAPIKey)

	v.SetDefault("client.relay_url", "http://localhost:8080")
	v.SetDefault("client.output_dir", ".")

	v.SetDefault("log.level", "info")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
