package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the gateway. Values are read from
// app.env in the given directory and overridden by environment variables.
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	PlateauEndpoint string        `mapstructure:"PLATEAU_ENDPOINT"`
	HTTPRetries     int           `mapstructure:"HTTP_RETRIES"`
	HTTPRetryDelay  time.Duration `mapstructure:"HTTP_RETRY_DELAY"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	HTTPRateLimit   float64       `mapstructure:"HTTP_RATE_LIMIT"`
	DownloadDir     string        `mapstructure:"DOWNLOAD_DIR"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	QGISEnabled     bool          `mapstructure:"QGIS_ENABLED"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":   "0.0.0.0:8080",
	"DB_SOURCE":        "",
	"PLATEAU_ENDPOINT": "https://api.plateauview.mlit.go.jp",
	"HTTP_RETRIES":     3,
	"HTTP_RETRY_DELAY": "2s",
	"HTTP_TIMEOUT":     "60s",
	"HTTP_RATE_LIMIT":  5.0,
	"DOWNLOAD_DIR":     "./downloads",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "json",
	"QGIS_ENABLED":     true,
}

// LoadConfig reads configuration from path/app.env and the environment.
// A missing app.env is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err = config.validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) validate() error {
	if c.PlateauEndpoint == "" {
		return fmt.Errorf("config: PLATEAU_ENDPOINT must be set")
	}
	if c.HTTPRetries < 1 {
		return fmt.Errorf("config: HTTP_RETRIES must be at least 1, got %d", c.HTTPRetries)
	}
	if c.HTTPRetryDelay <= 0 {
		return fmt.Errorf("config: HTTP_RETRY_DELAY must be positive, got %s", c.HTTPRetryDelay)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
