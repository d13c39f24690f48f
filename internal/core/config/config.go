package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Backend holds the upstream ERP API configuration.
	Backend BackendConfig `mapstructure:",squash"`

	// Redis holds the query cache connection details.
	Redis RedisConfig `mapstructure:",squash"`

	// Cache holds query cache tuning.
	Cache CacheConfig `mapstructure:",squash"`
}

// BackendConfig holds the connection details for the upstream ERP backend.
type BackendConfig struct {
	// BaseURL is the base URL of the backend API (e.g., https://erp.example.com).
	BaseURL string `mapstructure:"BACKEND_URL" required:"true"`
	// APIToken is the bearer token sent on every backend request.
	APIToken string `mapstructure:"BACKEND_API_TOKEN" required:"true"`
	// TimeoutSeconds is the per-request timeout for backend calls.
	TimeoutSeconds int `mapstructure:"BACKEND_TIMEOUT_SECONDS" default:"10"`
}

// RedisConfig holds the Redis connection details for the query cache.
type RedisConfig struct {
	// URL is the Redis connection string, e.g. redis://localhost:6379/0.
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
}

// CacheConfig holds TTLs for cached query results.
type CacheConfig struct {
	// ListTTLSeconds is how long list query results stay fresh.
	ListTTLSeconds int `mapstructure:"CACHE_LIST_TTL_SECONDS" default:"60"`
	// DetailTTLSeconds is how long detail query results stay fresh.
	DetailTTLSeconds int `mapstructure:"CACHE_DETAIL_TTL_SECONDS" default:"300"`
}

// BackendTimeout returns the backend request timeout as a duration.
func (c *AppConfig) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// ListTTL returns the list cache TTL as a duration.
func (c *AppConfig) ListTTL() time.Duration {
	return time.Duration(c.Cache.ListTTLSeconds) * time.Second
}

// DetailTTL returns the detail cache TTL as a duration.
func (c *AppConfig) DetailTTL() time.Duration {
	return time.Duration(c.Cache.DetailTTLSeconds) * time.Second
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
