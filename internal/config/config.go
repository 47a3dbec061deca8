// Package config provides configuration helpers backed by Viper.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/brandmap/brandmap/pkg/errors"
)

// Well-known configuration keys. Each maps to the environment variable of
// the same name via viper.AutomaticEnv.
const (
	KeySupabaseURL        = "SUPABASE_URL"
	KeySupabaseServiceKey = "SUPABASE_SERVICE_ROLE_KEY"
	KeyFirecrawlAPIKey    = "FIRECRAWL_API_KEY"
	KeyStorageBucket      = "BRANDMAP_BUCKET"
)

// DefaultBucket is used when BRANDMAP_BUCKET is not set.
const DefaultBucket = "logos"

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Require returns the value for key or a ConfigError when it is unset.
func Require(key string) (string, error) {
	v := GetString(key)
	if v == "" {
		return "", &errors.ConfigError{
			Component: "config",
			Message:   "required setting " + key + " is not set",
		}
	}
	return v, nil
}

// Bucket returns the configured storage bucket name.
func Bucket() string {
	if v := GetString(KeyStorageBucket); v != "" {
		return v
	}
	return DefaultBucket
}

// FirecrawlAPIKey returns the Firecrawl API key, or ErrAPIKeyRequired
// wrapped in a ConfigError when missing.
func FirecrawlAPIKey() (string, error) {
	v := GetString(KeyFirecrawlAPIKey)
	if v == "" {
		return "", errors.ErrAPIKeyRequired
	}
	return v, nil
}
