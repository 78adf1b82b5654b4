package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	BackendURL        string // managed backend base URL
	BackendServiceKey string // service-level API key, sent as apikey header

	APNSKeyID          string
	APNSTeamID         string
	APNSPrivateKey     string // inline PEM; takes precedence over the path
	APNSPrivateKeyPath string
	APNSBundleID       string
	APNSHost           string // empty selects the sandbox gateway

	StoreDir string // app-group shared key-value store directory
	SpoolDir string // widget render output directory

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		BackendURL:        getEnv("BACKEND_URL", ""),
		BackendServiceKey: getEnv("BACKEND_SERVICE_KEY", ""),

		APNSKeyID:          getEnv("APNS_KEY_ID", ""),
		APNSTeamID:         getEnv("APNS_TEAM_ID", ""),
		APNSPrivateKey:     getEnv("APNS_PRIVATE_KEY", ""),
		APNSPrivateKeyPath: getEnv("APNS_PRIVATE_KEY_PATH", ""),
		APNSBundleID:       getEnv("APNS_BUNDLE_ID", ""),
		APNSHost:           getEnv("APNS_HOST", ""),

		StoreDir: getEnv("SHARED_STORE_DIR", "./shared"),
		SpoolDir: getEnv("WIDGET_SPOOL_DIR", "./spool"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// ValidateBackend reports an error when the backend connection config is
// incomplete. Configuration errors fail the invocation and are never retried.
func (c *Config) ValidateBackend() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.BackendServiceKey == "" {
		return fmt.Errorf("BACKEND_SERVICE_KEY is required")
	}
	return nil
}

// ValidatePush reports an error when the push signing config is incomplete.
func (c *Config) ValidatePush() error {
	var missing []string
	if c.APNSKeyID == "" {
		missing = append(missing, "APNS_KEY_ID")
	}
	if c.APNSTeamID == "" {
		missing = append(missing, "APNS_TEAM_ID")
	}
	if c.APNSPrivateKey == "" && c.APNSPrivateKeyPath == "" {
		missing = append(missing, "APNS_PRIVATE_KEY")
	}
	if c.APNSBundleID == "" {
		missing = append(missing, "APNS_BUNDLE_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing push config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// APNSPrivateKeyPEM returns the signing key PEM, reading the file path when
// the key is not provided inline.
func (c *Config) APNSPrivateKeyPEM() ([]byte, error) {
	if c.APNSPrivateKey != "" {
		return []byte(c.APNSPrivateKey), nil
	}
	return os.ReadFile(c.APNSPrivateKeyPath)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
