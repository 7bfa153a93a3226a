package config

import (
	"fmt"
	"os"
	"time"
)

// ExportConfig bounds export rendering time.
type ExportConfig struct {
	Timeout time.Duration
}

// NewExportConfig reads EXPORT_TIMEOUT (a Go duration string, default 60s)
// from the environment.
func NewExportConfig() (*ExportConfig, error) {
	timeout := 60 * time.Second
	if raw := os.Getenv("EXPORT_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid EXPORT_TIMEOUT: %v", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("EXPORT_TIMEOUT must be positive, got: %s", parsed)
		}
		timeout = parsed
	}
	return &ExportConfig{Timeout: timeout}, nil
}
