package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := c.WSD.validate(); err != nil {
		return fmt.Errorf("wsd: %w", err)
	}
	if err := c.WSDClient.validate(); err != nil {
		return fmt.Errorf("wsd_client: %w", err)
	}
	if c.Train.WordsLimit < 0 {
		return fmt.Errorf("train: words_limit must be >= 0 (got %d)", c.Train.WordsLimit)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log: format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *IngestConfig) validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue_capacity must be > 0 (got %d)", c.QueueCapacity)
	}
	if c.ClassifyWorkers <= 0 {
		return fmt.Errorf("classify_workers must be > 0 (got %d)", c.ClassifyWorkers)
	}
	return nil
}

func (c *WSDConfig) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535 (got %d)", c.Port)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be > 0 (got %d)", c.MaxRequestBytes)
	}
	if c.FeatureWindow < 0 {
		return fmt.Errorf("feature_window must be >= 0 (got %d)", c.FeatureWindow)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be > 0")
	}
	return nil
}

func (c *WSDClientConfig) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Connections <= 0 {
		return fmt.Errorf("connections must be > 0 (got %d)", c.Connections)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", c.Timeout)
	}
	return nil
}
