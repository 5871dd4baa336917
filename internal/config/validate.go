package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Classifier.validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	return nil
}

func (c *ClassifierConfig) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", c.MaxTokens)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", c.MaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be >= 0 (got %v)", c.RetryDelay)
	}
	return nil
}

func (c *IngestConfig) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be >= 1 (got %d)", c.MaxConcurrent)
	}
	if c.RetryCooldown < 0 {
		return fmt.Errorf("retry_cooldown must be >= 0 (got %v)", c.RetryCooldown)
	}
	if c.PreviewLength < 1 {
		return fmt.Errorf("preview_length must be >= 1 (got %d)", c.PreviewLength)
	}
	return nil
}
