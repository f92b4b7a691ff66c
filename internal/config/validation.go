package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if err := c.validateSources(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateWarehouse(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateReport(); err != nil {
		errors = append(errors, err...)
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSources() ValidationErrors {
	var errors ValidationErrors

	counts := []struct {
		field string
		value int
	}{
		{"sources.web_scraped_records", c.Sources.WebScrapedRecords},
		{"sources.api_records", c.Sources.APIRecords},
		{"sources.database_records", c.Sources.DatabaseRecords},
		{"sources.streaming_records", c.Sources.StreamingRecords},
	}

	for _, count := range counts {
		if count.value < 0 {
			errors = append(errors, ValidationError{
				Field:   count.field,
				Message: "record count cannot be negative",
			})
		}
	}

	return errors
}

func (c *Config) validateWarehouse() ValidationErrors {
	var errors ValidationErrors

	switch c.Warehouse.Driver {
	case "sqlite", "":
		if c.Warehouse.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "warehouse.path",
				Message: "path is required for the sqlite driver",
			})
		}
	case "mysql":
		if c.Warehouse.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "warehouse.host",
				Message: "host is required for the mysql driver",
			})
		}
		if c.Warehouse.Port <= 0 || c.Warehouse.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "warehouse.port",
				Message: "port must be between 1 and 65535",
			})
		}
		if c.Warehouse.User == "" {
			errors = append(errors, ValidationError{
				Field:   "warehouse.user",
				Message: "user is required for the mysql driver",
			})
		}
		if c.Warehouse.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "warehouse.database",
				Message: "database name is required for the mysql driver",
			})
		}
		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[c.Warehouse.TLS] {
			errors = append(errors, ValidationError{
				Field:   "warehouse.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "warehouse.driver",
			Message: "driver must be 'sqlite' or 'mysql'",
		})
	}

	if c.Warehouse.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "warehouse.max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if c.Warehouse.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   "warehouse.max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	if c.Report.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "report.path",
			Message: "path is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
