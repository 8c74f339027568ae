package config

import (
	"fmt"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.OutputFormat.Valid() {
		return fmt.Errorf("unknown output mode %q", c.OutputFormat)
	}
	if c.Preview < 0 {
		return fmt.Errorf("preview must not be negative, got %d", c.Preview)
	}
	if strings.TrimSpace(c.IDColumn) == "" {
		return fmt.Errorf("id_column is required")
	}
	if strings.TrimSpace(c.DescriptionColumn) == "" {
		return fmt.Errorf("description_column is required")
	}
	if strings.TrimSpace(c.OutFile) == "" {
		return fmt.Errorf("out_file is required")
	}
	return nil
}
