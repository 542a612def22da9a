package config

import (
	"fmt"
)

// CatalogConfig extends BaseConfig with catalog-specific settings
type CatalogConfig struct {
	BaseConfig `koanf:",squash"`
	Catalog    CatalogSettings `koanf:"catalog"`
}

// CatalogSettings contains catalog service specific settings
type CatalogSettings struct {
	// NotifyOnCreate controls whether a notification is published after
	// a film is added to the catalog.
	NotifyOnCreate bool `koanf:"notify_on_create"`
	// SearchLimit caps the number of films an unpaged search returns.
	// Zero means unlimited.
	SearchLimit int `koanf:"search_limit"`
}

// Validate validates the catalog configuration
func (c *CatalogConfig) Validate() error {
	if err := c.BaseConfig.Validate(); err != nil {
		return err
	}
	if c.Catalog.SearchLimit < 0 {
		return fmt.Errorf("search limit must not be negative")
	}
	return nil
}

// GetDefaultCatalogConfig returns default catalog configuration
func GetDefaultCatalogConfig() *CatalogConfig {
	base := GetDefaults()
	base.Service.Name = "kinothek"
	base.Service.Port = DefaultHTTPPort

	return &CatalogConfig{
		BaseConfig: *base,
		Catalog: CatalogSettings{
			NotifyOnCreate: true,
			SearchLimit:    0,
		},
	}
}
