package config

import (
	"fmt"
	"time"
)

type SearchConfig struct {
	// MaxResults is the hard cap on vacancies accumulated per fetch.
	MaxResults int `mapstructure:"max_results"`
	// CacheTTL is how long one fetched result set is reused.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (config SearchConfig) validate() error {

	if config.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}

	if config.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive")
	}

	return nil
}
