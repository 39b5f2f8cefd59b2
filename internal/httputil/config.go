package httputil

import (
	"fmt"
	"strings"
	"time"
)

type HTTPClientConfig struct {
	BearerToken string        `toml:"bearer_token"`
	Timeout     time.Duration `toml:"timeout"`
}

func (c *HTTPClientConfig) Validate() error {
	if strings.TrimSpace(c.BearerToken) != c.BearerToken {
		return fmt.Errorf("bearer_token must not have surrounding whitespace")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
