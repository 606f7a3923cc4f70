package settings

import "fmt"

const (
	DefaultReadTimeoutMs ReadTimeoutMs = 5000
	// DefaultBufferSize is the capacity of a reader's reusable buffer.
	DefaultBufferSize = 16 * 1024
	MaxBufferSize     = 16 * 1024 * 1024
)

type ReadConfig struct {
	ReadTimeoutMs ReadTimeoutMs `json:"ReadTimeoutMs"`
	BufferSize    int           `json:"BufferSize"`
}

// WithDefaults fills zero fields. Negative values are kept so Validate can
// reject them.
func (c ReadConfig) WithDefaults() ReadConfig {
	if c.ReadTimeoutMs == 0 {
		c.ReadTimeoutMs = DefaultReadTimeoutMs
	}
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	return c
}

func (c ReadConfig) Validate() error {
	if c.ReadTimeoutMs <= 0 {
		return fmt.Errorf("ReadTimeoutMs must be > 0, got %d", c.ReadTimeoutMs)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("BufferSize must be > 0, got %d", c.BufferSize)
	}
	if c.BufferSize > MaxBufferSize {
		return fmt.Errorf("BufferSize too large: %d > %d", c.BufferSize, MaxBufferSize)
	}
	return nil
}
