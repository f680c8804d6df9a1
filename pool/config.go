// File: pool/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Declarative pool configuration, loadable from a control.ConfigStore snapshot.

package pool

import (
	"fmt"
	"math"

	"github.com/momentics/hioload-blockpool/api"
)

// Keys understood by ConfigFromMap.
const (
	KeyCapacity    = "blockpool.capacity"
	KeyBlockSize   = "blockpool.block_size"
	KeyBacking     = "blockpool.backing"
	KeyMemoryLimit = "blockpool.memory_limit"
	KeyDebugChecks = "blockpool.debug_checks"
)

// Config describes a FixedBlockPool.
type Config struct {
	Capacity    int
	BlockSize   int
	Backing     Backing
	MemoryLimit int
	DebugChecks bool
}

// DefaultConfig returns 1024 blocks of 4 KiB on the heap.
func DefaultConfig() Config {
	return Config{
		Capacity:  1024,
		BlockSize: 4096,
		Backing:   BackingHeap,
	}
}

// Validate reports the first invalid field as ErrInvalidConfig.
func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return invalidConfig("block size must be positive", c.Capacity, c.BlockSize)
	}
	if c.Capacity < 0 || c.Capacity > MaxCapacity {
		return invalidConfig("capacity out of range", c.Capacity, c.BlockSize).
			WithContext("max_capacity", MaxCapacity)
	}
	if c.MemoryLimit < 0 {
		return invalidConfig("memory limit must not be negative", c.Capacity, c.BlockSize).
			WithContext("memory_limit", c.MemoryLimit)
	}
	if c.Backing != BackingHeap && c.Backing != BackingMmap {
		return invalidConfig("unknown backing", c.Capacity, c.BlockSize).
			WithContext("backing", c.Backing.String())
	}
	return nil
}

// Options converts c into construction options.
func (c Config) Options() []Option {
	return []Option{
		WithBacking(c.Backing),
		WithMemoryLimit(c.MemoryLimit),
		WithDebugChecks(c.DebugChecks),
	}
}

// NewFromConfig validates cfg and builds a pool from it.
// Extra opts are applied after the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*FixedBlockPool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.Capacity, cfg.BlockSize, append(cfg.Options(), opts...)...)
}

// ConfigFromMap overlays the blockpool.* keys of m onto DefaultConfig.
// Numeric values may be any Go integer type or a float64 holding an integer (JSON).
func ConfigFromMap(m map[string]any) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if v, ok := m[KeyCapacity]; ok {
		if cfg.Capacity, err = toInt(KeyCapacity, v); err != nil {
			return cfg, err
		}
	}
	if v, ok := m[KeyBlockSize]; ok {
		if cfg.BlockSize, err = toInt(KeyBlockSize, v); err != nil {
			return cfg, err
		}
	}
	if v, ok := m[KeyMemoryLimit]; ok {
		if cfg.MemoryLimit, err = toInt(KeyMemoryLimit, v); err != nil {
			return cfg, err
		}
	}
	if v, ok := m[KeyBacking]; ok {
		s, isStr := v.(string)
		if !isStr {
			return cfg, typeMismatch(KeyBacking, v)
		}
		if cfg.Backing, err = ParseBacking(s); err != nil {
			return cfg, api.NewError(api.ErrCodeInvalidConfig, err.Error()).WithContext("key", KeyBacking)
		}
	}
	if v, ok := m[KeyDebugChecks]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return cfg, typeMismatch(KeyDebugChecks, v)
		}
		cfg.DebugChecks = b
	}
	return cfg, cfg.Validate()
}

func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		if n > math.MaxInt {
			return 0, typeMismatch(key, v)
		}
		return int(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, typeMismatch(key, v)
		}
		return int(n), nil
	}
	return 0, typeMismatch(key, v)
}

func typeMismatch(key string, v any) *api.Error {
	return api.NewError(api.ErrCodeInvalidConfig, fmt.Sprintf("blockpool: unsupported value %v (%T)", v, v)).
		WithContext("key", key)
}

func invalidConfig(msg string, capacity, blockSize int) *api.Error {
	return api.NewError(api.ErrCodeInvalidConfig, "blockpool: "+msg).
		WithContext("capacity", capacity).
		WithContext("block_size", blockSize)
}
