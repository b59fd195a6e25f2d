package btree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko"
)

const (
	// DefaultDegree is the default maximum number of children per internal node.
	DefaultDegree = 12
	// DefaultMinFill is the default lower occupancy bound for non-root internal nodes.
	DefaultMinFill = 6
)

// Storage selects the backing strategy for arrays of child nodes.
type Storage int

const (
	// SharedStorage backs child arrays with an atomic reference count.
	// Arrays are shared between trees and copied on write.
	SharedStorage Storage = iota
	// ExclusiveStorage gives every tree its own child arrays. Cloning a
	// node deep-copies its subtree.
	ExclusiveStorage
)

func (s Storage) String() string {
	switch s {
	case SharedStorage:
		return "shared"
	case ExclusiveStorage:
		return "exclusive"
	}
	return fmt.Sprintf("Storage(%d)", int(s))
}

// Config configures the shape of a tree.
//
// The zero value is usable and denotes the defaults.
type Config struct {
	// MaxChildren is the maximum fan-out of internal nodes.
	MaxChildren int
	// MinChildren is the minimum fan-out of non-root internal nodes.
	MinChildren int
	// Storage selects the child-array backend.
	Storage Storage
}

// DefaultConfig returns a configuration with default degree and shared storage.
func DefaultConfig() Config {
	return Config{
		MaxChildren: DefaultDegree,
		MinChildren: DefaultMinFill,
		Storage:     SharedStorage,
	}
}

func (cfg Config) normalized() Config {
	if cfg.MaxChildren == 0 && cfg.MinChildren == 0 {
		cfg.MaxChildren = DefaultDegree
		cfg.MinChildren = DefaultMinFill
	} else if cfg.MinChildren == 0 {
		cfg.MinChildren = cfg.MaxChildren / 2
	} else if cfg.MaxChildren == 0 {
		cfg.MaxChildren = 2 * cfg.MinChildren
	}
	return cfg
}

// Validate checks that cfg describes a valid tree shape: at least one child
// per node and a maximum fan-out of at least twice the minimum. Zero fields
// are defaulted first.
func (cfg Config) Validate() error {
	cfg = cfg.normalized()
	if cfg.MinChildren < 1 {
		return fmt.Errorf("%w: minimum fan-out must be at least 1, is %d",
			ErrInvalidConfig, cfg.MinChildren)
	}
	if cfg.MaxChildren < 2*cfg.MinChildren {
		return fmt.Errorf("%w: maximum fan-out %d less than twice the minimum %d",
			ErrInvalidConfig, cfg.MaxChildren, cfg.MinChildren)
	}
	if cfg.Storage != SharedStorage && cfg.Storage != ExclusiveStorage {
		return fmt.Errorf("%w: unknown storage %v", ErrInvalidConfig, cfg.Storage)
	}
	return nil
}

// mustValidate returns cfg with defaults filled in. An invalid tree shape is
// a programming error and panics with an ErrInvalidConfig error.
func (cfg Config) mustValidate() Config {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg.normalized()
}

// Option configures a tree shape, see NewConfig.
type Option func(Config) Config

// Degree sets the maximum number of children of internal nodes.
// If the minimum has not been set explicitly, it follows as half of it.
func Degree(n int) Option {
	return func(cfg Config) Config {
		cfg.MaxChildren = n
		return cfg
	}
}

// MinFill sets the minimum number of children of non-root internal nodes.
func MinFill(n int) Option {
	return func(cfg Config) Config {
		cfg.MinChildren = n
		return cfg
	}
}

// WithStorage selects the child-array backend.
func WithStorage(s Storage) Option {
	return func(cfg Config) Config {
		cfg.Storage = s
		return cfg
	}
}

// NewConfig creates a validated configuration from options.
// Without options it returns the default configuration.
func NewConfig(opts ...Option) (Config, error) {
	var cfg Config
	for _, option := range opts {
		cfg = option(cfg)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Configuration keys read by ConfigFrom.
const (
	KeyMaxChildren = "btree.maxchildren"
	KeyMinChildren = "btree.minchildren"
	KeyStorage     = "btree.storage"
)

// ConfigFrom reads a tree shape from an application configuration.
// Keys which are not set keep their defaults.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	var opts []Option
	if conf.IsSet(KeyMaxChildren) {
		opts = append(opts, Degree(conf.GetInt(KeyMaxChildren)))
	}
	if conf.IsSet(KeyMinChildren) {
		opts = append(opts, MinFill(conf.GetInt(KeyMinChildren)))
	}
	if conf.IsSet(KeyStorage) {
		switch s := strings.ToLower(conf.GetString(KeyStorage)); s {
		case "shared", "rc":
			opts = append(opts, WithStorage(SharedStorage))
		case "exclusive", "box":
			opts = append(opts, WithStorage(ExclusiveStorage))
		default:
			return Config{}, fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, s)
		}
	}
	return NewConfig(opts...)
}
