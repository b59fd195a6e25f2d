package main

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko"
)

// flagConfig holds configuration values collected from command line flags.
type flagConfig map[string]interface{}

var _ schuko.Configuration = flagConfig{}

// InitDefaults does nothing, as flags carry their own defaults.
func (c flagConfig) InitDefaults() {}

// IsSet returns true if a value for key has been set.
func (c flagConfig) IsSet(key string) bool {
	_, found := c[key]
	return found
}

func (c flagConfig) GetString(key string) string {
	v, found := c[key]
	if !found {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetInt returns the value for key as an integer, or 0 if it is not set or
// not a number.
func (c flagConfig) GetInt(key string) int {
	switch x := c[key].(type) {
	case int:
		return x
	case string:
		n, _ := strconv.Atoi(x)
		return n
	}
	return 0
}

func (c flagConfig) GetBool(key string) bool {
	switch x := c[key].(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	}
	return false
}

func (c flagConfig) IsInteractive() bool {
	return false
}
