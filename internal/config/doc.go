// Package config provides configuration structures and utilities for cachebust.
// It defines the options of a cache-bust run, the optional .cachebust YAML
// file and the XDG directories used for configuration and run history.
package config
