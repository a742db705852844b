// Package config loads and validates the YAML configuration shared by the
// pipeline command-line tools.
package config
