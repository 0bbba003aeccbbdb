// Package config loads and validates the devreg configuration.
//
// Configuration comes from three layers, each overriding the last:
//
//  1. Hardcoded defaults
//  2. YAML file (configs/config.yaml by default)
//  3. Environment variables (DEVREG_SECTION_KEY)
//
// A missing config file is not an error: the service runs on defaults plus
// environment overrides, so a bare deployment only needs DEVREG_* variables.
package config
