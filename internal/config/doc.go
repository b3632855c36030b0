// Package config provides configuration structures and utilities for
// credscan. It defines the main configuration options for dump parsing,
// analysis behavior, and report generation preferences.
package config
