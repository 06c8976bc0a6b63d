// Package config provides configuration structures and utilities for
// linktrail. It defines the crawl options (page budget, timeouts,
// politeness delay, fetch mode), per-host overrides loaded from a YAML
// file, and report generation preferences.
package config
