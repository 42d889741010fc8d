// Package config loads synchronization settings from TOML files.
//
// All settings have working defaults; a missing config file is not an error.
// A watcher built on fsnotify supports live reload so debounce and diff
// thresholds can be tuned without restarting.
package config
