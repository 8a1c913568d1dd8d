// Package config provides configuration structures and utilities for
// crawlconv. It defines the conversion options taken from CLI flags and the
// optional .crawlconv file that sets per-kind defaults.
package config
