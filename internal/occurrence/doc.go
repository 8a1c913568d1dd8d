// Package occurrence counts how often each link appears in a duplicates or
// to-crawl list.
package occurrence
