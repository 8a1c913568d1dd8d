// Package crawllog reads and classifies the line-oriented output of a web
// crawler.
//
// A crawl log looks like this:
//
//	http://example.com
//	2 from http://example.com
//	http://example.com/a
//	http://example.com/b
//	1 from http://example.com/a
//	http://example.com/a/c
//
// The first line is the origin. A tier marker ("<count> from <url>")
// declares that the following count lines were discovered on <url>.
// Every other non-blank line is a data line.
//
// Duplicates and to-crawl files use the same reader but contain only
// data lines.
package crawllog
