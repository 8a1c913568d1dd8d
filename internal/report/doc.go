// Package report writes converted crawler output.
//
// This package contains one writer per output format:
//   - CSVWriter: the analyzer format (crawl table or link/occurrence table)
//   - TextWriter: the input lines as-is
//   - HTMLWriter: a page of links for browsing
//   - MarkdownWriter: the table as a Markdown document
//   - JSONWriter: the table as JSON
//
// SimpleWriter is different: it prints a human-readable summary of
// finished conversions to the terminal.
//
// Writers implement the Writer interface and are selected with ForFormat.
package report
