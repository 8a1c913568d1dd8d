// Package main provides the entry point for the crawlconv CLI.
//
// crawlconv converts the text output of a web crawler into CSV, plain
// text, HTML, Markdown or JSON for a downstream analyzer. A crawled file
// is rebuilt into a table with one column per crawl tier; a duplicates or
// to-crawl file becomes a list of unique links with occurrence counts.
//
// Usage:
//
//	crawlconv
//	crawlconv convert --type crawled links.txt
//	crawlconv convert --type links --format md duplicates.txt tocrawl.txt
//
// Running crawlconv without arguments asks for the input interactively.
// See --help for all available options.
package main

// main is the entry point for crawlconv.
func main() {
	Execute()
}
