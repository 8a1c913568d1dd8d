// Package prompt asks questions on a terminal.
//
// A Prompter reads answers line by line from an io.Reader and writes the
// questions and status messages to an io.Writer, colouring them with
// github.com/fatih/color when the terminal supports it. It backs the
// interactive flow of crawlconv that runs when no arguments are given.
package prompt
