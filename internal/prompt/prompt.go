package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	// ErrNoInput is returned when the input ends before an answer is given.
	ErrNoInput = errors.New("no input")

	// ErrNotAChoice is returned when a menu answer is not one of the
	// numbered choices.
	ErrNotAChoice = errors.New("not a choice")
)

// Prompter asks questions and reads the answers.
// A Prompter is not safe for concurrent use.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer

	question *color.Color
	info     *color.Color
	success  *color.Color
	warning  *color.Color
}

// New creates a Prompter reading answers from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader:   bufio.NewReader(in),
		out:      out,
		question: color.New(color.FgCyan, color.Bold),
		info:     color.New(color.FgBlue),
		success:  color.New(color.FgGreen),
		warning:  color.New(color.FgYellow),
	}
}

// Println writes its operands as an uncoloured line, separated by spaces.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Info writes an informational line.
func (p *Prompter) Info(format string, args ...any) {
	p.info.Fprintf(p.out, format+"\n", args...)
}

// Success writes a line reporting that something finished.
func (p *Prompter) Success(format string, args ...any) {
	p.success.Fprintf(p.out, format+"\n", args...)
}

// Warn writes a warning line.
func (p *Prompter) Warn(format string, args ...any) {
	p.warning.Fprintf(p.out, format+"\n", args...)
}

// Ask prints message and returns the trimmed answer, which may be empty.
func (p *Prompter) Ask(message string) (string, error) {
	p.question.Fprintf(p.out, "%s: ", message)
	return p.readLine()
}

// AskDefault is like Ask but returns defaultValue for an empty answer.
func (p *Prompter) AskDefault(message, defaultValue string) (string, error) {
	answer, err := p.Ask(fmt.Sprintf("%s [%s]", message, defaultValue))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// AskRequired repeats message until a non-empty answer is given.
func (p *Prompter) AskRequired(message string) (string, error) {
	for {
		answer, err := p.Ask(message)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.Warn("An answer is required.")
	}
}

// Choose prints message followed by a numbered list of choices and
// returns the 1-based number picked. An answer that is not a listed number
// returns ErrNotAChoice.
func (p *Prompter) Choose(message string, choices []string) (int, error) {
	p.Println(message)
	for i, c := range choices {
		p.Println(strconv.Itoa(i+1)+".", c)
	}

	answer, err := p.Ask("Choice")
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(choices) {
		return 0, fmt.Errorf("%w: %q", ErrNotAChoice, answer)
	}
	return n, nil
}

// Confirm asks a yes/no question until it gets y, yes, n or no.
// An empty answer returns defaultValue.
func (p *Prompter) Confirm(message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		answer, err := p.Ask(fmt.Sprintf("%s [%s]", message, hint))
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Warn("Please answer y or n.")
	}
}

// readLine returns the next line without surrounding white space.
// The last line is accepted without a trailing newline.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
