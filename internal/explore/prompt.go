package explore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks numbered-menu questions on a line-oriented stream. Invalid answers are
// reported and the question is asked again; end of input returns io.EOF.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes menus to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	fmt.Fprint(p.out, "> ")
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Choose prints options numbered from 1 and returns the zero-based index picked.
func (p *Prompter) Choose(question string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options for %q", question)
	}
	for {
		fmt.Fprintln(p.out, question)
		for i, o := range options {
			fmt.Fprintf(p.out, "  %d. %s\n", i+1, o)
		}
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "⚠ Invalid option %q, enter a number between 1 and %d\n", line, len(options))
	}
}

// Confirm asks a yes/no question as a two-entry menu.
func (p *Prompter) Confirm(question string) (bool, error) {
	i, err := p.Choose(question, []string{"Yes", "No"})
	if err != nil {
		return false, err
	}
	return i == 0, nil
}
