// Package prompt collects applicant input interactively.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when input ends or the user interrupts a prompt.
var ErrAborted = errors.New("input aborted")

// Prompter asks the user questions.
type Prompter interface {
	Text(question string) (string, error)
	Confirm(question string) (bool, error)
}

// Readline prompts on a terminal with line editing and tab completion.
type Readline struct {
	rl *readline.Instance
}

// NewReadline creates a terminal prompter. completions are offered on tab,
// typically the rate sheets found in the data directory.
func NewReadline(completions []string) (*Readline, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(completions))
	for _, c := range completions {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("initializing prompt: %w", err)
	}
	return &Readline{rl: rl}, nil
}

// Text asks question and returns the trimmed answer.
func (p *Readline) Text(question string) (string, error) {
	p.rl.SetPrompt(question + " ")
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Anything but yes is no.
func (p *Readline) Confirm(question string) (bool, error) {
	return confirm(p, question)
}

// Close restores the terminal.
func (p *Readline) Close() error {
	return p.rl.Close()
}

// Lines prompts over plain streams, one answer per line. It serves piped
// input where there is no terminal to edit on.
type Lines struct {
	r *bufio.Reader
	w io.Writer
}

// NewLines creates a prompter reading answers from r and writing questions to w.
func NewLines(r io.Reader, w io.Writer) *Lines {
	return &Lines{r: bufio.NewReader(r), w: w}
}

// Text asks question and returns the trimmed answer. A final answer without
// a trailing newline is accepted.
func (p *Lines) Text(question string) (string, error) {
	fmt.Fprintf(p.w, "%s ", question)
	line, err := p.r.ReadString('\n')
	fmt.Fprintln(p.w)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Anything but yes is no.
func (p *Lines) Confirm(question string) (bool, error) {
	return confirm(p, question)
}

func confirm(p Prompter, question string) (bool, error) {
	answer, err := p.Text(question + " (y/N)")
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer means yes.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
