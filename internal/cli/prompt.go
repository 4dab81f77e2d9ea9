package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Prompter asks the user for a single value.
type Prompter interface {
	Ask(question, def string) (string, error)
}

// NewPrompter returns an interactive prompter when in is a terminal and a
// line reader otherwise, so answers can be piped in.
func NewPrompter(in *os.File, out *Output) Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return &SurveyPrompter{}
	}
	return NewLinePrompter(in, out)
}

// SurveyPrompter asks on the controlling terminal.
type SurveyPrompter struct{}

func (p *SurveyPrompter) Ask(question, def string) (string, error) {
	var answer string
	prompt := &survey.Input{Message: question, Default: def}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// LinePrompter prints the question and reads one line. An empty answer or
// end of input selects the default.
type LinePrompter struct {
	in  *bufio.Reader
	out *Output
}

// NewLinePrompter creates a prompter reading from in.
func NewLinePrompter(in io.Reader, out *Output) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) Ask(question, def string) (string, error) {
	fmt.Fprint(p.out.Writer(), p.out.Question(question, def))

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer, nil
	}
	return def, nil
}
