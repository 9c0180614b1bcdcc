// Package rsp collects bundle options interactively and writes them as a
// response file holding one equivalent command line.
package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"codebundle/pkg/bundle"

	"github.com/kballard/go-shellquote"
)

// ProgramName starts every generated command line.
const ProgramName = "codebundle"

// DefaultFile is where the response file is written when no path is given.
const DefaultFile = "bundle.rsp"

// ErrInputClosed is returned when input ends before every question is answered.
var ErrInputClosed = errors.New("input closed before all answers were given")

// Answers are the collected bundle options.
type Answers struct {
	Language         string
	Output           string
	IncludeSource    bool
	Sort             bundle.SortMode
	RemoveEmptyLines bool
	Author           string
}

// Args returns the argv equivalent of a, program name first.
func (a Answers) Args() []string {
	output := a.Output
	if output == "" {
		output = bundle.DefaultOutput
	}
	args := []string{ProgramName, "bundle", "--language", a.Language, "--output", output}
	if a.IncludeSource {
		args = append(args, "--include-source")
	}
	args = append(args, "--sort", a.Sort.String())
	if a.RemoveEmptyLines {
		args = append(args, "--remove")
	}
	if a.Author != "" {
		args = append(args, "--author", a.Author)
	}
	return args
}

// CommandLine returns Args shell-quoted as a single line.
func (a Answers) CommandLine() string {
	return shellquote.Join(a.Args()...)
}

// WriteFile writes a's command line to path, replacing any existing file.
func WriteFile(path string, a Answers) error {
	if path == "" {
		path = DefaultFile
	}
	if err := os.WriteFile(path, []byte(a.CommandLine()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write response file %s: %w", path, err)
	}
	return nil
}

// Prompter asks one question per line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Collect asks for every option in order. Invalid language or sort answers
// are asked again.
func (p *Prompter) Collect() (Answers, error) {
	var a Answers
	var err error

	for {
		a.Language, err = p.ask(fmt.Sprintf("Language (%s): ", strings.Join(bundle.LanguageKeys(), ", ")))
		if err != nil {
			return a, err
		}
		_, resolveErr := bundle.ResolveExtensions(a.Language)
		if resolveErr == nil {
			a.Language = strings.ToLower(a.Language)
			break
		}
		fmt.Fprintf(p.out, "%v\n", resolveErr)
	}

	if a.Output, err = p.ask(fmt.Sprintf("Output file [%s]: ", bundle.DefaultOutput)); err != nil {
		return a, err
	}

	if a.IncludeSource, err = p.askYesNo("Include source file path comments? (y/n) [n]: "); err != nil {
		return a, err
	}

	for {
		answer, askErr := p.ask("Sort by (name/type) [name]: ")
		if askErr != nil {
			return a, askErr
		}
		mode, parseErr := bundle.ParseSortMode(answer)
		if parseErr == nil {
			a.Sort = mode
			break
		}
		fmt.Fprintf(p.out, "%v\n", parseErr)
	}

	if a.RemoveEmptyLines, err = p.askYesNo("Remove empty lines? (y/n) [n]: "); err != nil {
		return a, err
	}

	if a.Author, err = p.ask("Author (optional): "); err != nil {
		return a, err
	}
	return a, nil
}

// ask prints question and returns the trimmed answer line.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// askYesNo accepts y/yes and n/no (case-insensitive); empty means no.
func (p *Prompter) askYesNo(question string) (bool, error) {
	for {
		answer, err := p.ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}
