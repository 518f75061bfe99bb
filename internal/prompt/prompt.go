// Package prompt provides the typed-confirmation capability used before
// destructive actions. The orchestrator depends only on Prompter, so tests
// and non-interactive runs substitute their own answers.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the operator to type a confirmation token.
type Prompter interface {
	// ConfirmToken shows message, reads one line and reports whether it
	// equals token exactly (case-sensitive, surrounding whitespace ignored).
	// End of input counts as a declined confirmation.
	ConfirmToken(ctx context.Context, message, token string) (bool, error)
}

// InteractivePrompter reads answers from a line-oriented reader.
type InteractivePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewInteractivePrompter prompts on stdout and reads stdin.
func NewInteractivePrompter() *InteractivePrompter {
	return NewInteractivePrompterWithIO(os.Stdin, os.Stdout)
}

// NewInteractivePrompterWithIO prompts on w and reads r.
func NewInteractivePrompterWithIO(r io.Reader, w io.Writer) *InteractivePrompter {
	return &InteractivePrompter{reader: bufio.NewReader(r), writer: w}
}

// ConfirmToken implements Prompter.
func (p *InteractivePrompter) ConfirmToken(ctx context.Context, message, token string) (bool, error) {
	fmt.Fprintf(p.writer, "%s\nType %s to continue: ", message, token)

	type readResult struct {
		line string
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.writer)
		return false, ctx.Err()
	case res := <-ch:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return false, fmt.Errorf("read confirmation: %w", res.err)
		}
		if errors.Is(res.err, io.EOF) && res.line == "" {
			fmt.Fprintln(p.writer)
		}
		return strings.TrimSpace(res.line) == token, nil
	}
}

// StaticPrompter answers every confirmation with a preset value, for
// `rebuild --confirm <token>`.
type StaticPrompter struct {
	Answer string
	Writer io.Writer
}

// ConfirmToken implements Prompter.
func (p StaticPrompter) ConfirmToken(_ context.Context, message, token string) (bool, error) {
	if p.Writer != nil {
		fmt.Fprintf(p.Writer, "%s\nConfirmation supplied on the command line.\n", message)
	}
	return p.Answer == token, nil
}
