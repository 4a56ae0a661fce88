package cmd

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
)

// errInterrupted is returned when the learner presses Ctrl-C at the prompt.
var errInterrupted = errors.New("interrupted")

type lineReader interface {
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type promptReader struct {
	rl *readline.Instance
}

func newPromptReader(prompt, historyFile string) (*promptReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return nil, err
	}
	return &promptReader{rl: rl}, nil
}

func (r *promptReader) ReadLine(ctx context.Context) (string, error) {
	return readAsync(ctx, func() (string, error) {
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", errInterrupted
		}
		return line, err
	})
}

func (r *promptReader) Close() error {
	return r.rl.Close()
}

type scanReader struct {
	scanner *bufio.Scanner
}

func newScanReader(in io.Reader) *scanReader {
	return &scanReader{scanner: bufio.NewScanner(in)}
}

func (r *scanReader) ReadLine(ctx context.Context) (string, error) {
	return readAsync(ctx, func() (string, error) {
		if r.scanner.Scan() {
			return r.scanner.Text(), nil
		}
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	})
}

func (r *scanReader) Close() error {
	return nil
}

// readAsync lets a blocked read lose against ctx. The abandoned read finishes
// on its own once input arrives or stdin closes.
func readAsync(ctx context.Context, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := read()
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.line, res.err
	}
}
