// Package jsonl persists session trajectories as JSON Lines, one step per
// line, in <dir>/<session-id>.jsonl.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

const (
	transcriptDirMode  = 0o700
	transcriptFileMode = 0o600
	transcriptExt      = ".jsonl"
)

type Sink struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	closed bool
}

var _ ports.TrajectorySink = (*Sink)(nil)

// Path is where the transcript of sessionID lives under dir.
func Path(dir, sessionID string) (string, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(filepath.Clean(dir), id+transcriptExt), nil
}

// NewSink creates the transcript file. An existing transcript for the same
// session is never overwritten.
func NewSink(dir, sessionID string) (*Sink, error) {
	path, err := Path(dir, sessionID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), transcriptDirMode); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, transcriptFileMode)
	if err != nil {
		return nil, fmt.Errorf("create transcript %q: %w", path, err)
	}

	return &Sink{path: path, file: file, writer: bufio.NewWriter(file)}, nil
}

func (s *Sink) Path() string {
	return s.path
}

func (s *Sink) Append(ctx context.Context, step domain.TrajectoryStep) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("encode step %d: %w", step.Turn, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("transcript is closed")
	}
	if _, err := s.writer.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write step %d: %w", step.Turn, err)
	}

	return nil
}

// Flush pushes buffered steps to disk and syncs the file.
func (s *Sink) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.flushLocked()
}

func (s *Sink) flushLocked() error {
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush transcript: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync transcript: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.flushLocked()
	if err := s.file.Close(); err != nil {
		return errors.Join(flushErr, fmt.Errorf("close transcript: %w", err))
	}
	return flushErr
}
