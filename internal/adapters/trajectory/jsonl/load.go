package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bnema/sparky/internal/domain"
)

const maxLineBytes = 4 << 20

// Load reads a transcript written by Sink. Blank lines are skipped; a line
// that does not decode or breaks turn order fails with
// domain.ErrTranscriptCorrupt and its line number.
func Load(path string) ([]domain.TrajectoryStep, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func Decode(r io.Reader) ([]domain.TrajectoryStep, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var steps []domain.TrajectoryStep
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var step domain.TrajectoryStep
		if err := json.Unmarshal(line, &step); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrTranscriptCorrupt, lineNo, err)
		}
		if step.Turn != len(steps) {
			return nil, fmt.Errorf("%w: line %d: turn %d follows %d steps", domain.ErrTranscriptCorrupt, lineNo, step.Turn, len(steps))
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	return steps, nil
}
