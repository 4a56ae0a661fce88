package jsonl

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStep(turn int) domain.TrajectoryStep {
	return domain.TrajectoryStep{
		Turn:        turn,
		At:          time.Date(2026, 3, 1, 9, 0, turn, 0, time.UTC),
		LearnerText: "我喜欢猫",
		Emotion:     domain.EmotionReading{Label: domain.EmotionHappy, Confidence: 0.8},
		Level:       domain.LanguageLevel{Stage: domain.StageL2, Score: 0.31, Pending: domain.DirectionUp, Streak: 1},
		Decision:    domain.Decision{Action: domain.ActionIntroduceWord, TargetWord: "狗", Rationale: "new word"},
		Reply:       "Wow! 狗 (gǒu) means dog!",
		Knowledge:   []domain.WordEntry{{Word: "狗", Exposures: 1, LastSeenTurn: turn, CleanStreak: 1}},
		Degraded:    []domain.Signal{domain.SignalEmotion},
	}
}

func TestSinkAppendFlushLoad(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "transcripts")
	sink, err := NewSink(dir, "session-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "session-1.jsonl"), sink.Path())

	ctx := context.Background()
	require.NoError(t, sink.Append(ctx, sampleStep(0)))
	require.NoError(t, sink.Append(ctx, sampleStep(1)))
	require.NoError(t, sink.Flush(ctx))

	steps, err := Load(sink.Path())
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, sampleStep(1), steps[1])

	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())

	info, err := os.Stat(sink.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(transcriptFileMode), info.Mode().Perm())

	data, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestSinkRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewSink(dir, "session-1")
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = NewSink(dir, "session-1")
	require.Error(t, err)
}

func TestSinkRejectsAppendAfterClose(t *testing.T) {
	t.Parallel()

	sink, err := NewSink(t.TempDir(), "session-1")
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	err = sink.Append(context.Background(), sampleStep(0))
	require.Error(t, err)
	assert.NoError(t, sink.Flush(context.Background()))
}

func TestPathRejectsUnsafeIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "  ", "../x", "a/b", `a\b`, "..", "."} {
		_, err := Path(t.TempDir(), id)
		assert.Error(t, err, id)
	}
}

func TestDecodeReportsCorruptLine(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "bad json", input: "{\"turn\":0}\n{not json}\n", wantErr: "line 2"},
		{name: "turn gap", input: "{\"turn\":0}\n\n{\"turn\":2}\n", wantErr: "line 3: turn 2 follows 1 steps"},
		{name: "does not start at zero", input: "{\"turn\":1}\n", wantErr: "line 1"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tc.input))
			require.ErrorIs(t, err, domain.ErrTranscriptCorrupt)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.jsonl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
