package domain

import (
	"fmt"
	"strings"
)

// Stage is an ordered proficiency band. The zero value is invalid.
type Stage int

const (
	StageL1 Stage = iota + 1
	StageL2
	StageL3
	StageL4
	StageL5
)

const (
	MinStage = StageL1
	MaxStage = StageL5
)

var Stages = []Stage{StageL1, StageL2, StageL3, StageL4, StageL5}

func ParseStage(raw string) (Stage, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "L1", "BEGINNER":
		return StageL1, nil
	case "L2":
		return StageL2, nil
	case "L3", "INTERMEDIATE":
		return StageL3, nil
	case "L4":
		return StageL4, nil
	case "L5", "ADVANCED":
		return StageL5, nil
	default:
		return 0, fmt.Errorf("unknown language stage %q", raw)
	}
}

func (s Stage) Valid() bool {
	return s >= MinStage && s <= MaxStage
}

func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return fmt.Sprintf("L%d", int(s))
}

func (s Stage) Title() string {
	switch s {
	case StageL1:
		return "Emerging Awareness"
	case StageL2:
		return "Basic Expression"
	case StageL3:
		return "Sentence Development"
	case StageL4:
		return "Interactive Communication"
	case StageL5:
		return "Structured & Logical Speech"
	default:
		return "Unknown"
	}
}

// Next returns the adjacent higher stage, or s itself at the top.
func (s Stage) Next() Stage {
	if s >= MaxStage {
		return MaxStage
	}
	return s + 1
}

// Prev returns the adjacent lower stage, or s itself at the bottom.
func (s Stage) Prev() Stage {
	if s <= MinStage {
		return MinStage
	}
	return s - 1
}

func (s Stage) MarshalText() ([]byte, error) {
	if s == 0 {
		return []byte{}, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid language stage %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = 0
		return nil
	}
	parsed, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Direction is the side of a stage boundary that evidence currently points to.
type Direction int

const (
	DirectionNone Direction = 0
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

// LanguageLevel carries the hysteresis state alongside the visible stage so
// that level updates stay a pure function of the previous value.
type LanguageLevel struct {
	Stage   Stage     `json:"stage"`
	Score   float64   `json:"score"`
	Pending Direction `json:"pending,omitempty"`
	Streak  int       `json:"streak,omitempty"`
}

func NewLanguageLevel(stage Stage) LanguageLevel {
	if !stage.Valid() {
		stage = MinStage
	}
	return LanguageLevel{Stage: stage, Score: StageFloor(stage) + StageWidth/2}
}

const StageWidth = 0.2

// StageFloor is the lowest score that still belongs to stage.
func StageFloor(stage Stage) float64 {
	return float64(stage-MinStage) * StageWidth
}

// StageCeiling is the score at which stage hands over to the next one.
func StageCeiling(stage Stage) float64 {
	return float64(stage-MinStage+1) * StageWidth
}

// StageDistance is the number of steps between two stages.
func StageDistance(a, b Stage) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
