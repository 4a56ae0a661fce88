package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/sparky/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Config carries every tunable of a session. Components receive the section
// they need explicitly; nothing reads ambient state.
type Config struct {
	Session SessionConfig `mapstructure:"session"`
	Level   LevelConfig   `mapstructure:"level"`
	Words   WordsConfig   `mapstructure:"words"`
	Policy  PolicyConfig  `mapstructure:"policy"`
}

type SessionConfig struct {
	// MaxTurns ends the session after that many turns; zero disables the budget.
	MaxTurns int `mapstructure:"max_turns" validate:"gte=0"`
	// TimeBudget ends the session once exceeded; zero disables the budget.
	TimeBudget      time.Duration `mapstructure:"time_budget" validate:"gte=0"`
	ClassifyTimeout time.Duration `mapstructure:"classify_timeout" validate:"gt=0"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout" validate:"gt=0"`
	ExcerptTurns    int           `mapstructure:"excerpt_turns" validate:"gte=0,lte=50"`
}

type LevelConfig struct {
	InitialStage     string  `mapstructure:"initial_stage" validate:"required,stage"`
	EMAWeight        float64 `mapstructure:"ema_weight" validate:"gt=0,lte=1"`
	HysteresisMargin float64 `mapstructure:"hysteresis_margin" validate:"gte=0,lt=0.2"`
	RequiredStreak   int     `mapstructure:"required_streak" validate:"gte=1"`
	DistressDamping  float64 `mapstructure:"distress_damping" validate:"gte=0,lte=1"`
}

type WordsConfig struct {
	MasteryThreshold int    `mapstructure:"mastery_threshold" validate:"gte=1"`
	ReviewAfterTurns int    `mapstructure:"review_after_turns" validate:"gte=1"`
	Category         string `mapstructure:"category"`
}

type PolicyConfig struct {
	DistressConfidence float64 `mapstructure:"distress_confidence" validate:"gte=0,lte=1"`
	PositiveStreak     int     `mapstructure:"positive_streak" validate:"gte=1"`
}

func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			MaxTurns:        0,
			TimeBudget:      30 * time.Minute,
			ClassifyTimeout: 5 * time.Second,
			GenerateTimeout: 20 * time.Second,
			ExcerptTurns:    4,
		},
		Level: LevelConfig{
			InitialStage:     domain.StageL1.String(),
			EMAWeight:        0.3,
			HysteresisMargin: 0.03,
			RequiredStreak:   2,
			DistressDamping:  0.5,
		},
		Words: WordsConfig{
			MasteryThreshold: 3,
			ReviewAfterTurns: 5,
		},
		Policy: PolicyConfig{
			DistressConfidence: 0.5,
			PositiveStreak:     3,
		},
	}
}

var configValidate = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseStage(fl.Field().String())
		return err == nil
	})
	return v
}

func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

// InitialStage parses Level.InitialStage, falling back to L1.
func (c Config) InitialStage() domain.Stage {
	stage, err := domain.ParseStage(c.Level.InitialStage)
	if err != nil {
		return domain.MinStage
	}
	return stage
}
