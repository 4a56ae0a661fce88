package catalog

import (
	"fmt"

	"github.com/bnema/sparky/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version" yaml:"version"`
	Words   []wordSchema `toml:"words" yaml:"words"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported catalog schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type wordSchema struct {
	Word     string   `toml:"word" yaml:"word"`
	Pinyin   string   `toml:"pinyin" yaml:"pinyin"`
	English  string   `toml:"english" yaml:"english"`
	Category string   `toml:"category" yaml:"category"`
	Stage    string   `toml:"stage" yaml:"stage"`
	Emoji    string   `toml:"emoji,omitempty" yaml:"emoji,omitempty"`
	Examples []string `toml:"examples,omitempty" yaml:"examples,omitempty"`
}

func toSchema(word domain.CatalogWord) wordSchema {
	return wordSchema{
		Word:     word.Word,
		Pinyin:   word.Pinyin,
		English:  word.English,
		Category: word.Category,
		Stage:    word.Stage.String(),
		Emoji:    word.Emoji,
		Examples: word.Examples,
	}
}

func fromSchema(entry wordSchema) (domain.CatalogWord, error) {
	stage := domain.MinStage
	if entry.Stage != "" {
		parsed, err := domain.ParseStage(entry.Stage)
		if err != nil {
			return domain.CatalogWord{}, fmt.Errorf("word %q: %w", entry.Word, err)
		}
		stage = parsed
	}

	return domain.CatalogWord{
		Word:     entry.Word,
		Pinyin:   entry.Pinyin,
		English:  entry.English,
		Category: entry.Category,
		Stage:    stage,
		Emoji:    entry.Emoji,
		Examples: entry.Examples,
	}, nil
}
