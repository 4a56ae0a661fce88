// Package env resolves provider API keys from environment variables. It is
// read-only.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/sparky/internal/adapters/secrets"
	"github.com/bnema/sparky/internal/domain"
	"github.com/bnema/sparky/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

// conventional variables honored after SPARKY_<PROVIDER>_API_KEY.
var conventional = map[string][]string{
	"openai":      {"OPENAI_API_KEY"},
	"gemini":      {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"huggingface": {"HF_TOKEN", "HUGGINGFACEHUB_API_TOKEN"},
}

type Store struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

// Variables lists the environment variables consulted for provider, in order.
func Variables(provider string) []string {
	vars := []string{"SPARKY_" + strings.ToUpper(provider) + "_API_KEY"}
	return append(vars, conventional[provider]...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	provider, ok := secrets.ProviderOf(key)
	if !ok {
		return "", fmt.Errorf("env secret %q: %w", key, domain.ErrSecretNotFound)
	}

	for _, name := range Variables(provider) {
		if value, ok := s.lookup(name); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
	}

	return "", fmt.Errorf("env secret %q: %w", key, domain.ErrSecretNotFound)
}

func (s *Store) Put(ctx context.Context, key string, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("put %q: %w", key, ErrReadOnly)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("delete %q: %w", key, ErrReadOnly)
}
