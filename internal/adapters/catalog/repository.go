// Package catalog loads and saves vocabulary banks as TOML or YAML files.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/sparky/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	catalogFileMode = 0o600
	catalogDirMode  = 0o700
	tempFilePattern = ".catalog-*.tmp"
)

type format int

const (
	formatTOML format = iota
	formatYAML
)

//go:embed default_catalog.toml
var defaultCatalog []byte

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

// Default returns the built-in vocabulary bank.
func Default() (*domain.Catalog, error) {
	words, err := decode(defaultCatalog, formatTOML)
	if err != nil {
		return nil, fmt.Errorf("decode built-in catalog: %w", err)
	}
	return domain.NewCatalog(words)
}

// Load reads a catalog file. An empty path yields the built-in bank.
func Load(ctx context.Context, path string) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	kind, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	mu := lockForPath(path)
	mu.RLock()
	data, err := os.ReadFile(path)
	mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	words, err := decode(data, kind)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %q: %w", path, err)
	}

	catalog, err := domain.NewCatalog(words)
	if err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}
	return catalog, nil
}

// Save writes words to path atomically, in the format its extension names.
func Save(ctx context.Context, path string, words []domain.CatalogWord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := domain.NewCatalog(words); err != nil {
		return err
	}

	path, err := normalizePath(path)
	if err != nil {
		return err
	}
	kind, err := formatFor(path)
	if err != nil {
		return err
	}

	file := fileSchema{Words: make([]wordSchema, 0, len(words))}
	for _, word := range words {
		file.Words = append(file.Words, toSchema(word))
	}
	file.applyDefaults()

	data, err := encode(file, kind)
	if err != nil {
		return fmt.Errorf("encode catalog file: %w", err)
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func decode(data []byte, kind format) ([]domain.CatalogWord, error) {
	var file fileSchema
	switch kind {
	case formatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	words := make([]domain.CatalogWord, 0, len(file.Words))
	for _, entry := range file.Words {
		word, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, nil
}

func encode(file fileSchema, kind format) ([]byte, error) {
	if kind == formatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return toml.Marshal(file)
}

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported catalog file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve catalog path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), catalogDirMode); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp catalog file: %w", err)
	}

	if err := tempFile.Chmod(catalogFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp catalog file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}

	cleanup = false
	return nil
}
