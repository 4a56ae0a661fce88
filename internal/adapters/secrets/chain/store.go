// Package chain looks a secret up in several stores in priority order.
package chain

import (
	"context"
	"errors"
	"fmt"

	envstore "github.com/bnema/sparky/internal/adapters/secrets/env"
	filestore "github.com/bnema/sparky/internal/adapters/secrets/file"
	passstore "github.com/bnema/sparky/internal/adapters/secrets/pass"
	"github.com/bnema/sparky/internal/ports"
)

type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoStores = errors.New("secret chain has no stores")

func NewStore(stores ...ports.SecretStore) *Store {
	store, err := NewStoreChecked(stores...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(stores ...ports.SecretStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("secret store %d is nil", i)
		}
	}

	return &Store{stores: stores}, nil
}

// NewDefault reads environment variables first, then pass when usePass is
// set, then files under fileRoot. Writes land in the first writable backend.
func NewDefault(fileRoot string, usePass bool) *Store {
	stores := []ports.SecretStore{envstore.NewStore()}
	if usePass {
		stores = append(stores, passstore.NewStore())
	}
	stores = append(stores, filestore.NewStore(fileRoot))
	return NewStore(stores...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, store := range s.stores {
		value, err := store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("backend %d get: %w", i, err))
	}

	return "", errors.Join(errs...)
}

// Put stores the value in the first backend that accepts it.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for i, store := range s.stores {
		err := store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d put: %w", i, err))
	}

	return errors.Join(errs...)
}

// Delete removes the key from every backend so a lower-priority copy cannot
// resurface. It succeeds when at least one backend did.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for i, store := range s.stores {
		err := store.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d delete: %w", i, err))
	}

	if deleted {
		return nil
	}
	return errors.Join(errs...)
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
