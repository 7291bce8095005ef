// Package file keeps feed credentials in one private TOML document. Secrets
// are addressed by slash-separated references such as "feeds/http/api_key".
package file

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	tomlrepo "github.com/bnema/fundme-cli/internal/adapters/repo/toml"
	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
)

const currentSchemaVersion = 1

var (
	ErrInvalidRef  = errors.New("invalid secret reference")
	ErrEmptySecret = errors.New("secret value is empty")

	refPattern = regexp.MustCompile(`^[a-z0-9_-]+(/[a-z0-9_-]+)*$`)
)

type secretsFile struct {
	Version int               `toml:"version"`
	Secrets map[string]string `toml:"secrets"`
}

type Store struct {
	path string
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	ref, err := normalizeRef(ref)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptySecret, ref)
	}

	return s.update(ctx, func(secrets map[string]string) {
		secrets[ref] = value
	})
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref, err := normalizeRef(ref)
	if err != nil {
		return "", err
	}

	mu := tomlrepo.LockForPath(s.path)
	mu.RLock()
	defer mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return "", err
	}

	value, ok := file.Secrets[ref]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrSecretNotFound, ref)
	}
	return value, nil
}

// Delete is a no-op for references that were never stored.
func (s *Store) Delete(ctx context.Context, ref string) error {
	ref, err := normalizeRef(ref)
	if err != nil {
		return err
	}

	return s.update(ctx, func(secrets map[string]string) {
		delete(secrets, ref)
	})
}

func (s *Store) update(ctx context.Context, mutate func(map[string]string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return tomlrepo.UpdateFile(ctx, s.path, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		mutate(file.Secrets)
		file.Version = currentSchemaVersion
		return tomlrepo.WriteFile(s.path, file)
	})
}

func (s *Store) load() (secretsFile, error) {
	var file secretsFile
	if _, err := tomlrepo.ReadFile(s.path, &file); err != nil {
		return secretsFile{}, err
	}
	if file.Version > currentSchemaVersion {
		return secretsFile{}, fmt.Errorf("unsupported secrets schema version %d (current %d)", file.Version, currentSchemaVersion)
	}
	if file.Secrets == nil {
		file.Secrets = map[string]string{}
	}
	return file, nil
}

func normalizeRef(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if !refPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return trimmed, nil
}
