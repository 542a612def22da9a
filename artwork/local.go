package artwork

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
)

// LocalStorage keeps artwork on the local filesystem under a base path.
type LocalStorage struct {
	basePath string
	logger   interfaces.Logger
}

// NewLocalStorage creates a local artwork store rooted at basePath.
func NewLocalStorage(basePath string, logger interfaces.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		logger:   logger,
	}, nil
}

func (s *LocalStorage) Store(ctx context.Context, key string, reader io.Reader) error {
	path := filepath.Join(s.basePath, key)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("artwork stored", interfaces.String("key", key))

	return nil
}

func (s *LocalStorage) Retrieve(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("artwork %s not found", key))
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(s.basePath, key)); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound(fmt.Sprintf("artwork %s not found", key))
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.basePath, key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.NotFound(fmt.Sprintf("artwork %s not found", key))
	}

	return fmt.Sprintf("file://%s", filepath.Join(s.basePath, key)), nil
}
