package storage

import (
	"context"
	"fmt"

	"github.com/yourname/dreamcatcher/internal"
)

func NewFileRepositories(dataDir string, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(dataDir, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Users: s, Dreams: s, Goals: s, Ideas: s, Sleep: s, Close: s.Close}, nil
}

func NewPostgresRepositories(ctx context.Context, dsn string, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Users: s, Dreams: s, Goals: s, Ideas: s, Sleep: s, Close: s.Close}, nil
}

// NewRepositories picks the backend named by STORAGE_BACKEND.
func NewRepositories(ctx context.Context, backend, dsn, dataDir string, logger internal.Logger) (*Repositories, error) {
	switch backend {
	case "file":
		return NewFileRepositories(dataDir, logger)
	case "postgres":
		return NewPostgresRepositories(ctx, dsn, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
