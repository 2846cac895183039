package db

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/db/memory"
)

type MemoryStorage struct {
	*memory.MStorage
}

func NewMemStorage() *MemoryStorage {
	return &MemoryStorage{
		MStorage: memory.NewMemStorage(),
	}
}

// Ping хранилище в памяти всегда доступно.
func (m *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}
