package repository

import (
	"context"
	"registration/domain"
	"sync"
)

type memoryRegistrationRepository struct {
	mu      sync.RWMutex
	records []domain.Registration
}

// NewMemoryRegistrationRepository keeps the table in process memory. The
// seed records are copied.
func NewMemoryRegistrationRepository(seed ...domain.Registration) domain.RegistrationRepo {
	return &memoryRegistrationRepository{
		records: append([]domain.Registration{}, seed...),
	}
}

func (mr *memoryRegistrationRepository) Load(ctx context.Context) ([]domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return append([]domain.Registration{}, mr.records...), nil
}

func (mr *memoryRegistrationRepository) Save(ctx context.Context, records []domain.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.records = append([]domain.Registration{}, records...)
	return nil
}
