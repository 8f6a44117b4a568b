package repository

import (
	"context"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// QualityRepository porta de persistência dos registros de inspeção.
type QualityRepository interface {
	Create(ctx context.Context, record *entity.QualityRecord) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.QualityRecord, error)
	// LatestByOrder registro mais recente (nil, nil se nunca inspecionado).
	LatestByOrder(ctx context.Context, orderID string) (*entity.QualityRecord, error)
}
