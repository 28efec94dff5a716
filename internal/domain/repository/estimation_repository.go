package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelsoft/estima-api/internal/domain/entity"
	"github.com/jewelsoft/estima-api/pkg/pagination"
)

// EstimationRepository defines the interface for local estimation history
type EstimationRepository interface {
	Create(ctx context.Context, est *entity.Estimation) error
	GetByTranNo(ctx context.Context, tranNo string) (*entity.Estimation, error)
	GetByBatchNo(ctx context.Context, batchNo string) (*entity.Estimation, error)
	Update(ctx context.Context, est *entity.Estimation) error
	ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Estimation, int64, error)
}
