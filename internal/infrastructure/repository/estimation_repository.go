package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jewelsoft/estima-api/internal/domain/entity"
	domainRepo "github.com/jewelsoft/estima-api/internal/domain/repository"
	"github.com/jewelsoft/estima-api/pkg/pagination"
	"gorm.io/gorm"
)

type estimationRepository struct {
	db *gorm.DB
}

// NewEstimationRepository creates a new estimation history repository
func NewEstimationRepository(db *gorm.DB) domainRepo.EstimationRepository {
	return &estimationRepository{db: db}
}

func (r *estimationRepository) Create(ctx context.Context, est *entity.Estimation) error {
	return r.db.WithContext(ctx).Create(est).Error
}

func (r *estimationRepository) GetByTranNo(ctx context.Context, tranNo string) (*entity.Estimation, error) {
	var est entity.Estimation
	err := r.db.WithContext(ctx).First(&est, "tran_no = ?", tranNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &est, err
}

func (r *estimationRepository) GetByBatchNo(ctx context.Context, batchNo string) (*entity.Estimation, error) {
	var est entity.Estimation
	err := r.db.WithContext(ctx).First(&est, "est_batch_no = ?", batchNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &est, err
}

func (r *estimationRepository) Update(ctx context.Context, est *entity.Estimation) error {
	return r.db.WithContext(ctx).Save(est).Error
}

func (r *estimationRepository) ListByUser(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Estimation, int64, error) {
	var ests []entity.Estimation
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Estimation{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&ests).Error

	return ests, total, err
}
