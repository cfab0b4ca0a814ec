package roadrepo

import (
	"context"

	"logistics/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// insertBatchSize bounds one multi-row insert when replacing the snapshot.
const insertBatchSize = 500

// GormRoadRepository implements ports.RoadRepository using GORM.
type GormRoadRepository struct {
	db *gorm.DB
}

// NewGormRoadRepository creates a new GORM road repository.
func NewGormRoadRepository(db *gorm.DB) *GormRoadRepository {
	return &GormRoadRepository{db: db}
}

// ReplaceAll overwrites the persisted road snapshot with the given cells.
func (r *GormRoadRepository) ReplaceAll(ctx context.Context, cells []kernel.Cell) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&RoadCellDTO{}).Error; err != nil {
		return err
	}

	if len(cells) == 0 {
		return nil
	}

	dtos := make([]RoadCellDTO, 0, len(cells))
	for _, c := range cells {
		dtos = append(dtos, fromDomain(c))
	}

	return r.db.WithContext(ctx).CreateInBatches(&dtos, insertBatchSize).Error
}

// GetAll retrieves the persisted road cells in a deterministic order.
func (r *GormRoadRepository) GetAll(ctx context.Context) ([]kernel.Cell, error) {
	var dtos []RoadCellDTO
	if err := r.db.WithContext(ctx).Order("y asc, x asc").Find(&dtos).Error; err != nil {
		return nil, err
	}

	cells := make([]kernel.Cell, 0, len(dtos))
	for _, dto := range dtos {
		cells = append(cells, toDomain(dto))
	}

	return cells, nil
}
