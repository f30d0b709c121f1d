package postgres

import (
	"context"
	"time"

	"ptp_tracker/internal/domain"
	"ptp_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PTPRepository struct {
	DB *gorm.DB
}

func NewPTPRepository(db *gorm.DB) *PTPRepository {
	return &PTPRepository{DB: db}
}

func (r *PTPRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PTP, error) {
	var ptps []model.PTP
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("ptp_date asc").
		Find(&ptps).Error
	return ptps, err
}

// FindDueBetween обещания с датой в [start, end), статус фильтрует вызывающий
func (r *PTPRepository) FindDueBetween(ctx context.Context, start, end time.Time) ([]model.PTP, error) {
	var ptps []model.PTP
	err := r.DB.WithContext(ctx).
		Where("ptp_date >= ? AND ptp_date < ?", start, end).
		Find(&ptps).Error
	return ptps, err
}

func (r *PTPRepository) Create(ctx context.Context, p *model.PTP) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *PTPRepository) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status model.PTPStatus) (*model.PTP, error) {
	res := r.DB.WithContext(ctx).Model(&model.PTP{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var p model.PTP
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PTPRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.PTP{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
