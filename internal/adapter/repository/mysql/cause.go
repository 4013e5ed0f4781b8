package mysql

import (
	"context"

	causeDomain "kindnesscup/internal/domain/cause"

	"gorm.io/gorm"
)

type CauseRepository struct{ db *gorm.DB }

func NewCauseRepository(db *gorm.DB) *CauseRepository { return &CauseRepository{db: db} }

func (r *CauseRepository) ListActive(ctx context.Context) ([]causeDomain.Cause, error) {
	var out []causeDomain.Cause
	res := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("title ASC").
		Find(&out)
	return out, res.Error
}

func (r *CauseRepository) IsActive(ctx context.Context, id uint64) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&causeDomain.Cause{}).
		Where("cause_id = ? AND is_active = ?", id, true).
		Count(&n)
	return n > 0, res.Error
}
