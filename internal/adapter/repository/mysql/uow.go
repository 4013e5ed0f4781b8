package mysql

import (
	"context"

	"kindnesscup/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Causes:    &CauseRepository{db: tx},
		Donations: &DonationRepository{db: tx},
		Schema:    &SchemaManager{db: tx},
	}
}
