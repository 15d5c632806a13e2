package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kaktovottak/referralhub/internal/model"
)

type pgRewardProgressRepository struct {
	db *gorm.DB
}

func NewPGRewardProgressRepository(db *gorm.DB) RewardProgressRepository {
	return &pgRewardProgressRepository{db: db}
}

func (r *pgRewardProgressRepository) Get(ctx context.Context, userID int64) (*model.RewardProgress, error) {
	var progress model.RewardProgress
	if err := r.db.WithContext(ctx).First(&progress, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *pgRewardProgressRepository) Init(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RewardProgress{UserID: userID}).Error
}

func (r *pgRewardProgressRepository) MarkIssued(ctx context.Context, userID int64, plan func(count int64, p *model.RewardProgress) bool) (*model.RewardProgress, error) {
	var progress model.RewardProgress
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProgress(tx, userID, &progress); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.InvitedUser{}).
			Where("inviter_user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}

		if !plan(count, &progress) {
			return nil
		}
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// lockProgress acquires the ledger row FOR UPDATE, lazily creating it first.
// A concurrent insert can win the create race, so re-acquire under the lock.
func lockProgress(tx *gorm.DB, userID int64, progress *model.RewardProgress) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(progress, "user_id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RewardProgress{UserID: userID}).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(progress, "user_id = ?", userID).Error
}
