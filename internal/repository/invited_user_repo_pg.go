package repository

import (
	"context"

	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
)

type pgInvitedUserRepository struct {
	db *gorm.DB
}

func NewPGInvitedUserRepository(db *gorm.DB) InvitedUserRepository {
	return &pgInvitedUserRepository{db: db}
}

func (r *pgInvitedUserRepository) Create(ctx context.Context, invited *model.InvitedUser) error {
	return r.db.WithContext(ctx).Create(invited).Error
}

func (r *pgInvitedUserRepository) CountByInviter(ctx context.Context, inviterUserID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InvitedUser{}).
		Where("inviter_user_id = ?", inviterUserID).
		Count(&count).Error
	return count, err
}

func (r *pgInvitedUserRepository) RecentByInviter(ctx context.Context, inviterUserID int64, limit int) ([]model.InvitedUser, error) {
	var invited []model.InvitedUser
	err := r.db.WithContext(ctx).
		Where("inviter_user_id = ?", inviterUserID).
		Order("joined_at DESC").
		Limit(limit).
		Find(&invited).Error
	if err != nil {
		return nil, err
	}
	return invited, nil
}

func (r *pgInvitedUserRepository) TopInviters(ctx context.Context, limit int) ([]InviterCount, error) {
	var rows []InviterCount
	err := r.db.WithContext(ctx).
		Model(&model.InvitedUser{}).
		Select("invited_users.inviter_user_id AS inviter_user_id, "+
			"COUNT(*) AS invite_count, "+
			"COALESCE(MAX(invite_links.display_name), '') AS display_name").
		Joins("LEFT JOIN invite_links ON invite_links.owner_user_id = invited_users.inviter_user_id").
		Group("invited_users.inviter_user_id").
		Order("invite_count DESC, inviter_user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
