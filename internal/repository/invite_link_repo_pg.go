package repository

import (
	"context"

	"gorm.io/gorm"

	"kaktovottak/referralhub/internal/model"
)

type pgInviteLinkRepository struct {
	db *gorm.DB
}

func NewPGInviteLinkRepository(db *gorm.DB) InviteLinkRepository {
	return &pgInviteLinkRepository{db: db}
}

func (r *pgInviteLinkRepository) Create(ctx context.Context, link *model.InviteLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *pgInviteLinkRepository) GetByOwner(ctx context.Context, ownerUserID int64) (*model.InviteLink, error) {
	var link model.InviteLink
	if err := r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *pgInviteLinkRepository) GetByURL(ctx context.Context, linkURL string) (*model.InviteLink, error) {
	var link model.InviteLink
	if err := r.db.WithContext(ctx).Where("link_url = ?", linkURL).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
