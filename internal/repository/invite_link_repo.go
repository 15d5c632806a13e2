package repository

import (
	"context"

	"kaktovottak/referralhub/internal/model"
)

type InviteLinkRepository interface {
	Create(ctx context.Context, link *model.InviteLink) error
	GetByOwner(ctx context.Context, ownerUserID int64) (*model.InviteLink, error)
	GetByURL(ctx context.Context, linkURL string) (*model.InviteLink, error)
}
