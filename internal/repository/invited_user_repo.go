package repository

import (
	"context"

	"kaktovottak/referralhub/internal/model"
)

// InviterCount is one leaderboard row: an inviter, their registry display
// name (empty if they never created a link), and how many users they invited.
type InviterCount struct {
	InviterUserID int64  `json:"inviter_user_id"`
	DisplayName   string `json:"display_name"`
	InviteCount   int64  `json:"invite_count"`
}

type InvitedUserRepository interface {
	// Create appends a join record. Returns gorm.ErrDuplicatedKey when the
	// invited user was already credited to someone.
	Create(ctx context.Context, invited *model.InvitedUser) error
	CountByInviter(ctx context.Context, inviterUserID int64) (int64, error)
	RecentByInviter(ctx context.Context, inviterUserID int64, limit int) ([]model.InvitedUser, error)
	TopInviters(ctx context.Context, limit int) ([]InviterCount, error)
}
