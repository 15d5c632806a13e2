package repository

import (
	"context"

	"kaktovottak/referralhub/internal/model"
)

type RewardProgressRepository interface {
	// Get returns the ledger row, or gorm.ErrRecordNotFound if the user has
	// never had one. Callers usually treat that as an empty ledger.
	Get(ctx context.Context, userID int64) (*model.RewardProgress, error)

	// Init creates an empty ledger row if none exists. Idempotent.
	Init(ctx context.Context, userID int64) error

	// MarkIssued runs the issuance transition as an atomic read-modify-write:
	// the ledger row is locked (created lazily if absent), the current invite
	// count is read inside the same transaction, and plan is called with both.
	// If plan mutates the row and returns true the row is saved; otherwise
	// nothing is written. Concurrent calls for the same user serialize on the
	// row lock, so a milestone can never be granted twice.
	MarkIssued(ctx context.Context, userID int64, plan func(count int64, p *model.RewardProgress) bool) (*model.RewardProgress, error)
}
