package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&InviteLink{},
		&InvitedUser{},
		&RewardProgress{},
	); err != nil {
		return err
	}

	// Covering index for the per-inviter recent list and count queries.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_invited_users_inviter_joined " +
			"ON invited_users (inviter_user_id, joined_at DESC)",
	).Error
}
