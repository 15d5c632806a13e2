package model

import "time"

// RewardProgress is the per-inviter reward ledger row: which milestones were
// already paid and how many extra invites beyond the last milestone were paid.
// Monotonic: IssuedMilestones only grows, RewardedExtraCount never decreases.
type RewardProgress struct {
	UserID             int64        `gorm:"primaryKey" json:"user_id"`
	IssuedMilestones   MilestoneSet `gorm:"type:varchar(64);not null;default:''" json:"issued_milestones"`
	RewardedExtraCount int64        `gorm:"not null;default:0" json:"rewarded_extra_count"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (RewardProgress) TableName() string { return "reward_progress" }
