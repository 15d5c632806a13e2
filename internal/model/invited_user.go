package model

import "time"

// InvitedUser is one append-only join record: who joined, credited to whom.
// A user can be credited as invited at most once, ever, hence the unique
// index on InvitedUserID.
type InvitedUser struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InviterUserID int64     `gorm:"index;not null" json:"inviter_user_id"`
	InvitedUserID int64     `gorm:"uniqueIndex;not null" json:"invited_user_id"`
	DisplayName   string    `gorm:"type:varchar(128);not null;default:''" json:"display_name"`
	JoinedAt      time.Time `gorm:"index;autoCreateTime" json:"joined_at"`
}

func (InvitedUser) TableName() string { return "invited_users" }
