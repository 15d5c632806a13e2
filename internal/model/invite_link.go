package model

import "time"

// InviteLink associates a community member with their personal invite link.
// One link per user; once minted the link never changes.
type InviteLink struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerUserID int64     `gorm:"uniqueIndex;not null" json:"owner_user_id"`
	LinkURL     string    `gorm:"type:varchar(256);uniqueIndex;not null" json:"link_url"`
	DisplayName string    `gorm:"type:varchar(128);not null;default:''" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (InviteLink) TableName() string { return "invite_links" }
