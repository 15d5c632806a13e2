// Package platform defines the capabilities this service consumes from the
// chat platform: minting invite links, checking chat admin status, and
// gating commands to the designated community chat. The messaging transport
// itself (commands in, replies out) lives outside this service.
package platform

import (
	"context"
	"errors"
)

// ErrPermissionDenied means the platform account lacks the rights for the
// requested call, e.g. minting invite links without the manage-links admin
// right.
var ErrPermissionDenied = errors.New("platform: insufficient permissions")

// LinkFactory mints personal invite links on the chat platform.
type LinkFactory interface {
	CreateInviteLink(ctx context.Context, userID int64, displayName string) (string, error)
}

// AdminChecker answers whether a user administers the target chat.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// ChatGate reports whether a chat id is the designated community chat.
type ChatGate interface {
	IsTargetChat(chatID int64) bool
}
