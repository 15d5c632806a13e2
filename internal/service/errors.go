package service

import "errors"

// Duplicate joins and unregistered invite links are deliberately not errors:
// the join service acknowledges them without crediting anyone.
var (
	ErrNotAdmin  = errors.New("admin access required")
	ErrWrongChat = errors.New("command only works in the target chat")
)
