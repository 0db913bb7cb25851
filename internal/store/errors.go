package store

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrSlotTaken      = errors.New("slot already has a confirmed appointment")
	ErrDuplicateEmail = errors.New("email already registered")
)
