package chatlog

import "errors"

var (
	// ErrRepositoryRequired is returned when a chat-log repository is not provided.
	ErrRepositoryRequired = errors.New("chat-log repository required")
)
