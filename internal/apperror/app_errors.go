package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrAutoCallRunning = errors.New("auto call is already running")
)
