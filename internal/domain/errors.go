package domain

import "errors"

var ErrSecretNotFound = errors.New("secret not found")

var (
	ErrClassificationUnavailable = errors.New("emotion classification unavailable")
	ErrGenerationUnavailable     = errors.New("text generation unavailable")
	ErrInvalidTransition         = errors.New("invalid session transition")
	ErrSessionEnded              = errors.New("session ended")
	ErrTranscriptCorrupt         = errors.New("transcript corrupt")
)
