package matcherrors

import "errors"

// Match and vocabulary sentinel errors. Shared by game, vocab, api and ws
// to avoid circular imports.
var (
	ErrInsufficientVocabulary = errors.New("vocabulary has no pairs")
	ErrInvalidVocabulary      = errors.New("invalid vocabulary pair")
	ErrDuplicatePair          = errors.New("duplicate vocabulary pair id")
	ErrListNotFound           = errors.New("vocabulary list not found")
	ErrSourceUnavailable      = errors.New("no vocabulary source configured")
	ErrSessionStopped         = errors.New("match session stopped")
)
