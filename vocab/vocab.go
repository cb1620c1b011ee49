// Package vocab supplies the word/meaning pairs a match is played with.
// Lists are read-only here; editing them belongs to an outer tool.
package vocab

import (
	"context"
	"fmt"
	"strings"

	"wordmatch-pk-server/matcherrors"
)

// VocabularyPair is one word and its meaning. Both players' decks are built from the same pairs.
type VocabularyPair struct {
	ID      string `json:"id"`
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// ListSummary describes a vocabulary list without its pairs.
type ListSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Source abstracts where vocabulary lists come from (JSON file, Postgres).
type Source interface {
	Lists(ctx context.Context) ([]ListSummary, error)
	Pairs(ctx context.Context, listID string) ([]VocabularyPair, error)
}

// Validate trims every pair and checks that ids are present and unique and that
// word and meaning are non-empty. It returns the trimmed copy.
func Validate(pairs []VocabularyPair) ([]VocabularyPair, error) {
	if len(pairs) == 0 {
		return nil, matcherrors.ErrInsufficientVocabulary
	}
	out := make([]VocabularyPair, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for i, p := range pairs {
		p.ID = strings.TrimSpace(p.ID)
		p.Word = strings.TrimSpace(p.Word)
		p.Meaning = strings.TrimSpace(p.Meaning)
		if p.ID == "" {
			return nil, fmt.Errorf("pair %d: missing id: %w", i, matcherrors.ErrInvalidVocabulary)
		}
		if p.Word == "" || p.Meaning == "" {
			return nil, fmt.Errorf("pair %q: word and meaning must be non-empty: %w", p.ID, matcherrors.ErrInvalidVocabulary)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("pair %q: %w", p.ID, matcherrors.ErrDuplicatePair)
		}
		seen[p.ID] = struct{}{}
		out[i] = p
	}
	return out, nil
}
