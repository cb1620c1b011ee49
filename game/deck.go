package game

import (
	"fmt"
	"math/rand"

	"wordmatch-pk-server/vocab"
)

// Face says which side of a vocabulary pair a card shows.
type Face int

const (
	FaceWord Face = iota
	FaceMeaning
)

// String returns the protocol string for a Face.
func (f Face) String() string {
	switch f {
	case FaceWord:
		return "word"
	case FaceMeaning:
		return "meaning"
	default:
		return "unknown"
	}
}

// Flag is the short-lived outcome marker shown on a card after a two-card pick.
type Flag int

const (
	FlagNone Flag = iota
	FlagError
	FlagSuccess
)

// String returns the protocol string for a Flag.
func (f Flag) String() string {
	switch f {
	case FlagNone:
		return "none"
	case FlagError:
		return "error"
	case FlagSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Card is one tile on a player's board. Only Matched, Selected and Flag change after the deck is built.
type Card struct {
	ID       string
	PairID   string
	Face     Face
	Text     string
	Matched  bool
	Selected bool
	Flag     Flag
}

// CardID returns the id of the card showing face of pairID on seat's board.
// Ids are namespaced by seat so the two decks never share one.
func CardID(seat int, pairID string, face Face) string {
	return fmt.Sprintf("p%d-%s-%s", seat, pairID, face)
}

// BuildDeck creates the two cards of every pair for seat and shuffles them with rng.
func BuildDeck(seat int, pairs []vocab.VocabularyPair, rng *rand.Rand) []Card {
	cards := make([]Card, 0, 2*len(pairs))
	for _, p := range pairs {
		cards = append(cards,
			Card{ID: CardID(seat, p.ID, FaceWord), PairID: p.ID, Face: FaceWord, Text: p.Word},
			Card{ID: CardID(seat, p.ID, FaceMeaning), PairID: p.ID, Face: FaceMeaning, Text: p.Meaning},
		)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// BuildDecks builds one independently shuffled deck per seat from the shared pairs.
func BuildDecks(pairs []vocab.VocabularyPair, rng *rand.Rand) [2][]Card {
	return [2][]Card{
		BuildDeck(1, pairs, rng),
		BuildDeck(2, pairs, rng),
	}
}

// UnmatchedCount returns the number of cards in deck that are not matched yet.
func UnmatchedCount(deck []Card) int {
	n := 0
	for _, c := range deck {
		if !c.Matched {
			n++
		}
	}
	return n
}
