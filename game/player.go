package game

// PlayerState is one seat's board and meters. It is mutated only by the Engine,
// by that seat's own picks and by skills the opponent casts at it.
type PlayerState struct {
	Seat  int // 1 or 2
	HP    int
	Score int
	Deck  []Card

	// Pending holds the ids of the cards picked but not yet resolved (0-2).
	Pending []string

	Streak       int
	SkillCharges int

	// Cooldowns holds seconds left per skill kind; never negative.
	Cooldowns map[SkillKind]int

	FrozenByMismatch bool
	FrozenBySkill    bool

	// Fogged holds ids of cards whose text is hidden from this player.
	Fogged map[string]struct{}

	// effectGen counts skill applications received per kind; an expiry only
	// clears the effect if no newer application of the same kind superseded it.
	effectGen map[SkillKind]uint64
}

// NewPlayerState creates a fresh seat with full HP and the given deck.
func NewPlayerState(seat, hp int, deck []Card) *PlayerState {
	return &PlayerState{
		Seat:      seat,
		HP:        hp,
		Deck:      deck,
		Pending:   make([]string, 0, 2),
		Cooldowns: make(map[SkillKind]int),
		Fogged:    make(map[string]struct{}),
		effectGen: make(map[SkillKind]uint64),
	}
}

// Card returns the card with id, or nil if the deck has none.
func (p *PlayerState) Card(id string) *Card {
	for i := range p.Deck {
		if p.Deck[i].ID == id {
			return &p.Deck[i]
		}
	}
	return nil
}

// Frozen reports whether the player is blocked by a mismatch penalty or a Freeze.
func (p *PlayerState) Frozen() bool {
	return p.FrozenByMismatch || p.FrozenBySkill
}

// Cooldown returns the seconds left before kind can be cast again.
func (p *PlayerState) Cooldown(kind SkillKind) int {
	return p.Cooldowns[kind]
}

// IsFogged reports whether the card's text is hidden from the player.
func (p *PlayerState) IsFogged(id string) bool {
	_, ok := p.Fogged[id]
	return ok
}

// SetFog replaces the fogged set with ids.
func (p *PlayerState) SetFog(ids []string) {
	p.Fogged = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p.Fogged[id] = struct{}{}
	}
}

// ClearFog removes ids from the fogged set.
func (p *PlayerState) ClearFog(ids []string) {
	for _, id := range ids {
		delete(p.Fogged, id)
	}
}

// FogCandidates returns ids of cards that are still in play: unmatched, unselected, no outcome flag.
func (p *PlayerState) FogCandidates() []string {
	var ids []string
	for _, c := range p.Deck {
		if !c.Matched && !c.Selected && c.Flag == FlagNone {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// clone returns a deep copy of p.
func (p *PlayerState) clone() *PlayerState {
	if p == nil {
		return nil
	}
	c := *p
	c.Deck = make([]Card, len(p.Deck))
	copy(c.Deck, p.Deck)
	c.Pending = append(make([]string, 0, 2), p.Pending...)
	c.Cooldowns = make(map[SkillKind]int, len(p.Cooldowns))
	for k, v := range p.Cooldowns {
		c.Cooldowns[k] = v
	}
	c.Fogged = make(map[string]struct{}, len(p.Fogged))
	for k := range p.Fogged {
		c.Fogged[k] = struct{}{}
	}
	c.effectGen = make(map[SkillKind]uint64, len(p.effectGen))
	for k, v := range p.effectGen {
		c.effectGen[k] = v
	}
	return &c
}
