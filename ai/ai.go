package ai

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"wordmatch-pk-server/config"
	"wordmatch-pk-server/game"
	"wordmatch-pk-server/vocab"
)

// Host is what the bot needs from the match session.
type Host interface {
	SelectCard(seat int, cardID string)
	CastSkill(seat int, kind game.SkillKind)
	Vocabulary() []vocab.VocabularyPair
}

// Decision reasons, for debug logging.
const (
	reasonKnownPair = "known_pair"
	reasonPartner   = "partner_of_pending"
	reasonMistake   = "mistake"
	reasonRandom    = "random"
)

// memory is what the bot has learned about the current match.
type memory struct {
	matchID string
	// byText maps a word or meaning to its pair id.
	byText map[string]string
	// byCard remembers the pair of every card the bot has seen with its text, so fog does not blind it.
	byCard map[string]string
}

func newMemory(matchID string, pairs []vocab.VocabularyPair) *memory {
	m := &memory{
		matchID: matchID,
		byText:  make(map[string]string, 2*len(pairs)),
		byCard:  make(map[string]string),
	}
	for _, p := range pairs {
		m.byText[p.Word] = p.ID
		m.byText[p.Meaning] = p.ID
	}
	return m
}

// observe records the pair of every visible card.
func (m *memory) observe(cards []game.CardView) {
	for _, c := range cards {
		if c.Fogged || c.Text == "" {
			continue
		}
		if pairID, ok := m.byText[c.Text]; ok {
			m.byCard[c.ID] = pairID
		}
	}
}

// Run receives match_state messages from botSend and plays seat with human-like delays.
// It only uses the broadcast view plus the session's vocabulary. It keeps playing across
// matches and returns when botSend is closed. rng may be nil.
func Run(botSend <-chan []byte, host Host, seat int, params *config.BotParams, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	var mem *memory

	for data := range botSend {
		var view game.MatchView
		if err := json.Unmarshal(latest(botSend, data), &view); err != nil || view.Type != "match_state" {
			continue
		}
		if view.Status != game.StatusPlaying.String() || len(view.Players) != 2 {
			continue
		}
		if mem == nil || mem.matchID != view.MatchID {
			mem = newMemory(view.MatchID, host.Vocabulary())
			slog.Debug("new match", "tag", "ai", "name", params.Name, "match", view.MatchID, "pairs", len(mem.byText)/2)
		}

		me := view.Players[seat-1]
		mem.observe(me.Cards)
		if me.FrozenByMismatch || me.FrozenBySkill || len(me.Pending) >= 2 {
			continue
		}

		sleep(rng, params.DelayMinMS, params.DelayMaxMS)

		if kind, ok := pickSkill(me, params, rng); ok {
			slog.Debug("casting skill", "tag", "ai", "name", params.Name, "skill", string(kind), "charges", me.SkillCharges)
			host.CastSkill(seat, kind)
			continue
		}

		first, second, reason := pickCards(me, mem, params, rng)
		if first == "" {
			continue
		}
		slog.Debug("picking cards", "tag", "ai", "name", params.Name, "first", first, "second", second, "reason", reason)
		host.SelectCard(seat, first)
		if second == "" {
			continue
		}
		sleep(rng, params.DelayMinMS/3, params.DelayMaxMS/3)
		host.SelectCard(seat, second)
	}
}

// latest drains botSend without blocking and returns the newest message.
// A closed channel ends the drain; the range in Run then stops.
func latest(botSend <-chan []byte, data []byte) []byte {
	for {
		select {
		case next, ok := <-botSend:
			if !ok {
				return data
			}
			data = next
		default:
			return data
		}
	}
}

func sleep(rng *rand.Rand, minMS, maxMS int) {
	delay := minMS
	if maxMS > minMS {
		delay = minMS + rng.Intn(maxMS-minMS)
	}
	if delay > 0 {
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}
}

// chance reports true with probability pct percent, clamped to [0, 100].
func chance(rng *rand.Rand, pct int) bool {
	if pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return rng.Intn(100) < pct
}

// pickSkill returns a ready skill to cast, if the bot decides to cast one.
func pickSkill(me game.PlayerView, params *config.BotParams, rng *rand.Rand) (game.SkillKind, bool) {
	var ready []game.SkillKind
	for _, s := range me.Skills {
		if s.Ready {
			ready = append(ready, game.SkillKind(s.Kind))
		}
	}
	if len(ready) == 0 || !chance(rng, params.SkillChance) {
		return "", false
	}
	return ready[rng.Intn(len(ready))], true
}

// available returns the ids of cards that can be picked: unmatched, unselected, no outcome flag.
func available(cards []game.CardView) []string {
	var ids []string
	for _, c := range cards {
		if !c.Matched && !c.Selected && c.Flag == game.FlagNone.String() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// pickCards chooses the next pick. With one card pending only second is relevant and first
// holds it; with none pending both cards of a pair are returned.
func pickCards(me game.PlayerView, mem *memory, params *config.BotParams, rng *rand.Rand) (first, second, reason string) {
	open := available(me.Cards)
	if len(open) == 0 {
		return "", "", ""
	}

	if len(me.Pending) == 1 {
		partner, why := pickPartner(me.Pending[0], open, mem, params, rng)
		if why == reasonKnownPair {
			why = reasonPartner
		}
		return partner, "", why
	}

	first = open[rng.Intn(len(open))]
	second, reason = pickPartner(first, without(open, first), mem, params, rng)
	return first, second, reason
}

// pickPartner picks a card to pair with id from candidates.
func pickPartner(id string, candidates []string, mem *memory, params *config.BotParams, rng *rand.Rand) (string, string) {
	if len(candidates) == 0 {
		return "", ""
	}
	pairID, known := mem.byCard[id]

	var partner string
	var others []string
	for _, c := range candidates {
		if known && partner == "" && mem.byCard[c] == pairID {
			partner = c
			continue
		}
		others = append(others, c)
	}

	if partner == "" {
		return candidates[rng.Intn(len(candidates))], reasonRandom
	}
	if len(others) > 0 && chance(rng, params.MistakeChance) {
		return others[rng.Intn(len(others))], reasonMistake
	}
	return partner, reasonKnownPair
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
