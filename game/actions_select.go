package game

import (
	"log/slog"
	"time"
)

// SelectCard picks cardID on seat's board. Invalid picks are silently ignored:
// match not playing, seat frozen, card unknown, matched, selected or still showing
// an outcome, or two cards already pending.
func (e *Engine) SelectCard(seat int, cardID string) MatchState {
	e.advance(e.clock.Now())
	e.selectCard(seat, cardID)
	return e.Snapshot()
}

func (e *Engine) selectCard(seat int, cardID string) {
	p := e.playing(seat)
	if p == nil {
		return
	}
	if p.Frozen() {
		slog.Debug("pick ignored: frozen", "tag", "game", "seat", seat, "card", cardID)
		return
	}
	if len(p.Pending) >= 2 {
		slog.Debug("pick ignored: resolution pending", "tag", "game", "seat", seat, "card", cardID)
		return
	}
	card := p.Card(cardID)
	if card == nil || card.Matched || card.Selected || card.Flag != FlagNone {
		slog.Debug("pick ignored: card not selectable", "tag", "game", "seat", seat, "card", cardID)
		return
	}

	card.Selected = true
	p.Pending = append(p.Pending, cardID)
	if len(p.Pending) < 2 {
		return
	}

	first, second := p.Card(p.Pending[0]), p.Card(p.Pending[1])
	ids := []string{first.ID, second.ID}

	if first.PairID == second.PairID {
		// Score, streak and charges are visible now; the matched transition waits for the display delay.
		first.Flag, second.Flag = FlagSuccess, FlagSuccess
		first.Selected, second.Selected = false, false
		p.Pending = p.Pending[:0]
		p.Score += e.cfg.MatchReward
		p.Streak++
		p.SkillCharges = min(p.SkillCharges+1, e.cfg.MaxSkillCharges)
		p.ClearFog(ids)
		e.schedule(time.Duration(e.cfg.SuccessDelayMS)*time.Millisecond, &event{
			kind: eventSuccessResolve, seat: seat, cards: ids,
		})
		return
	}

	first.Flag, second.Flag = FlagError, FlagError
	p.FrozenByMismatch = true
	p.Streak = 0
	e.schedule(time.Duration(e.cfg.MismatchDelayMS)*time.Millisecond, &event{
		kind: eventMismatchResolve, seat: seat, cards: ids,
	})
}

// resolveSuccess turns the flagged pair into matched cards and checks for a cleared board.
func (e *Engine) resolveSuccess(seat int, ids []string) {
	p := e.playing(seat)
	if p == nil {
		return
	}
	for _, id := range ids {
		if c := p.Card(id); c != nil {
			c.Matched = true
			c.Flag = FlagNone
		}
	}
	e.evaluate(false)
}

// resolveMismatch ends the penalty window: HP is deducted and the seat may pick again.
func (e *Engine) resolveMismatch(seat int, ids []string) {
	p := e.playing(seat)
	if p == nil {
		return
	}
	p.HP = max(p.HP-e.cfg.MismatchPenalty, 0)
	p.FrozenByMismatch = false
	p.Pending = p.Pending[:0]
	for _, id := range ids {
		if c := p.Card(id); c != nil {
			c.Selected = false
			c.Flag = FlagNone
		}
	}
	e.evaluate(false)
}
