package game

import "log/slog"

// CastSkill casts kind from seat at the opponent. The cast is silently ignored unless
// the match is playing, the skill is registered, the caster has enough charges, the
// skill's cooldown is zero and the caster is not frozen.
func (e *Engine) CastSkill(seat int, kind SkillKind) MatchState {
	e.advance(e.clock.Now())
	e.castSkill(seat, kind)
	return e.Snapshot()
}

func (e *Engine) castSkill(seat int, kind SkillKind) {
	caster := e.playing(seat)
	if caster == nil || e.skills == nil {
		return
	}
	def, ok := e.skills.GetSkill(kind)
	if !ok {
		slog.Debug("cast ignored: unknown skill", "tag", "game", "seat", seat, "skill", string(kind))
		return
	}
	if caster.Frozen() {
		slog.Debug("cast ignored: frozen", "tag", "game", "seat", seat, "skill", string(kind))
		return
	}
	if caster.SkillCharges < def.Cost {
		slog.Debug("cast ignored: not enough charges", "tag", "game", "seat", seat, "skill", string(kind), "charges", caster.SkillCharges)
		return
	}
	if caster.Cooldown(kind) > 0 {
		slog.Debug("cast ignored: cooling down", "tag", "game", "seat", seat, "skill", string(kind), "cooldown", caster.Cooldown(kind))
		return
	}

	caster.SkillCharges -= def.Cost
	caster.Cooldowns[kind] = def.CooldownSec

	target := e.opponent(seat)
	// A newer application of the same kind supersedes the pending expiry of the old one.
	target.effectGen[kind]++
	gen := target.effectGen[kind]

	var affected []string
	if def.Apply != nil {
		affected = def.Apply(target, e.rng)
	}
	slog.Info("skill cast", "tag", "game", "match", e.state.ID, "seat", seat, "skill", string(kind), "affected", len(affected))

	e.schedule(def.Duration, &event{
		kind: eventSkillExpire, seat: target.Seat, cards: affected, skill: kind, gen: gen,
	})
}

// expireSkill ends a skill effect on seat unless a newer cast of the same kind replaced it.
// Cards matched since the cast left the fog when they were matched.
func (e *Engine) expireSkill(seat int, kind SkillKind, gen uint64, affected []string) {
	target := e.playing(seat)
	if target == nil || target.effectGen[kind] != gen {
		return
	}
	def, ok := e.skills.GetSkill(kind)
	if !ok || def.Expire == nil {
		return
	}
	def.Expire(target, affected)
}
