package game

// secondElapsed applies one second of game time: skill cooldowns first, then the round clock.
func (e *Engine) secondElapsed() {
	for _, p := range e.state.Players {
		tickCooldowns(p)
	}
	e.tickRoundClock()
}

// tickCooldowns lowers every cooldown of p by one second, stopping at zero.
func tickCooldowns(p *PlayerState) {
	for kind, left := range p.Cooldowns {
		if left > 0 {
			p.Cooldowns[kind] = left - 1
		}
	}
}

// tickRoundClock counts the shared match clock down; at zero the match ends on time.
// Pending success and mismatch resolutions are dropped with the epoch bump in finish.
func (e *Engine) tickRoundClock() {
	if e.state.RemainingSeconds > 0 {
		e.state.RemainingSeconds--
	}
	if e.state.RemainingSeconds == 0 {
		e.evaluate(true)
	}
}
