package game

// Evaluate decides the outcome of a match from both seats, or returns nil if the match goes on.
// Priority: a seat at 0 HP loses; then a seat with a cleared board wins; then, only when the
// clock has expired, the higher score wins and equal scores draw.
func Evaluate(players [2]*PlayerState, clockExpired bool) *Result {
	for i, p := range players {
		if p.HP <= 0 {
			return &Result{Winner: 2 - i, Reason: ReasonHPDepleted}
		}
	}
	for i, p := range players {
		if UnmatchedCount(p.Deck) == 0 {
			return &Result{Winner: i + 1, Reason: ReasonBoardCleared}
		}
	}
	if !clockExpired {
		return nil
	}
	switch s1, s2 := players[0].Score, players[1].Score; {
	case s1 > s2:
		return &Result{Winner: 1, Reason: ReasonTimeExpired}
	case s2 > s1:
		return &Result{Winner: 2, Reason: ReasonTimeExpired}
	default:
		return &Result{Winner: Draw, Reason: ReasonTimeExpired}
	}
}

// evaluate runs Evaluate on the live state and finishes the match if it is decided.
func (e *Engine) evaluate(clockExpired bool) {
	if e.state.Status != StatusPlaying {
		return
	}
	if r := Evaluate(e.state.Players, clockExpired); r != nil {
		e.finish(*r)
	}
}
