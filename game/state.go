package game

import "strconv"

// Status is the lifecycle phase of a match.
type Status int

const (
	StatusSetup Status = iota
	StatusPlaying
	StatusFinished
)

// String returns the protocol string for a Status.
func (s Status) String() string {
	switch s {
	case StatusSetup:
		return "setup"
	case StatusPlaying:
		return "playing"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason says why a match finished.
type Reason string

const (
	ReasonHPDepleted   Reason = "hpDepleted"
	ReasonBoardCleared Reason = "boardCleared"
	ReasonTimeExpired  Reason = "timeExpired"
)

// Draw is the Result.Winner value of a tied match.
const Draw = 0

// Result is the terminal outcome of a match. Winner is 1, 2 or Draw.
type Result struct {
	Winner int
	Reason Reason
}

// WinnerLabel returns "1", "2" or "draw".
func (r Result) WinnerLabel() string {
	if r.Winner == Draw {
		return "draw"
	}
	return strconv.Itoa(r.Winner)
}

// MatchState is the full observable state of the current match.
// Values returned by the Engine are deep copies and safe to read concurrently.
type MatchState struct {
	ID               string
	Status           Status
	DurationSeconds  int
	RemainingSeconds int
	Players          [2]*PlayerState
	Result           *Result
}

// Player returns the state of seat 1 or 2, or nil for any other seat.
func (m *MatchState) Player(seat int) *PlayerState {
	if seat != 1 && seat != 2 {
		return nil
	}
	return m.Players[seat-1]
}

// Clone returns a deep copy of m.
func (m MatchState) Clone() MatchState {
	c := m
	for i := range m.Players {
		c.Players[i] = m.Players[i].clone()
	}
	if m.Result != nil {
		r := *m.Result
		c.Result = &r
	}
	return c
}

// CardView is the client-facing representation of a card.
// Text is omitted while the card is fogged; the card can still be picked.
type CardView struct {
	ID       string `json:"id"`
	Face     string `json:"face"`
	Text     string `json:"text,omitempty"`
	Matched  bool   `json:"matched"`
	Selected bool   `json:"selected"`
	Flag     string `json:"flag"`
	Fogged   bool   `json:"fogged"`
}

// SkillView tells the client whether a skill button is usable.
type SkillView struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Cooldown int    `json:"cooldown"`
	Ready    bool   `json:"ready"`
}

// PlayerView is the client-facing representation of a seat.
type PlayerView struct {
	Player           int         `json:"player"`
	HP               int         `json:"hp"`
	Score            int         `json:"score"`
	Streak           int         `json:"streak"`
	SkillCharges     int         `json:"skillCharges"`
	FreezeCooldown   int         `json:"freezeCooldown"`
	FogCooldown      int         `json:"fogCooldown"`
	FrozenByMismatch bool        `json:"frozenByMismatch"`
	FrozenBySkill    bool        `json:"frozenBySkill"`
	Pending          []string    `json:"pending"`
	Remaining        int         `json:"remaining"`
	Skills           []SkillView `json:"skills,omitempty"`
	Cards            []CardView  `json:"cards"`
}

// ResultView is the client-facing representation of a Result.
type ResultView struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

// MatchView is the match_state message broadcast to displays.
type MatchView struct {
	Type             string       `json:"type"`
	MatchID          string       `json:"matchId,omitempty"`
	Status           string       `json:"status"`
	DurationSeconds  int          `json:"durationSeconds"`
	RemainingSeconds int          `json:"remainingSeconds"`
	Players          []PlayerView `json:"players"`
	Result           *ResultView  `json:"result,omitempty"`
}

// MatchOverMsg is sent once when a match finishes.
type MatchOverMsg struct {
	Type    string `json:"type"`
	MatchID string `json:"matchId"`
	Winner  string `json:"winner"`
	Reason  string `json:"reason"`
	Scores  [2]int `json:"scores"`
}

// BuildCardViews constructs the client-facing card list of p.
func BuildCardViews(p *PlayerState) []CardView {
	views := make([]CardView, len(p.Deck))
	for i, card := range p.Deck {
		cv := CardView{
			ID:       card.ID,
			Face:     card.Face.String(),
			Matched:  card.Matched,
			Selected: card.Selected,
			Flag:     card.Flag.String(),
			Fogged:   p.IsFogged(card.ID),
		}
		if !cv.Fogged {
			cv.Text = card.Text
		}
		views[i] = cv
	}
	return views
}

// BuildPlayerView creates a PlayerView from a PlayerState. skills may be nil.
func BuildPlayerView(p *PlayerState, skills []SkillDef) PlayerView {
	pending := p.Pending
	if pending == nil {
		pending = []string{}
	}
	pv := PlayerView{
		Player:           p.Seat,
		HP:               p.HP,
		Score:            p.Score,
		Streak:           p.Streak,
		SkillCharges:     p.SkillCharges,
		FreezeCooldown:   p.Cooldown(SkillFreeze),
		FogCooldown:      p.Cooldown(SkillFog),
		FrozenByMismatch: p.FrozenByMismatch,
		FrozenBySkill:    p.FrozenBySkill,
		Pending:          pending,
		Remaining:        UnmatchedCount(p.Deck),
		Cards:            BuildCardViews(p),
	}
	for _, def := range skills {
		cd := p.Cooldown(def.Kind)
		pv.Skills = append(pv.Skills, SkillView{
			Kind:     string(def.Kind),
			Name:     def.Name,
			Cost:     def.Cost,
			Cooldown: cd,
			Ready:    cd == 0 && p.SkillCharges >= def.Cost && !p.Frozen(),
		})
	}
	return pv
}

// BuildMatchView creates the match_state message for m.
func BuildMatchView(m MatchState, skills []SkillDef) MatchView {
	v := MatchView{
		Type:             "match_state",
		MatchID:          m.ID,
		Status:           m.Status.String(),
		DurationSeconds:  m.DurationSeconds,
		RemainingSeconds: m.RemainingSeconds,
		Players:          make([]PlayerView, 0, 2),
	}
	for _, p := range m.Players {
		if p != nil {
			v.Players = append(v.Players, BuildPlayerView(p, skills))
		}
	}
	if m.Result != nil {
		v.Result = &ResultView{Winner: m.Result.WinnerLabel(), Reason: string(m.Result.Reason)}
	}
	return v
}
