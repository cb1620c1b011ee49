package game

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"wordmatch-pk-server/matcherrors"
	"wordmatch-pk-server/vocab"
	"wordmatch-pk-server/wsutil"
)

// ActionType enumerates the kinds of actions a session can process.
type ActionType int

const (
	ActionStartMatch ActionType = iota
	ActionSelectCard
	ActionCastSkill
)

// Action represents a display or bot input sent into the session's action channel.
type Action struct {
	Type            ActionType
	Seat            int                    // 1 or 2 (SelectCard, CastSkill)
	CardID          string                 // SelectCard
	Skill           SkillKind              // CastSkill
	Pairs           []vocab.VocabularyPair // StartMatch
	DurationSeconds int                    // StartMatch
	Reply           chan error             // StartMatch; optional
}

// Session is the host loop around an Engine. It processes actions one at a time,
// fires the engine's due work from a single timer and broadcasts a match_state
// snapshot to every subscriber after each step.
type Session struct {
	engine *Engine
	clock  Clock

	Actions chan Action
	Done    chan struct{}
	stop    chan struct{}
	once    sync.Once

	mu          sync.RWMutex
	subscribers map[chan []byte]struct{}
	latest      MatchState
	pairs       []vocab.VocabularyPair
	announced   string // match id whose match_over was already sent
}

// NewSession wraps engine. clock must be the clock the engine was built with; nil means SystemClock.
func NewSession(engine *Engine, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		engine:      engine,
		clock:       clock,
		Actions:     make(chan Action, 32),
		Done:        make(chan struct{}),
		stop:        make(chan struct{}),
		subscribers: make(map[chan []byte]struct{}),
		latest:      engine.Snapshot(),
	}
}

// Run is the session's main loop. It should be run as a goroutine.
func (s *Session) Run() {
	defer close(s.Done)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.armTimer(timer)
		select {
		case <-s.stop:
			return
		case a := <-s.Actions:
			s.handleAction(a)
		case <-timer.C:
			s.engine.Tick(s.clock.Now())
		}
		s.publish()
	}
}

// armTimer points timer at the engine's next due instant; it stays idle while no match is playing.
func (s *Session) armTimer(timer *time.Timer) {
	timer.Stop()
	due, ok := s.engine.NextDue()
	if !ok {
		return
	}
	d := due.Sub(s.clock.Now())
	if d < 0 {
		d = 0
	}
	timer.Reset(d)
}

func (s *Session) handleAction(a Action) {
	switch a.Type {
	case ActionStartMatch:
		_, err := s.engine.StartMatch(a.Pairs, a.DurationSeconds)
		if err == nil {
			s.mu.Lock()
			s.pairs = append([]vocab.VocabularyPair(nil), a.Pairs...)
			s.mu.Unlock()
		}
		if a.Reply != nil {
			a.Reply <- err
		}
	case ActionSelectCard:
		s.engine.SelectCard(a.Seat, a.CardID)
	case ActionCastSkill:
		s.engine.CastSkill(a.Seat, a.Skill)
	}
}

// publish stores the latest snapshot and broadcasts it, plus match_over once per finished match.
func (s *Session) publish() {
	snap := s.engine.Snapshot()
	view := BuildMatchView(snap, s.engine.Skills())
	data, err := json.Marshal(view)
	if err != nil {
		slog.Error("marshaling match state", "tag", "game", "err", err)
		return
	}

	var over []byte
	s.mu.Lock()
	s.latest = snap
	if snap.Status == StatusFinished && snap.Result != nil && s.announced != snap.ID {
		s.announced = snap.ID
		over, _ = json.Marshal(MatchOverMsg{
			Type:    "match_over",
			MatchID: snap.ID,
			Winner:  snap.Result.WinnerLabel(),
			Reason:  string(snap.Result.Reason),
			Scores:  [2]int{snap.Players[0].Score, snap.Players[1].Score},
		})
	}
	subs := make([]chan []byte, 0, len(s.subscribers))
	for ch := range s.subscribers {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		wsutil.SafeSend(ch, data)
		if over != nil {
			wsutil.SafeSend(ch, over)
		}
	}
}

// Subscribe registers ch to receive every broadcast and immediately sends it the current state.
func (s *Session) Subscribe(ch chan []byte) {
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	snap := s.latest
	s.mu.Unlock()

	data, err := json.Marshal(BuildMatchView(snap, s.engine.Skills()))
	if err == nil {
		wsutil.SafeSend(ch, data)
	}
}

// Unsubscribe stops broadcasts to ch.
func (s *Session) Unsubscribe(ch chan []byte) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
}

// Snapshot returns the state as of the last processed step.
func (s *Session) Snapshot() MatchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest.Clone()
}

// View returns the match_state view of Snapshot.
func (s *Session) View() MatchView {
	return BuildMatchView(s.Snapshot(), s.engine.Skills())
}

// Vocabulary returns the pairs of the current match.
func (s *Session) Vocabulary() []vocab.VocabularyPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]vocab.VocabularyPair(nil), s.pairs...)
}

// Skills returns the skill definitions the engine was built with.
func (s *Session) Skills() []SkillDef {
	return s.engine.Skills()
}

// StartMatch asks the loop to start a new match and waits for the outcome.
func (s *Session) StartMatch(pairs []vocab.VocabularyPair, durationSeconds int) error {
	reply := make(chan error, 1)
	if !s.send(Action{Type: ActionStartMatch, Pairs: pairs, DurationSeconds: durationSeconds, Reply: reply}) {
		return matcherrors.ErrSessionStopped
	}
	select {
	case err := <-reply:
		return err
	case <-s.Done:
		return matcherrors.ErrSessionStopped
	}
}

// SelectCard queues a pick for seat.
func (s *Session) SelectCard(seat int, cardID string) {
	s.send(Action{Type: ActionSelectCard, Seat: seat, CardID: cardID})
}

// CastSkill queues a skill cast for seat.
func (s *Session) CastSkill(seat int, kind SkillKind) {
	s.send(Action{Type: ActionCastSkill, Seat: seat, Skill: kind})
}

func (s *Session) send(a Action) bool {
	select {
	case s.Actions <- a:
		return true
	case <-s.Done:
		return false
	}
}

// Stop ends the loop. Safe to call more than once.
func (s *Session) Stop() {
	s.once.Do(func() { close(s.stop) })
}
