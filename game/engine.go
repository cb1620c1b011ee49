package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"wordmatch-pk-server/config"
	"wordmatch-pk-server/matcherrors"
	"wordmatch-pk-server/vocab"
)

// SkillKind identifies an offensive skill.
type SkillKind string

const (
	SkillFreeze SkillKind = "freeze"
	SkillFog    SkillKind = "fog"
)

// SkillDef holds the definition of a skill as seen by the game package.
// Apply receives the opponent of the caster and returns the ids of the cards it touched;
// Expire receives the same target and ids when the effect duration elapses.
type SkillDef struct {
	Kind        SkillKind
	Name        string
	Description string
	Cost        int
	CooldownSec int
	Duration    time.Duration
	Apply       func(target *PlayerState, rng *rand.Rand) []string
	Expire      func(target *PlayerState, affected []string)
}

// SkillProvider abstracts the skill registry so the game package
// does not import the skill package directly (avoids circular deps).
type SkillProvider interface {
	GetSkill(kind SkillKind) (SkillDef, bool)
	AllSkills() []SkillDef
}

// Clock supplies the current time. Tests inject a manual clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Engine owns one match: both seats, the round clock and every deferred event.
// It is not safe for concurrent use; Session serializes access to it.
type Engine struct {
	cfg    *config.Config
	skills SkillProvider
	clock  Clock
	rng    *rand.Rand

	state MatchState

	// epoch increases on every StartMatch and on finish; events from older epochs never fire.
	epoch uint64
	sched scheduler

	startedAt  time.Time
	elapsedSec int
}

// NewEngine creates an engine in setup status. clock and rng may be nil.
func NewEngine(cfg *config.Config, skills SkillProvider, clock Clock, rng *rand.Rand) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:    cfg,
		skills: skills,
		clock:  clock,
		rng:    rng,
		state:  MatchState{Status: StatusSetup},
	}
}

// Skills returns the registered skill definitions in registry order.
func (e *Engine) Skills() []SkillDef {
	if e.skills == nil {
		return nil
	}
	return e.skills.AllSkills()
}

// Epoch returns the current match epoch.
func (e *Engine) Epoch() uint64 { return e.epoch }

// StartMatch discards any previous match and starts a new one with fresh decks.
// A duration that is not a configured preset falls back to the default duration.
func (e *Engine) StartMatch(pairs []vocab.VocabularyPair, durationSeconds int) (MatchState, error) {
	if len(pairs) == 0 {
		return e.Snapshot(), matcherrors.ErrInsufficientVocabulary
	}
	dur := e.cfg.ResolveDuration(durationSeconds)
	if dur != durationSeconds {
		slog.Info("duration is not a preset; using default", "tag", "game", "requested", durationSeconds, "duration", dur)
	}

	e.epoch++
	e.startedAt = e.clock.Now()
	e.elapsedSec = 0

	decks := BuildDecks(pairs, e.rng)
	players := [2]*PlayerState{
		NewPlayerState(1, e.cfg.MaxHP, decks[0]),
		NewPlayerState(2, e.cfg.MaxHP, decks[1]),
	}
	for _, def := range e.Skills() {
		players[0].Cooldowns[def.Kind] = 0
		players[1].Cooldowns[def.Kind] = 0
	}
	e.state = MatchState{
		ID:               uuid.NewString(),
		Status:           StatusPlaying,
		DurationSeconds:  dur,
		RemainingSeconds: dur,
		Players:          players,
	}
	slog.Info("match started", "tag", "game", "match", e.state.ID, "pairs", len(pairs), "duration", dur, "epoch", e.epoch)
	return e.Snapshot(), nil
}

// Snapshot returns a deep copy of the current match state.
func (e *Engine) Snapshot() MatchState {
	return e.state.Clone()
}

// Tick processes every deferred event and second boundary due at or before now,
// in time order. The host calls it at least once per second while playing.
func (e *Engine) Tick(now time.Time) MatchState {
	e.advance(now)
	return e.Snapshot()
}

// NextDue returns the next instant at which Tick has work to do.
// ok is false when the match is not playing.
func (e *Engine) NextDue() (due time.Time, ok bool) {
	if e.state.Status != StatusPlaying {
		return time.Time{}, false
	}
	due = e.nextSecond()
	if ev := e.sched.peek(e.epoch); ev != nil && ev.due.Before(due) {
		due = ev.due
	}
	return due, true
}

func (e *Engine) nextSecond() time.Time {
	return e.startedAt.Add(time.Duration(e.elapsedSec+1) * time.Second)
}

// advance runs due work in order. Deferred events due at the same instant as a
// second boundary run before it.
func (e *Engine) advance(now time.Time) {
	for e.state.Status == StatusPlaying {
		boundary := e.nextSecond()
		if ev := e.sched.peek(e.epoch); ev != nil && !ev.due.After(now) && !ev.due.After(boundary) {
			e.sched.pop()
			e.handleEvent(ev)
			continue
		}
		if !boundary.After(now) {
			e.elapsedSec++
			e.secondElapsed()
			continue
		}
		return
	}
}

func (e *Engine) handleEvent(ev *event) {
	switch ev.kind {
	case eventSuccessResolve:
		e.resolveSuccess(ev.seat, ev.cards)
	case eventMismatchResolve:
		e.resolveMismatch(ev.seat, ev.cards)
	case eventSkillExpire:
		e.expireSkill(ev.seat, ev.skill, ev.gen, ev.cards)
	}
}

// schedule queues a deferred event under the current epoch.
func (e *Engine) schedule(after time.Duration, ev *event) {
	ev.due = e.clock.Now().Add(after)
	ev.epoch = e.epoch
	e.sched.push(ev)
}

// finish records the result and invalidates every outstanding deferred event.
func (e *Engine) finish(r Result) {
	if e.state.Status != StatusPlaying {
		return
	}
	e.state.Status = StatusFinished
	e.state.Result = &r
	e.epoch++
	p1, p2 := e.state.Players[0], e.state.Players[1]
	slog.Info("match finished", "tag", "game", "match", e.state.ID,
		"winner", r.WinnerLabel(), "reason", string(r.Reason),
		"score1", p1.Score, "score2", p2.Score, "hp1", p1.HP, "hp2", p2.HP)
}

// playing returns the seat's state when the match is playing, else nil.
func (e *Engine) playing(seat int) *PlayerState {
	if e.state.Status != StatusPlaying {
		return nil
	}
	return e.state.Player(seat)
}

func (e *Engine) opponent(seat int) *PlayerState {
	return e.state.Player(3 - seat)
}
