package skill

import (
	"math/rand"
	"time"

	"wordmatch-pk-server/config"
	"wordmatch-pk-server/game"
)

// Skill defines the interface that all offensive skills must implement.
type Skill interface {
	Kind() game.SkillKind
	Name() string
	Description() string
	Cost() int
	CooldownSec() int
	Duration() time.Duration
	Apply(target *game.PlayerState, rng *rand.Rand) []string
	Expire(target *game.PlayerState, affected []string)
}

// Registry holds all registered skills indexed by kind.
type Registry struct {
	skills map[game.SkillKind]Skill
	order  []game.SkillKind // registration order for deterministic AllSkills()
}

// NewRegistry creates a new empty skill registry.
func NewRegistry() *Registry {
	return &Registry{
		skills: make(map[game.SkillKind]Skill),
	}
}

// Register adds a skill to the registry. A later registration of the same kind replaces the earlier one.
func (r *Registry) Register(s Skill) {
	kind := s.Kind()
	if _, exists := r.skills[kind]; !exists {
		r.order = append(r.order, kind)
	}
	r.skills[kind] = s
}

// GetSkill returns the skill definition for the game package.
// It satisfies the game.SkillProvider interface.
func (r *Registry) GetSkill(kind game.SkillKind) (game.SkillDef, bool) {
	s, ok := r.skills[kind]
	if !ok {
		return game.SkillDef{}, false
	}
	return toDef(s), true
}

// AllSkills returns all registered skills in registration order.
// It satisfies the game.SkillProvider interface.
func (r *Registry) AllSkills() []game.SkillDef {
	defs := make([]game.SkillDef, 0, len(r.order))
	for _, kind := range r.order {
		defs = append(defs, toDef(r.skills[kind]))
	}
	return defs
}

func toDef(s Skill) game.SkillDef {
	return game.SkillDef{
		Kind:        s.Kind(),
		Name:        s.Name(),
		Description: s.Description(),
		Cost:        s.Cost(),
		CooldownSec: s.CooldownSec(),
		Duration:    s.Duration(),
		Apply:       s.Apply,
		Expire:      s.Expire,
	}
}

// RegisterAll registers the built-in skills using the given skill config.
// A nil cfg registers them with the default rules.
func RegisterAll(r *Registry, cfg *config.SkillsConfig) {
	if cfg == nil {
		cfg = &config.Defaults().Skills
	}
	r.Register(&FreezeSkill{
		CostValue:     cfg.Freeze.Cost,
		CooldownValue: cfg.Freeze.CooldownSec,
		DurationValue: time.Duration(cfg.Freeze.DurationMS) * time.Millisecond,
	})
	r.Register(&FogSkill{
		CostValue:     cfg.Fog.Cost,
		CooldownValue: cfg.Fog.CooldownSec,
		DurationValue: time.Duration(cfg.Fog.DurationMS) * time.Millisecond,
		Cards:         cfg.Fog.Cards,
	})
}
