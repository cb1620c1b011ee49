package skill

import (
	"fmt"
	"math/rand"
	"time"

	"wordmatch-pk-server/game"
)

// FreezeSkill blocks every pick of the opponent for a short duration.
type FreezeSkill struct {
	CostValue     int
	CooldownValue int
	DurationValue time.Duration
}

func (f *FreezeSkill) Kind() game.SkillKind { return game.SkillFreeze }
func (f *FreezeSkill) Name() string         { return "Freeze" }
func (f *FreezeSkill) Description() string {
	return fmt.Sprintf("Your opponent cannot pick any card for %s.", f.DurationValue)
}
func (f *FreezeSkill) Cost() int               { return f.CostValue }
func (f *FreezeSkill) CooldownSec() int        { return f.CooldownValue }
func (f *FreezeSkill) Duration() time.Duration { return f.DurationValue }

func (f *FreezeSkill) Apply(target *game.PlayerState, _ *rand.Rand) []string {
	target.FrozenBySkill = true
	return nil
}

func (f *FreezeSkill) Expire(target *game.PlayerState, _ []string) {
	target.FrozenBySkill = false
}
