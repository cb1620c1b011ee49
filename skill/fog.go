package skill

import (
	"fmt"
	"math/rand"
	"time"

	"wordmatch-pk-server/game"
)

// FogSkill hides the text of a few random cards on the opponent's board.
// Fogged cards can still be picked and still resolve normally.
type FogSkill struct {
	CostValue     int
	CooldownValue int
	DurationValue time.Duration
	Cards         int
}

func (f *FogSkill) Kind() game.SkillKind { return game.SkillFog }
func (f *FogSkill) Name() string         { return "Fog" }
func (f *FogSkill) Description() string {
	return fmt.Sprintf("Hides up to %d of your opponent's cards for %s.", f.Cards, f.DurationValue)
}
func (f *FogSkill) Cost() int               { return f.CostValue }
func (f *FogSkill) CooldownSec() int        { return f.CooldownValue }
func (f *FogSkill) Duration() time.Duration { return f.DurationValue }

// Apply replaces the target's fog with up to Cards cards still in play, chosen with rng.
func (f *FogSkill) Apply(target *game.PlayerState, rng *rand.Rand) []string {
	ids := target.FogCandidates()
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	if len(ids) > f.Cards {
		ids = ids[:f.Cards]
	}
	target.SetFog(ids)
	return ids
}

// Expire lifts the fog from the cards Apply chose; matched ones already left it.
func (f *FogSkill) Expire(target *game.PlayerState, affected []string) {
	target.ClearFog(affected)
}
