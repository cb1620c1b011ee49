package skill

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"wordmatch-pk-server/config"
	"wordmatch-pk-server/game"
	"wordmatch-pk-server/vocab"
)

func testPlayer(pairs int) *game.PlayerState {
	vp := make([]vocab.VocabularyPair, pairs)
	for i := range vp {
		vp[i] = vocab.VocabularyPair{ID: fmt.Sprintf("w%d", i+1), Word: "w", Meaning: "m"}
	}
	return game.NewPlayerState(2, 100, game.BuildDeck(2, vp, rand.New(rand.NewSource(1))))
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&FreezeSkill{CostValue: 3, CooldownValue: 10, DurationValue: 3 * time.Second})

	def, ok := r.GetSkill(game.SkillFreeze)
	if !ok {
		t.Fatal("expected to find freeze in registry")
	}
	if def.Name != "Freeze" || def.Cost != 3 || def.CooldownSec != 10 || def.Duration != 3*time.Second {
		t.Errorf("unexpected def: %+v", def)
	}
	if def.Apply == nil || def.Expire == nil {
		t.Error("expected Apply and Expire to be set")
	}
}

func TestRegistryGetNonExistent(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.GetSkill(game.SkillFog); ok {
		t.Error("expected GetSkill to return false for an unregistered skill")
	}
}

func TestRegisterAllDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r, nil)

	all := r.AllSkills()
	if len(all) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(all))
	}
	if all[0].Kind != game.SkillFreeze || all[1].Kind != game.SkillFog {
		t.Errorf("unexpected order: %s, %s", all[0].Kind, all[1].Kind)
	}
	if all[0].Duration != 3*time.Second || all[1].Duration != 6*time.Second {
		t.Errorf("unexpected durations: %s, %s", all[0].Duration, all[1].Duration)
	}
	for _, def := range all {
		if def.Cost != 3 || def.CooldownSec != 10 {
			t.Errorf("%s: expected cost 3 and cooldown 10, got %d/%d", def.Kind, def.Cost, def.CooldownSec)
		}
	}
}

func TestRegisterAllFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Skills.Fog.Cards = 5
	cfg.Skills.Freeze.Cost = 4

	r := NewRegistry()
	RegisterAll(r, &cfg.Skills)
	freeze, _ := r.GetSkill(game.SkillFreeze)
	if freeze.Cost != 4 {
		t.Errorf("expected cost 4, got %d", freeze.Cost)
	}

	fog, _ := r.GetSkill(game.SkillFog)
	p := testPlayer(6)
	if got := len(fog.Apply(p, rand.New(rand.NewSource(1)))); got != 5 {
		t.Errorf("expected 5 fogged cards, got %d", got)
	}
}

func TestRegisterReplacesSameKind(t *testing.T) {
	r := NewRegistry()
	r.Register(&FogSkill{CostValue: 3, Cards: 3})
	r.Register(&FogSkill{CostValue: 2, Cards: 1})

	all := r.AllSkills()
	if len(all) != 1 || all[0].Cost != 2 {
		t.Errorf("expected a single replaced fog skill, got %+v", all)
	}
}

func TestFreezeApplyAndExpire(t *testing.T) {
	f := &FreezeSkill{}
	p := testPlayer(2)

	if got := f.Apply(p, nil); got != nil {
		t.Errorf("freeze touches no cards, got %v", got)
	}
	if !p.FrozenBySkill || !p.Frozen() {
		t.Fatal("expected target frozen")
	}
	f.Expire(p, nil)
	if p.FrozenBySkill {
		t.Error("expected freeze cleared")
	}
}

func TestFogApplyPicksCardsInPlay(t *testing.T) {
	f := &FogSkill{Cards: 3}
	p := testPlayer(3)
	p.Deck[0].Matched = true
	p.Deck[1].Selected = true
	p.Deck[2].Flag = game.FlagError
	excluded := []string{p.Deck[0].ID, p.Deck[1].ID, p.Deck[2].ID}

	ids := f.Apply(p, rand.New(rand.NewSource(3)))
	if len(ids) != 3 {
		t.Fatalf("expected 3 fogged cards, got %d", len(ids))
	}
	for _, id := range excluded {
		if p.IsFogged(id) {
			t.Errorf("card %s is not in play and must not be fogged", id)
		}
	}

	f.Expire(p, ids)
	if len(p.Fogged) != 0 {
		t.Errorf("expected fog cleared, got %v", p.Fogged)
	}
}

func TestFogApplyFewerCandidates(t *testing.T) {
	f := &FogSkill{Cards: 3}
	p := testPlayer(1)
	p.Deck[0].Matched = true

	ids := f.Apply(p, rand.New(rand.NewSource(1)))
	if len(ids) != 1 {
		t.Errorf("expected only one candidate fogged, got %v", ids)
	}
}

func TestFogReplacesPreviousSet(t *testing.T) {
	f := &FogSkill{Cards: 2}
	p := testPlayer(6)
	rng := rand.New(rand.NewSource(8))

	f.Apply(p, rng)
	second := f.Apply(p, rng)
	if len(p.Fogged) != len(second) {
		t.Errorf("expected the second cast to replace the set, fogged=%v", p.Fogged)
	}

	// The superseded expiry is not run by the engine; running the current one clears everything.
	f.Expire(p, second)
	if len(p.Fogged) != 0 {
		t.Errorf("expected fog cleared, got %v", p.Fogged)
	}
}

func TestDescriptions(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r, nil)
	for _, def := range r.AllSkills() {
		if def.Description == "" {
			t.Errorf("%s has no description", def.Kind)
		}
	}
}
