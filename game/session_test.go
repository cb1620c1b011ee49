package game

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wordmatch-pk-server/matcherrors"
)

func createTestSession(t *testing.T, maxHP int) *Session {
	t.Helper()
	cfg := testConfig()
	cfg.MaxHP = maxHP
	cfg.SuccessDelayMS = 20
	cfg.MismatchDelayMS = 50
	s := NewSession(NewEngine(cfg, newTestSkills(), nil, nil), nil)
	go s.Run()
	t.Cleanup(s.Stop)
	return s
}

// waitForMessages waits briefly for messages to arrive, then drains the channel.
func waitForMessages(ch chan []byte, timeout time.Duration) [][]byte {
	var msgs [][]byte
	timer := time.After(timeout)
	for {
		select {
		case msg := <-ch:
			msgs = append(msgs, msg)
		case <-timer:
			for {
				select {
				case msg := <-ch:
					msgs = append(msgs, msg)
				default:
					return msgs
				}
			}
		}
	}
}

func messagesOfType(t *testing.T, msgs [][]byte, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, raw := range msgs {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("invalid JSON %s: %v", raw, err)
		}
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

func TestSession_SubscribeGetsCurrentState(t *testing.T) {
	s := createTestSession(t, 100)
	ch := make(chan []byte, 64)
	s.Subscribe(ch)
	defer s.Unsubscribe(ch)

	states := messagesOfType(t, waitForMessages(ch, 20*time.Millisecond), "match_state")
	if len(states) != 1 || states[0]["status"] != "setup" {
		t.Fatalf("expected one setup state, got %v", states)
	}

	if err := s.StartMatch(testPairs(4), 60); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	states = messagesOfType(t, waitForMessages(ch, 50*time.Millisecond), "match_state")
	if len(states) == 0 || states[len(states)-1]["status"] != "playing" {
		t.Fatalf("expected a playing state, got %v", states)
	}
	if got := len(s.Vocabulary()); got != 4 {
		t.Errorf("expected 4 vocabulary pairs, got %d", got)
	}
}

func TestSession_StartMatchEmptyVocabulary(t *testing.T) {
	s := createTestSession(t, 100)
	err := s.StartMatch(nil, 60)
	if !errors.Is(err, matcherrors.ErrInsufficientVocabulary) {
		t.Fatalf("expected ErrInsufficientVocabulary, got %v", err)
	}
	if s.Snapshot().Status != StatusSetup {
		t.Error("a failed start must not change the status")
	}
}

func TestSession_MismatchResolvesOnTimer(t *testing.T) {
	s := createTestSession(t, 100)
	if err := s.StartMatch(testPairs(4), 60); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}

	s.SelectCard(1, CardID(1, "w1", FaceWord))
	s.SelectCard(1, CardID(1, "w2", FaceWord))
	time.Sleep(150 * time.Millisecond)

	m := s.Snapshot()
	p := m.Player(1)
	if p.HP != 90 || p.FrozenByMismatch {
		t.Errorf("expected HP=90 and unfrozen, got HP=%d frozen=%v", p.HP, p.FrozenByMismatch)
	}
}

func TestSession_MatchOverSentOnce(t *testing.T) {
	s := createTestSession(t, 10)
	ch := make(chan []byte, 64)
	s.Subscribe(ch)
	defer s.Unsubscribe(ch)

	if err := s.StartMatch(testPairs(4), 60); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	s.SelectCard(2, CardID(2, "w1", FaceWord))
	s.SelectCard(2, CardID(2, "w2", FaceWord))
	// Picks after the match ends still trigger a broadcast but no second match_over.
	time.Sleep(100 * time.Millisecond)
	s.SelectCard(1, CardID(1, "w1", FaceWord))

	msgs := waitForMessages(ch, 100*time.Millisecond)
	overs := messagesOfType(t, msgs, "match_over")
	if len(overs) != 1 {
		t.Fatalf("expected exactly one match_over, got %d", len(overs))
	}
	if overs[0]["winner"] != "1" || overs[0]["reason"] != "hpDepleted" {
		t.Errorf("unexpected match_over: %v", overs[0])
	}
	if s.View().Status != "finished" {
		t.Errorf("expected finished view, got %q", s.View().Status)
	}
}

func TestSession_CastSkill(t *testing.T) {
	s := createTestSession(t, 100)
	if err := s.StartMatch(testPairs(4), 60); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	// Three matches earn the three charges freeze costs.
	for _, id := range []string{"w1", "w2", "w3"} {
		a, b := pairOf(1, id)
		s.SelectCard(1, a)
		s.SelectCard(1, b)
	}
	s.CastSkill(1, SkillFreeze)
	time.Sleep(50 * time.Millisecond)

	m := s.Snapshot()
	if !m.Player(2).FrozenBySkill {
		t.Error("expected seat 2 frozen by skill")
	}
	if m.Player(1).SkillCharges != 0 || m.Player(1).Cooldown(SkillFreeze) != 10 {
		t.Errorf("expected charges=0 cooldown=10, got %d/%d", m.Player(1).SkillCharges, m.Player(1).Cooldown(SkillFreeze))
	}
}

func TestSession_StopEndsLoop(t *testing.T) {
	s := createTestSession(t, 100)
	s.Stop()
	select {
	case <-s.Done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	if err := s.StartMatch(testPairs(4), 60); !errors.Is(err, matcherrors.ErrSessionStopped) {
		t.Errorf("expected ErrSessionStopped, got %v", err)
	}
	s.Stop()
}
