package config

import (
	"log/slog"
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.MaxHP != 100 {
		t.Errorf("expected MaxHP=100, got %d", cfg.MaxHP)
	}
	if cfg.MatchReward != 100 {
		t.Errorf("expected MatchReward=100, got %d", cfg.MatchReward)
	}
	if cfg.MismatchPenalty != 10 {
		t.Errorf("expected MismatchPenalty=10, got %d", cfg.MismatchPenalty)
	}
	if cfg.MaxSkillCharges != 10 {
		t.Errorf("expected MaxSkillCharges=10, got %d", cfg.MaxSkillCharges)
	}
	if cfg.SuccessDelayMS != 250 {
		t.Errorf("expected SuccessDelayMS=250, got %d", cfg.SuccessDelayMS)
	}
	if cfg.MismatchDelayMS != 1000 {
		t.Errorf("expected MismatchDelayMS=1000, got %d", cfg.MismatchDelayMS)
	}
	if cfg.Skills.Freeze.Cost != 3 || cfg.Skills.Freeze.CooldownSec != 10 || cfg.Skills.Freeze.DurationMS != 3000 {
		t.Errorf("unexpected freeze defaults: %+v", cfg.Skills.Freeze)
	}
	if cfg.Skills.Fog.Cost != 3 || cfg.Skills.Fog.CooldownSec != 10 || cfg.Skills.Fog.DurationMS != 6000 || cfg.Skills.Fog.Cards != 3 {
		t.Errorf("unexpected fog defaults: %+v", cfg.Skills.Fog)
	}
	if cfg.DefaultDurationSec != 180 {
		t.Errorf("expected DefaultDurationSec=180, got %d", cfg.DefaultDurationSec)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("MATCH_REWARD", "50")
	os.Setenv("HTTP_PORT", "9090")
	os.Setenv("DURATION_PRESETS", "30, 90")
	os.Setenv("BOT_ENABLED", "true")
	defer func() {
		os.Unsetenv("MATCH_REWARD")
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("DURATION_PRESETS")
		os.Unsetenv("BOT_ENABLED")
	}()

	cfg := Load()

	if cfg.MatchReward != 50 {
		t.Errorf("expected MatchReward=50 after env override, got %d", cfg.MatchReward)
	}
	if cfg.HTTPPort != 9090 {
		t.Errorf("expected HTTPPort=9090 after env override, got %d", cfg.HTTPPort)
	}
	if len(cfg.DurationPresets) != 2 || cfg.DurationPresets[0] != 30 || cfg.DurationPresets[1] != 90 {
		t.Errorf("expected DurationPresets=[30 90], got %v", cfg.DurationPresets)
	}
	if !cfg.BotEnabled {
		t.Error("expected BotEnabled=true after env override")
	}
	// Non-overridden fields should remain default
	if cfg.MismatchPenalty != 10 {
		t.Errorf("expected MismatchPenalty=10 (default), got %d", cfg.MismatchPenalty)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	os.Setenv("MATCH_REWARD", "invalid")
	os.Setenv("DURATION_PRESETS", "60,abc")
	defer os.Unsetenv("MATCH_REWARD")
	defer os.Unsetenv("DURATION_PRESETS")

	cfg := Load()

	if cfg.MatchReward != 100 {
		t.Errorf("expected MatchReward=100 (default) with invalid env, got %d", cfg.MatchReward)
	}
	if len(cfg.DurationPresets) != 5 {
		t.Errorf("expected default presets with invalid env, got %v", cfg.DurationPresets)
	}
}

func TestResolveDuration(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		in   int
		want int
	}{
		{60, 60},
		{300, 300},
		{45, 180},
		{0, 180},
		{-5, 180},
	}
	for _, tt := range tests {
		if got := cfg.ResolveDuration(tt.in); got != tt.want {
			t.Errorf("ResolveDuration(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "DEBUG"
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.SlogLevel())
	}
	cfg.LogLevel = "nonsense"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("expected info level for unknown value, got %v", cfg.SlogLevel())
	}
}
