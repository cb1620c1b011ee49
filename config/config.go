package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// BotParams holds the parameters for the practice bot that can take one seat.
type BotParams struct {
	Name          string `json:"name"`
	DelayMinMS    int    `json:"delay_min_ms"`
	DelayMaxMS    int    `json:"delay_max_ms"`
	MistakeChance int    `json:"mistake_chance"` // 0-100, probability to pick a wrong second card
	SkillChance   int    `json:"skill_chance"`   // 0-100, probability to cast a ready skill on each decision
}

// FreezeSkillConfig holds configuration for the Freeze skill.
type FreezeSkillConfig struct {
	Cost        int `json:"cost"`
	CooldownSec int `json:"cooldown_sec"`
	DurationMS  int `json:"duration_ms"`
}

// FogSkillConfig holds configuration for the Fog skill.
type FogSkillConfig struct {
	Cost        int `json:"cost"`
	CooldownSec int `json:"cooldown_sec"`
	DurationMS  int `json:"duration_ms"`
	Cards       int `json:"cards"`
}

// SkillsConfig holds per-skill configuration sections.
type SkillsConfig struct {
	Freeze FreezeSkillConfig `json:"freeze"`
	Fog    FogSkillConfig    `json:"fog"`
}

// Config holds the match rules and the host settings.
type Config struct {
	MaxHP           int `json:"max_hp"`
	MatchReward     int `json:"match_reward"`
	MismatchPenalty int `json:"mismatch_penalty"`
	MaxSkillCharges int `json:"max_skill_charges"`
	SuccessDelayMS  int `json:"success_delay_ms"`
	MismatchDelayMS int `json:"mismatch_delay_ms"`

	// DurationPresets are the match lengths a match may be started with, in seconds.
	DurationPresets    []int `json:"duration_presets"`
	DefaultDurationSec int   `json:"default_duration_sec"`

	Skills SkillsConfig `json:"skills"`

	HTTPPort       int    `json:"http_port"`
	VocabularyFile string `json:"vocabulary_file"`
	DatabaseURL    string `json:"database_url"`
	AuthBaseURL    string `json:"auth_base_url"`
	LogLevel       string `json:"log_level"`

	BotEnabled bool      `json:"bot_enabled"`
	Bot        BotParams `json:"bot"`
}

// Defaults returns a Config with the standard match rules.
func Defaults() *Config {
	return &Config{
		MaxHP:              100,
		MatchReward:        100,
		MismatchPenalty:    10,
		MaxSkillCharges:    10,
		SuccessDelayMS:     250,
		MismatchDelayMS:    1000,
		DurationPresets:    []int{60, 120, 180, 240, 300},
		DefaultDurationSec: 180,
		Skills: SkillsConfig{
			Freeze: FreezeSkillConfig{Cost: 3, CooldownSec: 10, DurationMS: 3000},
			Fog:    FogSkillConfig{Cost: 3, CooldownSec: 10, DurationMS: 6000, Cards: 3},
		},
		HTTPPort:       8080,
		VocabularyFile: "vocabulary.json",
		LogLevel:       "info",
		Bot:            BotParams{Name: "Practice Bot", DelayMinMS: 900, DelayMaxMS: 2200, MistakeChance: 20, SkillChance: 50},
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config.json", "tag", "config", "err", err)
		}
	}

	overrideInt(&cfg.MaxHP, "MAX_HP")
	overrideInt(&cfg.MatchReward, "MATCH_REWARD")
	overrideInt(&cfg.MismatchPenalty, "MISMATCH_PENALTY")
	overrideInt(&cfg.MaxSkillCharges, "MAX_SKILL_CHARGES")
	overrideInt(&cfg.SuccessDelayMS, "SUCCESS_DELAY_MS")
	overrideInt(&cfg.MismatchDelayMS, "MISMATCH_DELAY_MS")
	overrideInt(&cfg.DefaultDurationSec, "DEFAULT_DURATION_SEC")
	overrideIntList(&cfg.DurationPresets, "DURATION_PRESETS")
	overrideInt(&cfg.Skills.Freeze.Cost, "SKILL_FREEZE_COST")
	overrideInt(&cfg.Skills.Freeze.CooldownSec, "SKILL_FREEZE_COOLDOWN_SEC")
	overrideInt(&cfg.Skills.Freeze.DurationMS, "SKILL_FREEZE_DURATION_MS")
	overrideInt(&cfg.Skills.Fog.Cost, "SKILL_FOG_COST")
	overrideInt(&cfg.Skills.Fog.CooldownSec, "SKILL_FOG_COOLDOWN_SEC")
	overrideInt(&cfg.Skills.Fog.DurationMS, "SKILL_FOG_DURATION_MS")
	overrideInt(&cfg.Skills.Fog.Cards, "SKILL_FOG_CARDS")
	overrideInt(&cfg.HTTPPort, "HTTP_PORT")
	overrideString(&cfg.VocabularyFile, "VOCABULARY_FILE")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideBool(&cfg.BotEnabled, "BOT_ENABLED")
	overrideString(&cfg.Bot.Name, "BOT_NAME")
	overrideInt(&cfg.Bot.DelayMinMS, "BOT_DELAY_MIN_MS")
	overrideInt(&cfg.Bot.DelayMaxMS, "BOT_DELAY_MAX_MS")
	overrideInt(&cfg.Bot.MistakeChance, "BOT_MISTAKE_CHANCE")
	overrideInt(&cfg.Bot.SkillChance, "BOT_SKILL_CHANCE")

	return cfg
}

// ValidDuration reports whether sec is one of the configured duration presets.
func (c *Config) ValidDuration(sec int) bool {
	for _, p := range c.DurationPresets {
		if p == sec {
			return true
		}
	}
	return false
}

// ResolveDuration returns sec when it is a preset, otherwise the default duration.
func (c *Config) ResolveDuration(sec int) int {
	if c.ValidDuration(sec) {
		return sec
	}
	return c.DefaultDurationSec
}

// SlogLevel maps LogLevel to a slog.Level; unknown values map to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

// overrideIntList parses a comma-separated list such as "60,120,180".
// The whole list is rejected if any element is not an integer.
func overrideIntList(field *[]int, envKey string) {
	val := os.Getenv(envKey)
	if val == "" {
		return
	}
	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
			return
		}
		out = append(out, n)
	}
	*field = out
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
