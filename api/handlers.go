package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wordmatch-pk-server/config"
	"wordmatch-pk-server/game"
	"wordmatch-pk-server/matcherrors"
	"wordmatch-pk-server/vocab"
)

// StateProvider exposes the current match view.
type StateProvider interface {
	View() game.MatchView
}

// Handler holds dependencies for API handlers.
type Handler struct {
	Config *config.Config
	Vocab  vocab.Source
	State  StateProvider
}

// NewHandler creates a new API handler. source may be nil when no vocabulary is configured.
func NewHandler(cfg *config.Config, source vocab.Source, state StateProvider) *Handler {
	return &Handler{
		Config: cfg,
		Vocab:  source,
		State:  state,
	}
}

// Register mounts every API route on r.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api")
	g.Use(CORS())
	g.GET("/presets", h.Presets)
	g.GET("/vocabulary", h.Lists)
	g.GET("/vocabulary/:id", h.Pairs)
	g.GET("/state", h.MatchState)
	// Preflight; CORS answers it before this handler runs.
	g.OPTIONS("/*path", func(c *gin.Context) {})
}

// CORS sets CORS headers and answers preflight requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// PresetsResponse is the JSON structure for /api/presets.
type PresetsResponse struct {
	Durations       []int `json:"durations"`
	DefaultDuration int   `json:"defaultDuration"`
	MaxHP           int   `json:"maxHp"`
	MaxSkillCharges int   `json:"maxSkillCharges"`
}

// Presets returns the match durations a display may offer.
func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, PresetsResponse{
		Durations:       h.Config.DurationPresets,
		DefaultDuration: h.Config.DefaultDurationSec,
		MaxHP:           h.Config.MaxHP,
		MaxSkillCharges: h.Config.MaxSkillCharges,
	})
}

// Lists returns the available vocabulary lists.
func (h *Handler) Lists(c *gin.Context) {
	if h.Vocab == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": matcherrors.ErrSourceUnavailable.Error()})
		return
	}
	lists, err := h.Vocab.Lists(c.Request.Context())
	if err != nil {
		slog.Error("listing vocabulary failed", "tag", "api", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vocabulary lists"})
		return
	}
	if lists == nil {
		lists = []vocab.ListSummary{}
	}
	c.JSON(http.StatusOK, lists)
}

// Pairs returns the pairs of one vocabulary list.
func (h *Handler) Pairs(c *gin.Context) {
	if h.Vocab == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": matcherrors.ErrSourceUnavailable.Error()})
		return
	}
	pairs, err := h.Vocab.Pairs(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, matcherrors.ErrListNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		slog.Error("loading vocabulary failed", "tag", "api", "list", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load vocabulary"})
	default:
		c.JSON(http.StatusOK, pairs)
	}
}

// MatchState returns the current match_state view, the same payload the socket broadcasts.
func (h *Handler) MatchState(c *gin.Context) {
	c.JSON(http.StatusOK, h.State.View())
}
