package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wordmatch-pk-server/ai"
	"wordmatch-pk-server/api"
	"wordmatch-pk-server/auth"
	"wordmatch-pk-server/config"
	"wordmatch-pk-server/game"
	"wordmatch-pk-server/loghandler"
	"wordmatch-pk-server/skill"
	"wordmatch-pk-server/vocab"
	"wordmatch-pk-server/ws"
)

func main() {
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stdout, level)))

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	cfg := config.Load()
	level.Set(cfg.SlogLevel())
	slog.Info("configuration loaded", "tag", "main",
		"maxHp", cfg.MaxHP, "reward", cfg.MatchReward, "penalty", cfg.MismatchPenalty,
		"durations", fmt.Sprint(cfg.DurationPresets), "port", cfg.HTTPPort, "bot", cfg.BotEnabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource := openVocabulary(ctx, cfg)
	defer closeSource()

	var validator ws.TokenValidator
	if cfg.AuthBaseURL == "" {
		slog.Info("AUTH_BASE_URL is not set; displays connect without a token", "tag", "auth")
	} else {
		v, err := auth.NewValidator(ctx, cfg.AuthBaseURL)
		if err != nil {
			slog.Error("auth setup failed", "tag", "auth", "err", err)
			os.Exit(1)
		}
		validator = v
		slog.Info("auth configured", "tag", "auth", "baseURL", cfg.AuthBaseURL)
	}

	registry := skill.NewRegistry()
	skill.RegisterAll(registry, &cfg.Skills)

	session := game.NewSession(game.NewEngine(cfg, registry, nil, nil), nil)
	go session.Run()
	defer session.Stop()

	hub := ws.NewHub(session, source, validator)
	go hub.Run(ctx)

	if cfg.BotEnabled {
		botSend := make(chan []byte, 64)
		session.Subscribe(botSend)
		go ai.Run(botSend, session, 2, &cfg.Bot, nil)
		defer func() {
			session.Unsubscribe(botSend)
			close(botSend)
		}()
		slog.Info("practice bot enabled", "tag", "ai", "name", cfg.Bot.Name, "seat", 2)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: newRouter(hub, api.NewHandler(cfg, source, session)),
	}
	go func() {
		slog.Info("WordMatch PK server listening", "tag", "main", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "tag", "main", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down", "tag", "main")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "tag", "main", "err", err)
	}
}

// newRouter mounts the display socket, the REST API and a health check.
func newRouter(hub *ws.Hub, handler *api.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Request.URL.Path == "/ws" {
			return
		}
		slog.Debug("http", "tag", "http", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "dur", time.Since(start))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})
	handler.Register(r)
	return r
}

// openVocabulary picks Postgres when DATABASE_URL is set and reachable, else the vocabulary file.
// The returned source is nil when neither is available; start_match then reports an error.
func openVocabulary(ctx context.Context, cfg *config.Config) (vocab.Source, func()) {
	noop := func() {}

	pg, err := vocab.NewPostgresSource(ctx, cfg.DatabaseURL)
	switch {
	case err != nil:
		slog.Warn("Postgres unavailable; falling back to the vocabulary file", "tag", "vocab", "err", err)
	case pg != nil:
		return pg, pg.Close
	}

	fs, err := vocab.LoadFile(cfg.VocabularyFile)
	if err != nil {
		slog.Warn("no vocabulary available", "tag", "vocab", "file", cfg.VocabularyFile, "err", err)
		return nil, noop
	}
	lists, _ := fs.Lists(ctx)
	slog.Info("vocabulary loaded", "tag", "vocab", "file", cfg.VocabularyFile, "lists", len(lists))
	return fs, noop
}
