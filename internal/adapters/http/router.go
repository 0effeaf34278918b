package http

import (
	"context"
	"path/filepath"

	"github.com/dkeye/Rendezvous/internal/adapters/signal"
	"github.com/dkeye/Rendezvous/internal/app/orch"
	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const clientTokenKey = "ct"

// ClientTokenMiddleware keeps a random client token in the session cookie
// and exposes it as "client_token" for log correlation.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
			}
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("RendezvousSession", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(cfg.StaticPath, "index.html"))
	})
	r.GET("/healthz", handleHealth)

	ctrl := signal.NewSignalWSController(o, signal.SettingsFrom(cfg),
		signal.NewRateLimiter(cfg.RateLimit.Count, cfg.RateLimit.Interval))
	ws := r.Group("/ws")
	ws.GET("/rooms", func(c *gin.Context) {
		ctrl.HandleRooms(ctx, c)
	})
	ws.GET("/directory", func(c *gin.Context) {
		ctrl.HandleDirectory(ctx, c)
	})

	h := &handlers{orch: o, ice: cfg.ICE}
	api := r.Group("/api")
	api.GET("/rooms", h.rooms)
	api.GET("/users", h.users)
	api.GET("/ice-servers", h.iceServers)

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
