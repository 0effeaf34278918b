// Package signal serves both signaling wire protocols over websockets and
// routes decoded frames to the orchestrator.
package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/dkeye/Rendezvous/internal/app/orch"
	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Settings struct {
	ReadLimit  int64
	SendBuffer int
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		ReadLimit:  cfg.ReadLimit,
		SendBuffer: cfg.SendBuffer,
		PingPeriod: cfg.PingPeriod,
		PongWait:   cfg.PongWait,
		WriteWait:  cfg.WriteWait,
	}
}

type SignalWSController struct {
	Orch *orch.Orchestrator

	settings Settings
	limiter  *RateLimiter
}

func NewSignalWSController(o *orch.Orchestrator, settings Settings, limiter *RateLimiter) *SignalWSController {
	if settings.SendBuffer <= 0 {
		settings.SendBuffer = 64
	}
	if settings.WriteWait <= 0 {
		settings.WriteWait = 5 * time.Second
	}
	if settings.PingPeriod <= 0 {
		settings.PingPeriod = 54 * time.Second
	}
	if settings.PongWait <= settings.PingPeriod {
		settings.PongWait = settings.PingPeriod + settings.PingPeriod/9
	}
	if limiter == nil {
		limiter = NewRateLimiter(100, time.Second)
	}
	return &SignalWSController{Orch: o, settings: settings, limiter: limiter}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleRooms accepts a room protocol connection.
func (ctl *SignalWSController) HandleRooms(ctx context.Context, c *gin.Context) {
	ctl.accept(ctx, c, domain.ProtocolRooms)
}

// HandleDirectory accepts a directory protocol connection.
func (ctl *SignalWSController) HandleDirectory(ctx context.Context, c *gin.Context) {
	ctl.accept(ctx, c, domain.ProtocolDirectory)
}

func (ctl *SignalWSController) accept(ctx context.Context, c *gin.Context, proto domain.Protocol) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	conn := newWsSignalConn(ws, proto, ctl.settings.SendBuffer)
	logger := log.With().
		Str("module", "signal").
		Str("conn", conn.ID().String()).
		Str("proto", proto.String()).
		Str("ct", c.GetString("client_token")).
		Logger()

	ctl.Orch.Connect(conn)
	logger.Info().Str("remote", c.Request.RemoteAddr).Msg("new WS connection")

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn, logger)
	go ctl.readPump(ctx, cancel, conn, logger)
}
