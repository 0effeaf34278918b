package signal

import (
	"context"
	"time"

	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn, logger zerolog.Logger) {
	ticker := time.NewTicker(ctl.settings.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				logger.Debug().Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.settings.WriteWait)); err != nil {
				logger.Error().Err(err).Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Warn().Err(err).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(ctl.settings.WriteWait)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				logger.Warn().Err(err).Msg("writePump ping")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, c *WsSignalConn, logger zerolog.Logger) {
	defer func() {
		ctl.Orch.Disconnect(c.ID())
		ctl.limiter.Forget(c.ID())
		cancel()
		c.Close()
		logger.Info().Msg("connection closed")
	}()

	if ctl.settings.ReadLimit > 0 {
		c.conn.SetReadLimit(ctl.settings.ReadLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.settings.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.settings.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("readPump ctx done")
			return
		default:
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("readPump read error")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(ctl.settings.PongWait))
		if !ctl.limiter.Allow(c.ID()) {
			logger.Warn().Msg("rate limit exceeded, frame dropped")
			continue
		}
		ctl.dispatch(c, data, logger)
	}
}

// dispatch hands one frame to the protocol handler. A panic while
// handling a frame is logged and the connection stays open.
func (ctl *SignalWSController) dispatch(c *WsSignalConn, data []byte, logger zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("frame handler panicked")
		}
	}()

	switch c.Protocol() {
	case domain.ProtocolDirectory:
		ctl.handleDirectory(c, data, logger)
	default:
		ctl.handleRooms(c, data, logger)
	}
}
