package signal

import (
	"encoding/json"

	"github.com/dkeye/Rendezvous/internal/adapters/rtc"
	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog"
)

func (ctl *SignalWSController) handleDirectory(c *WsSignalConn, data []byte, logger zerolog.Logger) {
	msg, err := DecodeRelay(data)
	if err != nil {
		logger.Error().Err(err).Msg("bad directory frame")
		return
	}
	switch m := msg.(type) {
	case domain.Offer:
		logSDP(logger, msg.Kind(), m.Data)
	case domain.Answer:
		logSDP(logger, msg.Kind(), m.Data)
	}
	ctl.Orch.HandleRelay(c.ID(), msg)
}

func logSDP(logger zerolog.Logger, kind string, data json.RawMessage) {
	if zerolog.GlobalLevel() > zerolog.DebugLevel || logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	sum, ok := rtc.DescribeSDP(data)
	if !ok {
		return
	}
	logger.Debug().
		Str("kind", kind).
		Str("sdp_type", sum.Type).
		Strs("media", sum.Media).
		Msg("session description")
}
