package signal

import (
	"encoding/json"

	"github.com/dkeye/Rendezvous/internal/domain"
	"github.com/rs/zerolog"
)

func (ctl *SignalWSController) handleRooms(c *WsSignalConn, data []byte, logger zerolog.Logger) {
	event, args, err := DecodeRoomFrame(data)
	if err != nil {
		logger.Error().Err(err).Msg("bad room frame")
		return
	}

	switch event {
	case domain.EventCreateOrJoin:
		var room string
		if len(args) > 0 {
			if err := json.Unmarshal(args[0], &room); err != nil {
				logger.Error().Err(err).Msg("create or join: room must be a string")
				return
			}
		}
		ctl.Orch.CreateOrJoin(c.ID(), domain.RoomName(room))
	case domain.EventMessage:
		var payload any
		if len(args) > 0 {
			if err := json.Unmarshal(args[0], &payload); err != nil {
				logger.Error().Err(err).Msg("message: bad payload")
				return
			}
		}
		ctl.Orch.Broadcast(c.ID(), payload)
	case domain.EventIPAddr:
		ctl.Orch.IPAddrs(c.ID())
	case domain.EventBye:
		ctl.Orch.Bye(c.ID())
	default:
		logger.Warn().Str("event", string(event)).Msg("unknown event")
	}
}
