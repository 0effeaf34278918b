package http

import (
	"net/http"

	"github.com/dkeye/Rendezvous/internal/adapters/rtc"
	"github.com/dkeye/Rendezvous/internal/app/orch"
	"github.com/dkeye/Rendezvous/internal/config"
	"github.com/dkeye/Rendezvous/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type RoomsResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
}

type UsersResponse struct {
	Users []core.UserInfo `json:"users"`
}

type ICEServersResponse struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

type handlers struct {
	orch *orch.Orchestrator
	ice  config.ICE
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) rooms(c *gin.Context) {
	c.JSON(http.StatusOK, RoomsResponse{Rooms: h.orch.RoomList()})
}

func (h *handlers) users(c *gin.Context) {
	c.JSON(http.StatusOK, UsersResponse{Users: h.orch.Users()})
}

func (h *handlers) iceServers(c *gin.Context) {
	servers, err := rtc.ICEServers(h.ice)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("ice servers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ice servers unavailable"})
		return
	}
	c.JSON(http.StatusOK, ICEServersResponse{ICEServers: servers})
}
