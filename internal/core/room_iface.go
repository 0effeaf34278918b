package core

import (
	"time"

	"github.com/dkeye/Rendezvous/internal/domain"
)

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	Name    domain.RoomName `json:"name"`
	Members []domain.ConnID `json:"members"`
}

// UserInfo is a read-only view of a directory entry. No credential.
type UserInfo struct {
	Username   domain.Username `json:"username"`
	Conn       domain.ConnID   `json:"conn"`
	SignedInAt time.Time       `json:"signed_in_at"`
}
