package domain

import "errors"

// MaxRoomMembers is the capacity of every room.
const MaxRoomMembers = 2

var ErrRoomNameEmpty = errors.New("room name empty")

type RoomName string

// Room is the membership meta of a pairing slot. Members keep join order.
type Room struct {
	Name    RoomName
	Members []ConnID
}
