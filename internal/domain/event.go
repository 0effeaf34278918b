package domain

// Message is anything the coordinators hand to a connection for delivery.
// The adapter owning the connection decides how it goes on the wire.
type Message interface {
	Kind() string
}

type EventName string

// Room protocol events.
const (
	EventCreateOrJoin EventName = "create or join"
	EventCreated      EventName = "created"
	EventJoin         EventName = "join"
	EventJoined       EventName = "joined"
	EventReady        EventName = "ready"
	EventFull         EventName = "full"
	EventMessage      EventName = "message"
	EventIPAddr       EventName = "ipaddr"
	EventBye          EventName = "bye"
	EventLog          EventName = "log"
	EventPeerLeft     EventName = "peer-left"
)

// Event is a named event with positional arguments.
type Event struct {
	Name EventName
	Args []any
}

func NewEvent(name EventName, args ...any) Event {
	if args == nil {
		args = []any{}
	}
	return Event{Name: name, Args: args}
}

func (e Event) Kind() string { return string(e.Name) }
