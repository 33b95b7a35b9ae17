package event

// EventType identifies what happened
type EventType string

// Enum values for every event type we publish
const (
	FatalErrorEventType   EventType = "fatal-error"
	ErrorEventType        EventType = "error"
	DiscoveryEventType    EventType = "discovery"
	ConnectedEventType    EventType = "connected"
	DisconnectedEventType EventType = "disconnected"
	InfoEventType         EventType = "info"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}

// DiscoveryPayload is sent with DiscoveryEventType once a scan window ends
type DiscoveryPayload struct {
	Transport string   `json:"transport"`
	Handles   []string `json:"handles"`
}

// LinkPayload is sent with ConnectedEventType and DisconnectedEventType.
// Requested is false when the platform dropped the link on its own.
type LinkPayload struct {
	Transport string `json:"transport"`
	Handle    string `json:"handle"`
	Requested bool   `json:"requested"`
}

// InfoPayload is sent with InfoEventType after device information is read
type InfoPayload struct {
	Transport string            `json:"transport"`
	Handle    string            `json:"handle"`
	Info      map[string]string `json:"info"`
}
