package entity

type EventKind int

const (
	// TextMessage is a plain text message typed by the user.
	TextMessage EventKind = iota
	// Postback is a button click carrying an opaque payload string.
	Postback
	// EchoOfOutbound is the platform echoing back a message sent from the
	// page, either by this bot or by a human operator in the inbox.
	EchoOfOutbound
)

// InboundEvent is one normalized messaging-platform notification.
// Constructed by the webhook parser, consumed exactly once by the
// orchestration loop; only its effects are persisted.
type InboundEvent struct {
	SenderId    string
	RecipientId string
	Kind        EventKind
	Text        string // TextMessage
	Payload     string // Postback
	Metadata    string // EchoOfOutbound: metadata tag of the echoed message
	Mid         string // platform message id, informational
}
