package dto

// WebhookEvent is the Meta webhook delivery envelope. Every field is
// optional on the wire; absence decodes to zero values rather than
// failing the request.
type WebhookEvent struct {
	Object string  `json:"object,omitempty"`
	Entry  []Entry `json:"entry,omitempty"`
}

// Entry groups the messaging events of one page/account.
type Entry struct {
	ID        string      `json:"id,omitempty"`
	Time      int64       `json:"time,omitempty"`
	Messaging []Messaging `json:"messaging,omitempty"`
}

// Messaging is a single direct-message event.
type Messaging struct {
	Sender    *Sender  `json:"sender,omitempty"`
	Recipient *Sender  `json:"recipient,omitempty"`
	Timestamp int64    `json:"timestamp,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

// Sender identifies a messaging participant.
type Sender struct {
	ID string `json:"id"`
}

// Message carries the text body of a direct message.
type Message struct {
	MID  string `json:"mid,omitempty"`
	Text string `json:"text"`
}
