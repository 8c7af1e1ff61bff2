package test

import "context"

// Message kinds recorded by NotifierRecorder.
const (
	SentText  = "text"
	SentImage = "image"
)

// SentMessage captures one outbound send for assertions.
type SentMessage struct {
	Kind      string
	Recipient string
	Text      string
	ImageURL  string
	Caption   string
}

// NotifierRecorder records sends in order and optionally fails them.
type NotifierRecorder struct {
	Sent     []SentMessage
	TextErr  error
	ImageErr error
}

// SendText records a text send.
func (n *NotifierRecorder) SendText(ctx context.Context, recipientID, text string) error {
	n.Sent = append(n.Sent, SentMessage{Kind: SentText, Recipient: recipientID, Text: text})
	return n.TextErr
}

// SendImage records an image send.
func (n *NotifierRecorder) SendImage(ctx context.Context, recipientID, imageURL, caption string) error {
	n.Sent = append(n.Sent, SentMessage{Kind: SentImage, Recipient: recipientID, ImageURL: imageURL, Caption: caption})
	return n.ImageErr
}

// Texts returns the recorded text bodies in send order.
func (n *NotifierRecorder) Texts() []string {
	var texts []string
	for _, m := range n.Sent {
		if m.Kind == SentText {
			texts = append(texts, m.Text)
		}
	}
	return texts
}
