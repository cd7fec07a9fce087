package dto

// WhatsApp Cloud API webhook payload. Only the fields the conversation layer
// needs are mapped; everything else in the provider payload is ignored.

type WebhookPayload struct {
	Entry []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Messages []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	From string       `json:"from"`
	Type string       `json:"type"`
	Text *WebhookText `json:"text,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// IncomingMessages flattens the nested provider structure into the ordered
// list of inbound messages for this delivery.
func (p *WebhookPayload) IncomingMessages() []WebhookMessage {
	var messages []WebhookMessage
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			messages = append(messages, change.Value.Messages...)
		}
	}
	return messages
}

// IsText reports whether the message carries a usable text body.
func (m *WebhookMessage) IsText() bool {
	return m.Type == "text" && m.Text != nil && m.Text.Body != ""
}
