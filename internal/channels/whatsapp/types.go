package whatsapp

// WebhookEvent is the Graph API webhook envelope for WhatsApp Business.
type WebhookEvent struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string    `json:"messaging_product"`
	Metadata         Metadata  `json:"metadata"`
	Contacts         []Contact `json:"contacts,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	Statuses         []Status  `json:"statuses,omitempty"`
}

type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type Message struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply,omitempty"`
	ListReply   *ListReply   `json:"list_reply,omitempty"`
}

type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type ListReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Status is a delivery receipt; the bot ignores these but must not choke on them.
type Status struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// InboundText is a flattened inbound message the bot can respond to. Button
// and list taps surface as their reply id, same as typed text.
type InboundText struct {
	From string
	Text string
}

// InboundTexts flattens the envelope down to the messages worth answering.
func (e WebhookEvent) InboundTexts() []InboundText {
	var out []InboundText
	for _, entry := range e.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				switch {
				case msg.Type == "text" && msg.Text != nil:
					out = append(out, InboundText{From: msg.From, Text: msg.Text.Body})
				case msg.Type == "interactive" && msg.Interactive != nil:
					if br := msg.Interactive.ButtonReply; br != nil {
						out = append(out, InboundText{From: msg.From, Text: br.ID})
					} else if lr := msg.Interactive.ListReply; lr != nil {
						out = append(out, InboundText{From: msg.From, Text: lr.ID})
					}
				}
			}
		}
	}
	return out
}

type sendRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             *Text            `json:"text,omitempty"`
	Interactive      *sendInteractive `json:"interactive,omitempty"`
}

type sendInteractive struct {
	Type   string     `json:"type"`
	Body   Text       `json:"body"`
	Action sendAction `json:"action"`
}

type sendAction struct {
	Buttons []sendButton `json:"buttons"`
}

type sendButton struct {
	Type  string      `json:"type"`
	Reply ButtonReply `json:"reply"`
}

// SendResponse is the Graph API acknowledgement of an outbound message.
type SendResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Messages         []struct {
		ID string `json:"id"`
	} `json:"messages"`
}
