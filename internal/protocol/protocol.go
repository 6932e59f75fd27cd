package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeChat    = "CHAT"
)

// Chat formatting. Lines wider than WrapWidth are word-wrapped before
// delivery; ColorToken introduces a two-character color code that is
// rewritten to ColorChar form for the client.
const (
	WrapWidth  = 65
	ColorToken = '&'
	ColorChar  = '§'
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
