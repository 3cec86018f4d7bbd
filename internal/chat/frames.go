package chat

import (
	"encoding/json"
	"errors"
	"strings"
)

// Event names used on the socket.
const (
	EventHistory = "chat history"
	EventMessage = "chat message"
)

var ErrBadFrame = errors.New("bad chat frame")

// Frame is the envelope of every socket message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Incoming is what a client sends to post a message.
type Incoming struct {
	User string `json:"user"`
	Text string `json:"text"`
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: raw})
}

// DecodeIncoming accepts either {"event":"chat message","data":{...}} or a
// bare {"user":...,"text":...} object.
func DecodeIncoming(raw []byte) (Incoming, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Incoming{}, ErrBadFrame
	}

	body := raw
	if f.Event != "" {
		if f.Event != EventMessage || len(f.Data) == 0 {
			return Incoming{}, ErrBadFrame
		}
		body = f.Data
	}

	var in Incoming
	if err := json.Unmarshal(body, &in); err != nil {
		return Incoming{}, ErrBadFrame
	}
	if strings.TrimSpace(in.Text) == "" {
		return Incoming{}, ErrBadFrame
	}
	return in, nil
}
