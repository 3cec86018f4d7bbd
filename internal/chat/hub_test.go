package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"blog-backend/internal/logging"
	"blog-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logging.Discard())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func msg(text string) models.ChatMessage {
	return models.ChatMessage{ID: bson.NewObjectID(), User: "u", Text: text, CreatedAt: time.Now().UTC()}
}

func next(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case raw, ok := <-c.Send():
		require.True(t, ok, "client channel closed")
		var f Frame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func texts(t *testing.T, f Frame) []string {
	t.Helper()
	var ms []models.ChatMessage
	require.NoError(t, json.Unmarshal(f.Data, &ms))
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func text(t *testing.T, f Frame) string {
	t.Helper()
	var m models.ChatMessage
	require.NoError(t, json.Unmarshal(f.Data, &m))
	return m.Text
}

func TestHub_HistoryBeforeLive(t *testing.T) {
	hub := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))

	old := msg("old")
	live := msg("live")
	hub.Broadcast(old)  // already part of history
	hub.Broadcast(live) // arrived while pending

	hub.Ready(c, []models.ChatMessage{old})

	f := next(t, c)
	assert.Equal(t, EventHistory, f.Event)
	assert.Equal(t, []string{"old"}, texts(t, f))

	f = next(t, c)
	assert.Equal(t, EventMessage, f.Event)
	assert.Equal(t, "live", text(t, f))

	select {
	case raw := <-c.Send():
		t.Fatalf("unexpected frame %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_LateDuplicateOfHistorySkipped(t *testing.T) {
	hub := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))

	m := msg("stored before connect")
	hub.Ready(c, []models.ChatMessage{m})
	next(t, c)

	hub.Broadcast(m)
	hub.Broadcast(msg("fresh"))

	f := next(t, c)
	assert.Equal(t, "fresh", text(t, f))
}

func TestHub_EmptyHistoryIsArray(t *testing.T) {
	hub := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))
	hub.Ready(c, nil)

	f := next(t, c)
	assert.Equal(t, EventHistory, f.Event)
	assert.JSONEq(t, `[]`, string(f.Data))
}

func TestHub_BroadcastReachesEveryone(t *testing.T) {
	hub := startHub(t)
	clients := []*Client{NewClient(), NewClient(), NewClient()}
	for _, c := range clients {
		require.True(t, hub.Register(c))
		hub.Ready(c, nil)
		next(t, c)
	}

	hub.Broadcast(msg("hello"))
	for _, c := range clients {
		assert.Equal(t, "hello", text(t, next(t, c)))
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	select {
	case _, ok := <-c.Send():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := startHub(t)
	c := NewClient()
	require.True(t, hub.Register(c))
	hub.Ready(c, nil)

	for i := 0; i < sendBuffer+1; i++ {
		hub.Broadcast(msg("spam"))
	}

	n := 0
	for range c.Send() {
		n++
	}
	assert.Equal(t, sendBuffer, n) // history frame plus sendBuffer-1 messages
}

func TestHub_StoppedHubRefusesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(logging.Discard())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	c := NewClient()
	assert.False(t, hub.Register(c))
	_, ok := <-c.Send()
	assert.False(t, ok)

	hub.Broadcast(msg("nobody")) // must not block
	hub.Unregister(c)
}

func TestDecodeIncoming(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Incoming
		wantErr bool
	}{
		{"envelope", `{"event":"chat message","data":{"user":"ann","text":"hi"}}`, Incoming{User: "ann", Text: "hi"}, false},
		{"bare", `{"user":"bob","text":"yo"}`, Incoming{User: "bob", Text: "yo"}, false},
		{"other event", `{"event":"typing","data":{"user":"a","text":"x"}}`, Incoming{}, true},
		{"empty text", `{"user":"a","text":"  "}`, Incoming{}, true},
		{"not json", `hello`, Incoming{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIncoming([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadFrame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
