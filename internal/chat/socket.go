package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	opTimeout  = 5 * time.Second
)

// RequireUpgrade rejects plain HTTP requests on the socket route.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Socket serves one chat connection: register, replay history, then relay
// everything the client sends.
func Socket(hub *Hub, relay *Relay, log *slog.Logger) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := NewClient()
		if !hub.Register(client) {
			return
		}

		pumpDone := make(chan struct{})
		go func() {
			defer close(pumpDone)
			writePump(conn, client)
		}()

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		history, err := relay.History(ctx)
		cancel()
		if err != nil {
			log.Error("chat history failed", "err", err)
		}
		hub.Ready(client, history)

		readLoop(conn, relay, log)

		hub.Unregister(client)
		<-pumpDone
	})
}

func readLoop(conn *websocket.Conn, relay *Relay, log *slog.Logger) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("chat read", "err", err)
			}
			return
		}

		in, err := DecodeIncoming(data)
		if err != nil {
			log.Debug("ignoring chat frame", "err", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		if _, err := relay.OnMessage(ctx, in.User, in.Text); err != nil {
			log.Error("chat message failed", "err", err)
		}
		cancel()
	}
}

// writePump owns all writes on conn. It returns when the hub closes the
// client's channel or a write fails.
func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				_ = conn.Close()
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
