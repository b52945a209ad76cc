package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/hero-draft-assistant/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			case c.errors <- err:
			}
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.errors <- err
			continue
		}

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// Send writes a message envelope to the server
func (c *WSClient) Send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg, err := websocket.NewMessage(msgType, payload)
	if err != nil {
		c.t.Fatalf("failed to build message: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// SendRaw writes data as a text frame without wrapping it
func (c *WSClient) SendRaw(data []byte) {
	c.t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(gorillaWS.TextMessage, data); err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

// WaitForMessage skips messages until one of msgType arrives
func (c *WSClient) WaitForMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
				return nil
			}
			if msg.Type == msgType {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("websocket error while waiting for %s: %v", msgType, err)
			return nil
		case <-deadline:
			c.t.Fatalf("timeout waiting for %s", msgType)
			return nil
		}
	}
}

// WaitForSnapshot returns the payload of the next DRAFT_SNAPSHOT
func (c *WSClient) WaitForSnapshot(timeout time.Duration) websocket.DraftSnapshotPayload {
	c.t.Helper()

	msg := c.WaitForMessage(websocket.MessageTypeDraftSnapshot, timeout)
	var payload websocket.DraftSnapshotPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	return payload
}

// CollectSnapshots reads until nothing arrives for quiet and returns every
// DRAFT_SNAPSHOT seen, in arrival order
func (c *WSClient) CollectSnapshots(quiet time.Duration) []*websocket.Message {
	c.t.Helper()

	var out []*websocket.Message
	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				return out
			}
			if msg.Type == websocket.MessageTypeDraftSnapshot {
				out = append(out, msg)
			}
		case err := <-c.errors:
			c.t.Fatalf("websocket error while collecting snapshots: %v", err)
			return out
		case <-time.After(quiet):
			return out
		}
	}
}

// ExpectNoMessage fails if anything arrives within the window
func (c *WSClient) ExpectNoMessage(window time.Duration) {
	c.t.Helper()

	select {
	case msg, ok := <-c.messages:
		if ok {
			c.t.Fatalf("unexpected %s message", msg.Type)
		}
	case <-time.After(window):
	}
}

// WaitForClose blocks until the server ends the connection
func (c *WSClient) WaitForClose(timeout time.Duration) {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-c.messages:
			if !ok {
				return
			}
		case <-c.errors:
			return
		case <-deadline:
			c.t.Fatalf("timeout waiting for the connection to close")
			return
		}
	}
}
