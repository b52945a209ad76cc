package websocket

import (
	"encoding/json"
	"sync"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"go.uber.org/zap"
)

// DraftSource is the read side of the draft session
type DraftSource interface {
	View() service.DraftView
}

// Hub fans draft snapshots out to every connected client. A client whose
// send buffer is full is dropped.
//
// Draft changes only wake the hub up; the snapshot is read from the source
// when it is sent, so the last frame always matches the current draft.
type Hub struct {
	source     DraftSource
	log        *zap.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	changed    chan struct{}
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	seq        int
	mu         sync.RWMutex
}

func NewHub(source DraftSource, log *zap.Logger) *Hub {
	return &Hub{
		source:     source,
		log:        log.With(zap.String("component", "hub")),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 64),
		changed:    make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.stopped {
				h.mu.Unlock()
				client.Close()
				continue
			}
			h.clients[client] = true
			h.mu.Unlock()
			h.sendSnapshot(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.fanOut(msg)

		case <-h.changed:
			// messages queued before the wake-up go out first
			h.drainBroadcast()
			msg, err := h.snapshotMessage()
			if err != nil {
				h.log.Error("failed to build snapshot", zap.Error(err))
				continue
			}
			h.fanOut(msg)
		}
	}
}

// Stop closes every client and blocks until Run has returned
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// DraftChanged is subscribed to the draft service. Changes that arrive
// while a snapshot is already pending are folded into it.
func (h *Hub) DraftChanged(domain.DraftState) {
	h.wake()
}

func (h *Hub) wake() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// CatalogChanged announces new catalog counts and follows up with a fresh
// snapshot, since recommendations depend on the catalog.
func (h *Hub) CatalogChanged(heroes, matches int) {
	msg, err := NewMessage(MessageTypeCatalogChanged, CatalogChangedPayload{Heroes: heroes, Matches: matches})
	if err != nil {
		h.log.Error("failed to build catalog message", zap.Error(err))
		return
	}
	h.publish(msg)
	h.wake()
}

func (h *Hub) publish(msg *Message) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *Hub) drainBroadcast() {
	for {
		select {
		case msg := <-h.broadcast:
			h.fanOut(msg)
		default:
			return
		}
	}
}

func (h *Hub) fanOut(msg *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg.Seq = h.seq
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("failed to marshal message", zap.Error(err))
		return
	}

	for client := range h.clients {
		if !client.trySend(data) {
			h.log.Warn("dropping slow client", zap.String("remote", client.RemoteAddr()))
			delete(h.clients, client)
			client.Close()
		}
	}
}

// sendSnapshot gives one client the current state
func (h *Hub) sendSnapshot(client *Client) {
	msg, err := h.snapshotMessage()
	if err != nil {
		h.log.Error("failed to build snapshot", zap.Error(err))
		return
	}
	h.mu.RLock()
	msg.Seq = h.seq
	h.mu.RUnlock()
	client.Send(msg)
}

func (h *Hub) snapshotMessage() (*Message, error) {
	view := h.source.View()
	return NewMessage(MessageTypeDraftSnapshot, DraftSnapshotPayload{
		Draft:           view.Draft,
		Turn:            view.Turn,
		WinRate:         view.WinRate,
		Recommendations: view.Recommendations,
		DefaultFormat:   view.DefaultFormat,
	})
}

// Attach subscribes the hub to draft mutations and catalog reloads
func (h *Hub) Attach(svc *service.Services) {
	svc.Draft.Subscribe(h.DraftChanged)
	svc.Catalog.OnChange(func() {
		h.CatalogChanged(len(svc.Catalog.ListHeroes()), len(svc.Catalog.ListMatches()))
	})
}
