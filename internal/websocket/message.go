package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSyncState MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeDraftSnapshot  MessageType = "DRAFT_SNAPSHOT"
	MessageTypeCatalogChanged MessageType = "CATALOG_CHANGED"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// DraftSnapshotPayload is everything the draft board renders
type DraftSnapshotPayload struct {
	Draft           domain.DraftState            `json:"draft"`
	Turn            service.TurnInfo             `json:"turn"`
	WinRate         service.WinRateEstimate      `json:"winRate"`
	Recommendations service.DraftRecommendations `json:"recommendations"`
	DefaultFormat   domain.Format                `json:"defaultFormat"`
}

type CatalogChangedPayload struct {
	Heroes  int `json:"heroes"`
	Matches int `json:"matches"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
