package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageMetadata carries optional per-turn accounting data.
type MessageMetadata struct {
	TokensUsed     int `json:"tokens_used,omitempty"`
	ResponseTimeMs int `json:"response_time_ms,omitempty"`
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Role          string
	Content       string
	// AgentMode records which persona produced the turn at write time. It is
	// intentionally frozen per row: a later ancestry upload changes the mode
	// of future turns, not of history.
	AgentMode string
	Metadata  *MessageMetadata
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
