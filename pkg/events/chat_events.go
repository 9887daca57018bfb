package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the chat backend.
const (
	TypeChatTurnCompleted  = "CHAT_TURN_COMPLETED"
	TypeAncestryProcessed  = "ANCESTRY_PROCESSED"
	TypeChatSessionDeleted = "CHAT_SESSION_DELETED"
)

// NewChatTurnCompleted is published after an assistant reply has been
// persisted for a user turn.
func NewChatTurnCompleted(userId, sessionId uuid.UUID, agentMode, intent string, tokensUsed int, responseTimeMs int64) Event {
	return BaseEvent{
		Type: TypeChatTurnCompleted,
		Data: map[string]interface{}{
			"user_id":          userId.String(),
			"chat_session_id":  sessionId.String(),
			"agent_mode":       agentMode,
			"intent":           intent,
			"tokens_used":      tokensUsed,
			"response_time_ms": responseTimeMs,
		},
		OccurredAt: time.Now(),
	}
}

// NewAncestryProcessed is published when an ancestry report has been parsed
// and stored for a session.
func NewAncestryProcessed(userId, sessionId uuid.UUID, provider string, confidence float64, regions int) Event {
	return BaseEvent{
		Type: TypeAncestryProcessed,
		Data: map[string]interface{}{
			"user_id":         userId.String(),
			"chat_session_id": sessionId.String(),
			"test_provider":   provider,
			"confidence":      confidence,
			"regions":         regions,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatSessionDeleted is published when a session and its rows are removed.
func NewChatSessionDeleted(userId, sessionId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeChatSessionDeleted,
		Data: map[string]interface{}{
			"user_id":         userId.String(),
			"chat_session_id": sessionId.String(),
		},
		OccurredAt: time.Now(),
	}
}
