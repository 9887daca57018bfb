package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AgentMode string    `json:"agent_mode"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Message       string    `json:"message" validate:"required"`
	UseStreaming  bool      `json:"use_streaming"`
}

// AgentContext is the per-turn metadata returned alongside the reply.
type AgentContext struct {
	AgentMode         string   `json:"agent_mode"`
	MessageCount      int      `json:"message_count"`
	RemainingMessages int      `json:"remaining_messages"`
	DnaProcessed      bool     `json:"dna_processed,omitempty"`
	Intent            string   `json:"intent,omitempty"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

type AgentUsage struct {
	TokensUsed     int `json:"tokens_used"`
	ResponseTimeMs int `json:"response_time_ms"`
}

type SendChatResponse struct {
	Content string        `json:"content"`
	Context *AgentContext `json:"context,omitempty"`
	Usage   *AgentUsage   `json:"usage,omitempty"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details so the
// caller can render the quota state.
type LimitExceededError struct {
	Reason string        `json:"reason"`
	Usage  UsageSnapshot `json:"usage"`
}

func (e *LimitExceededError) Error() string {
	return e.Reason
}

// LimitExceededResponse is the full 429 response structure.
type LimitExceededResponse struct {
	Success   bool          `json:"success"`
	Code      int           `json:"code"`
	Message   string        `json:"message"`
	ErrorType string        `json:"error_type"`
	Data      UsageSnapshot `json:"data"`
}

// StreamChunk is one server-sent event frame of a streamed reply. Delta
// frames carry incremental content; the closing frame sets Done and carries
// the assembled result.
type StreamChunk struct {
	Delta  string            `json:"delta,omitempty"`
	Done   bool              `json:"done,omitempty"`
	Error  string            `json:"error,omitempty"`
	Result *SendChatResponse `json:"result,omitempty"`
}
