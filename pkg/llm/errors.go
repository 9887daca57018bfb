package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type ErrorKind string

const (
	ErrKindAuth      ErrorKind = "auth"
	ErrKindRateLimit ErrorKind = "rate_limit"
	ErrKindQuota     ErrorKind = "quota_exceeded"
	ErrKindTransient ErrorKind = "transient"
	ErrKindTimeout   ErrorKind = "timeout"
	ErrKindNotFound  ErrorKind = "not_found"
	ErrKindUnknown   ErrorKind = "unknown"
)

// Error carries the provider failure category plus a user-presentable message.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string // safe to show to the end user
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm: %s (status %d): %v", e.Kind, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("llm: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether a second attempt (possibly on a fallback model)
// can reasonably succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrKindRateLimit, ErrKindTransient, ErrKindTimeout:
		return true
	}
	return false
}

// CategorizeStatus maps an upstream HTTP status plus the provider error code
// to a categorized Error with a Portuguese user-facing message.
func CategorizeStatus(status int, apiCode, apiMessage string) *Error {
	switch status {
	case 401:
		return &Error{Kind: ErrKindAuth, StatusCode: status, Message: "API key inválida. Verifique a configuração."}
	case 403:
		return &Error{Kind: ErrKindAuth, StatusCode: status, Message: "Acesso negado. Verifique as permissões da API key."}
	case 429:
		if apiCode == "insufficient_quota" {
			return &Error{Kind: ErrKindQuota, StatusCode: status, Message: "Limite de uso da IA atingido. Tente novamente mais tarde."}
		}
		return &Error{Kind: ErrKindRateLimit, StatusCode: status, Message: "Muitas solicitações. Aguarde alguns segundos e tente novamente."}
	case 500:
		return &Error{Kind: ErrKindTransient, StatusCode: status, Message: "Erro interno da OpenAI. Tente novamente em alguns minutos."}
	case 503:
		return &Error{Kind: ErrKindTransient, StatusCode: status, Message: "Serviço temporariamente indisponível. Tente novamente."}
	case 404:
		return &Error{Kind: ErrKindNotFound, StatusCode: status, Message: "Modelo não encontrado. Verifique a configuração."}
	default:
		msg := apiMessage
		if msg == "" {
			msg = fmt.Sprintf("Erro da API OpenAI (%d)", status)
		}
		kind := ErrKindUnknown
		if status >= 500 {
			kind = ErrKindTransient
		}
		return &Error{Kind: kind, StatusCode: status, Message: msg}
	}
}

// CategorizeTransport maps connection-level failures (timeout, refused) to a
// categorized Error.
func CategorizeTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: ErrKindTimeout, Message: "Timeout na resposta da IA. Tente novamente.", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: ErrKindTimeout, Message: "Timeout na resposta da IA. Tente novamente.", Cause: err}
	}
	return &Error{Kind: ErrKindTransient, Message: "Erro de conexão. Verifique sua internet e tente novamente.", Cause: err}
}
