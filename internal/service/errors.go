package service

import "errors"

var (
	ErrSessionNotFound = errors.New("Sessão não encontrada")
	ErrUserNotFound    = errors.New("Usuário não encontrado")
)

// ValidationError marks input problems the client can fix locally.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ParseError marks ancestry documents that could not be processed; the user
// can retry with a different file.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}
