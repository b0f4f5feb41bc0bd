package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed weather lookup.
type ErrorKind string

const (
	KindEmptyQuery  ErrorKind = "empty_query"
	KindNotFound    ErrorKind = "not_found"
	KindAuth        ErrorKind = "invalid_key"
	KindRateLimited ErrorKind = "rate_limited"
	KindServer      ErrorKind = "server_error"
)

// LookupError is returned by the weather lookups. Message is meant for the user.
type LookupError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches any LookupError of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of status or message.
func (e *LookupError) Is(target error) bool {
	t, ok := target.(*LookupError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyQuery  = &LookupError{Kind: KindEmptyQuery, Message: "Escribe el nombre de una ciudad"}
	ErrNotFound    = &LookupError{Kind: KindNotFound, Message: "Ciudad no encontrada. Verifica el nombre e intenta de nuevo."}
	ErrAuth        = &LookupError{Kind: KindAuth, Message: "API key inválida. Revisa tu configuración."}
	ErrNoKey       = &LookupError{Kind: KindAuth, Message: "API key no configurada. Ve a Configuración y añade tu clave de OpenWeather, o configura OPENWEATHER_API_KEY."}
	ErrRateLimited = &LookupError{Kind: KindRateLimited, Message: "Demasiadas peticiones. Espera un momento antes de buscar de nuevo."}
)

// KindOf returns the kind of a lookup error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// classifyStatus maps a non-2xx upstream status to a lookup error.
// notFound is the message used for 404, which differs between name and coordinate lookups.
func classifyStatus(status int, upstreamMessage, notFound string) *LookupError {
	switch status {
	case http.StatusNotFound:
		return &LookupError{Kind: KindNotFound, Status: status, Message: notFound}
	case http.StatusUnauthorized:
		return &LookupError{Kind: KindAuth, Status: status, Message: ErrAuth.Message}
	case http.StatusTooManyRequests:
		return &LookupError{Kind: KindRateLimited, Status: status, Message: ErrRateLimited.Message}
	}
	msg := upstreamMessage
	if msg == "" {
		msg = fmt.Sprintf("Error del servidor (%d)", status)
	}
	return &LookupError{Kind: KindServer, Status: status, Message: msg}
}
