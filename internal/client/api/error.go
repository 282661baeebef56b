package api

import "fmt"

// Kind classifies a failed request.
type Kind int

const (
	// KindTransport is a network or connectivity failure; the request may
	// never have reached the server.
	KindTransport Kind = iota
	// KindUnauthorized maps HTTP 401/403. The session token is presumed
	// invalid; callers decide whether to force a logout.
	KindUnauthorized
	// KindServerRejected is any other non-2xx status. Message carries the
	// server's error body when one was provided, and is empty otherwise.
	KindServerRejected
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerRejected:
		return "server rejected"
	default:
		return "unknown"
	}
}

// Error is the uniform error shape every request failure is normalized into.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for transport failures
	Message string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, msg)
}

// IsUnauthorized reports whether err is an *Error with KindUnauthorized.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindUnauthorized
}
