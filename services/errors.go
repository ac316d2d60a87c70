package services

// Error kinds surfaced by the service layer. The transport adapter maps them
// to HTTP statuses; nothing below it needs to know about HTTP.
const (
	KindUnauthenticated = "UNAUTHENTICATED"
	KindForbidden       = "FORBIDDEN"
	KindNotFound        = "NOT_FOUND"
	KindValidation      = "INVALID_INPUT"
	KindStore           = "STORE_ERROR"
)

// Error is the typed error returned by service operations.
type Error struct {
	Kind    string
	Message string
	Origin  error // underlying error, if any
}

func (e *Error) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Origin
}

// IsKind reports whether err is a service Error of the given kind.
func IsKind(err error, kind string) bool {
	if svcErr, ok := err.(*Error); ok {
		return svcErr.Kind == kind
	}
	return false
}

func newUnauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

func newForbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "forbidden"}
}

func newNotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func newValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func newStore(message string, origin error) *Error {
	return &Error{Kind: KindStore, Message: message, Origin: origin}
}
