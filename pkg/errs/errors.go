package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnhandled Kind = iota
	KindValidation
	KindMissingAuthHeader
	KindDownstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMissingAuthHeader:
		return "missing_auth_header"
	case KindDownstream:
		return "downstream"
	default:
		return "unhandled"
	}
}

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
)

const (
	MsgInternalServer = "Internal server error"
	MsgAccessToken    = "O campo accessToken é obrigatório"
	MsgInvalidBody    = "Corpo da requisição inválido"
)

// Error is the tagged error shared by validators, the gateway and the domain
// service. Message is what callers see; Err keeps the original cause.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: ErrStatusClient, Message: message}
}

func MissingAuthHeader(message string) *Error {
	return &Error{Kind: KindMissingAuthHeader, Status: ErrStatusClient, Message: message}
}

func Downstream(message string, cause error) *Error {
	return &Error{Kind: KindDownstream, Status: ErrStatusInternalServer, Message: message, Err: cause}
}

// As returns the outermost tagged error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func GetErrorStatusCode(err error) int {
	if e, ok := As(err); ok && e.Status != 0 {
		return e.Status
	}
	return ErrStatusInternalServer
}

func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
