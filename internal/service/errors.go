package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/storage"
)

var (
	ErrNotMember            = errors.New("not a member of this group")
	ErrNotCreator           = errors.New("only the group creator can do this")
	ErrPayerNotMember       = errors.New("payer must be a member of the group")
	ErrParticipantNotMember = errors.New("all participants must be members of the group")
	ErrUnknownUser          = errors.New("user not found")
	ErrInvalidDate          = errors.New("expense date must be formatted YYYY-MM-DD")
	ErrMissingGroupName     = errors.New("group name is required")
	ErrMissingID            = errors.New("id is required")
	ErrEmptyProfileUpdate   = errors.New("display name or email is required")
)

// ErrorCode classifies err for the wire. Unrecognized errors are internal.
func ErrorCode(err error) connect.Code {
	var connectErr *connect.Error
	switch {
	case errors.As(err, &connectErr):
		return connectErr.Code()
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, auth.ErrEmailExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, ErrNotMember),
		errors.Is(err, ErrNotCreator):
		return connect.CodePermissionDenied
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.CodeUnauthenticated
	case errors.Is(err, calculator.ErrNonPositiveTotal),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrNonPositiveShare),
		errors.Is(err, calculator.ErrDuplicateParticipant),
		errors.Is(err, calculator.ErrSharesMismatch),
		errors.Is(err, calculator.ErrSubCentAmount),
		errors.Is(err, calculator.ErrTotalTooSmall),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingField),
		errors.Is(err, ErrPayerNotMember),
		errors.Is(err, ErrParticipantNotMember),
		errors.Is(err, ErrUnknownUser),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrMissingGroupName),
		errors.Is(err, ErrMissingID),
		errors.Is(err, ErrEmptyProfileUpdate):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// toConnectError wraps err with its code. Internal errors keep their detail
// out of the response.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	code := ErrorCode(err)
	if code == connect.CodeInternal {
		return connect.NewError(code, errors.New("internal error"))
	}
	return connect.NewError(code, err)
}
