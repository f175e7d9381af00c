package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainErrs "github.com/yungbote/automate-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// From resolves err into an *Error. An *Error anywhere in the chain wins;
// otherwise the generic sentinels pick the status and fallbackCode is used
// for anything unrecognised.
func From(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, domainErrs.ErrInvalidArgument):
		return New(http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, domainErrs.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, domainErrs.ErrForbidden):
		return New(http.StatusForbidden, "forbidden", err)
	case errors.Is(err, domainErrs.ErrNotFound):
		return New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, domainErrs.ErrConflict):
		return New(http.StatusConflict, "conflict", err)
	}
	return New(http.StatusInternalServerError, fallbackCode, err)
}
