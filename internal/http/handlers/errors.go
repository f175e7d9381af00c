package handlers

import "errors"

var (
	errInvalidID   = errors.New("id must be a positive integer")
	errInvalidBody = errors.New("request body must be valid JSON")

	errNotAuthenticated = errors.New("not authenticated")
)
