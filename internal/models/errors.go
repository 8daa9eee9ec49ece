package models

import "errors"

// Sentinel errors services return so handlers can map them onto HTTP status
// codes with errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("login required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
