package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrMalformedResponse is returned when a response that should be
	// encrypted carries no encrypted_data field. This is a protocol or
	// version mismatch, not a wrong key: the stored key is left alone.
	ErrMalformedResponse = errors.New("response is missing the encrypted_data field")
)
