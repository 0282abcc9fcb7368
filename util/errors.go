package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrCreateFile        = errors.New("could not create file")

	// JSON errors
	ErrMalformedJSON = errors.New("malformed json")
	ErrEncodeJSON    = errors.New("could not encode json")
	ErrNotObject     = errors.New("json document is not an object")
)
