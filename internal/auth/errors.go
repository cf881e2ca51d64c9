package auth

import "errors"

// Everything that can go wrong between a request and a trusted identity.
// Handlers collapse all of these into one uniform 401 response; the
// distinction exists for logs and tests, never for clients.
var (
	ErrMissingCredential  = errors.New("missing credential")
	ErrMalformed          = errors.New("malformed token")
	ErrBadSignature       = errors.New("bad token signature")
	ErrExpired            = errors.New("token expired")
	ErrUnknownSubject     = errors.New("unknown token subject")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
