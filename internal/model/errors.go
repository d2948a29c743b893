package model

import "errors"

// ErrInvalidRequest marks a structurally malformed payload.
var ErrInvalidRequest = errors.New("invalid request")
