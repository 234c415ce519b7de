package session

import "errors"

// Rejected operations return one of these, wrapped with the reason. The
// session is left unchanged whenever an error is returned.
var (
	ErrInvalidMove           = errors.New("invalid move")
	ErrIllegalWildCardTarget = errors.New("illegal wild card target")
	ErrInvalidSnapshot       = errors.New("invalid snapshot")
)
