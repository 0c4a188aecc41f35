package services

import "errors"

// ErrUnauthenticated is returned when a mutation is attempted with no
// signed-in user. The operation is not retried.
var ErrUnauthenticated = errors.New("user not authenticated")
