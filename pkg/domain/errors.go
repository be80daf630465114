package domain

import "errors"

// ErrFlagNotFound is returned when no cached completion flag exists for a user.
var ErrFlagNotFound = errors.New("completion flag not found")

// ErrNotAuthenticated is returned when an operation requires a signed-in user
// and none exists.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrEngineBusy is returned when a command arrives while the engine is
// loading, typing or saving and cannot accept it.
var ErrEngineBusy = errors.New("engine busy")

// ErrNotAwaiting is returned when a response is submitted outside the
// awaiting-response phase.
var ErrNotAwaiting = errors.New("not awaiting a response")
