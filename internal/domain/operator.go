package domain

import "errors"

// ErrWrongCredentials indicates that the operator username or password is wrong.
var ErrWrongCredentials = errors.New("wrong username or password")
