// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error.
//
// Storage and infrastructure failures are logged where they happen and
// replaced with ErrInternal before they reach the delivery layer.
var ErrInternal = errors.New("internal")
