package ledger

import "errors"

// ErrNotFound covers both a row that does not exist and a row owned by
// another user. Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("record not found")

// ValidationError marks input the caller can fix and should never be
// retried as-is.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
