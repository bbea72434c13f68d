package errors

import "errors"

// ErrDuplicateKey is returned by repositories when a record with the same
// identifier already exists.
var ErrDuplicateKey = errors.New("record already exists")
