package field

import "errors"

// ErrMissingOnSave is returned by New when Callbacks.OnSave is nil.
var ErrMissingOnSave = errors.New("field: OnSave callback is required")
