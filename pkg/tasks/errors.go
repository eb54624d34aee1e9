package tasks

import "errors"

// ErrDisabled is returned when work is submitted while the processing gate
// is closed. The submission leaves no trace in any state.
var ErrDisabled = errors.New("task processing is disabled")
