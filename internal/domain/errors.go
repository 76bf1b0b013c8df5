package domain

import "errors"

// ErrNotFound is shared by every layer that looks an entity up by id.
// Repository, service and API client errors for missing entities all
// satisfy errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("not found")
