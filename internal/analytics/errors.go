package analytics

import "errors"

// ErrNotFound is returned by identity lookups (player, match) that match
// nothing. Listings return empty slices instead.
var ErrNotFound = errors.New("not found")
