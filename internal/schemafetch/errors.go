package schemafetch

import "errors"

// ErrSchemaUnavailable indicates that a schema reference could not be
// resolved: the network fetch failed with no cache entry to fall back to,
// the local file does not exist, or the fetched bytes are not JSON.
// Fatal for the lint operation that asked for the schema.
var ErrSchemaUnavailable = errors.New("schema unavailable")
