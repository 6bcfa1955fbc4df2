package schema

import "errors"

// Sentinel errors returned by schema loading helpers (YAML/FGA file
// readers) outside of the per-field ValidationError returned by
// Schema.Validate/ValidateTuple.
var (
	ErrEmptySchema    = errors.New("relcore/schema: schema has no namespaces")
	ErrUnreadableFile = errors.New("relcore/schema: unable to read schema file")
)
