package classifier

import "errors"

// Classified failures surfaced to the file processor. ErrRateLimited is the
// only one that defers the whole file to the batch-level retry pass; the
// rest are terminal for the file that produced them.
var (
	ErrAPIKeyMissing = errors.New("classifier: api key missing")
	ErrRateLimited   = errors.New("classifier: rate limited")
	ErrTruncated     = errors.New("classifier: response truncated")
)
