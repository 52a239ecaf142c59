// Package integrations provides API clients for the external services
// depradar consumes: the GitHub REST API (repository listing, token
// validation, repository status) and the npm registry (package metadata,
// download counts).
//
// All clients share a common base [Client] that layers file-based
// response caching and retry-with-backoff on top of net/http. The
// repository listing path deliberately skips both: a listing failure
// aborts the whole run rather than being retried or served stale.
package integrations
