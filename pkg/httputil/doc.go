// Package httputil provides HTTP support utilities for registry clients:
// a file-based response cache and retry logic with exponential backoff.
//
// The cache stores JSON-marshalable values keyed by SHA-256 hashes under
// ~/.cache/depradar/ (or a custom directory), with TTL-based expiration.
// Retry distinguishes transient failures, wrapped in [RetryableError],
// from permanent ones, which are returned immediately.
package httputil
