// Package generation wraps the Gemini backend with retry, error
// classification, and best-effort prompt caching.
//
// The Client retries only transient upstream failures (502, 503, 504) with
// exponential backoff; everything else propagates immediately. Classify maps
// backend errors onto stable HTTP statuses and caller-facing hints. The
// CacheManager caches the system instruction and large editing bases when
// they clear the backend's minimum cacheable size; caching never fails a
// request.
package generation
