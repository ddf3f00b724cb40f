// Package beyond fetches raw character data from the character service and
// normalizes it into snapshots for the calculation core.
//
// The client speaks plain HTTPS JSON with an optional bearer session token.
// Session tokens are JWTs; expiry is read from the claims (without signature
// verification, since the token is consumed rather than validated) so a stale
// token is rejected before use. Raw payloads can be cached locally; the cache
// stores fetched input only, never computed results.
package beyond
