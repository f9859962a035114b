// Package google handles OAuth2 authorization for Gmail read access.
//
// Tokens are cached per named account as JSON files under the user cache
// directory (or OPSHELM_TOKEN_DIR). The TokenProvider interface lets the
// Gmail client be built from cached tokens or from a fixed token.
package google
