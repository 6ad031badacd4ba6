package letta

import (
	"net/http"
	"os"
)

// AuthKind distinguishes the supported authentication schemes.
type AuthKind int

const (
	// AuthNone sends requests unauthenticated.
	AuthNone AuthKind = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthAPIKey sends a configured header carrying the key.
	AuthAPIKey
)

// String returns the scheme name.
func (k AuthKind) String() string {
	switch k {
	case AuthBearer:
		return "bearer"
	case AuthAPIKey:
		return "api_key"
	default:
		return "none"
	}
}

// Environment variables consulted by AuthFromEnv, in order.
var authEnvVars = []string{"LETTA_API_KEY", "LETTA_TOKEN", "LETTA_AUTH_TOKEN"}

// AuthConfig describes how requests are authenticated. The zero value is
// AuthNone. Values are immutable and safe to share.
type AuthConfig struct {
	kind   AuthKind
	header string
	secret string
}

// NoAuth returns a config that sends no credentials.
func NoAuth() AuthConfig {
	return AuthConfig{}
}

// BearerAuth authenticates with an Authorization bearer token.
func BearerAuth(token string) AuthConfig {
	return AuthConfig{kind: AuthBearer, header: "Authorization", secret: token}
}

// APIKeyAuth authenticates by setting header to value on every request.
func APIKeyAuth(header, value string) AuthConfig {
	return AuthConfig{kind: AuthAPIKey, header: header, secret: value}
}

// AuthFromEnv returns bearer auth using LETTA_API_KEY, LETTA_TOKEN or
// LETTA_AUTH_TOKEN (first non-empty wins), or NoAuth when none are set.
func AuthFromEnv() AuthConfig {
	for _, name := range authEnvVars {
		if token := os.Getenv(name); token != "" {
			return BearerAuth(token)
		}
	}

	return NoAuth()
}

// Kind returns the authentication scheme.
func (a AuthConfig) Kind() AuthKind {
	return a.kind
}

// HeaderName returns the header that carries the credential, or "".
func (a AuthConfig) HeaderName() string {
	return a.header
}

// IsZero reports whether no credentials are configured.
func (a AuthConfig) IsZero() bool {
	return a.kind == AuthNone
}

// Apply sets the credential headers on h.
func (a AuthConfig) Apply(h http.Header) {
	switch a.kind {
	case AuthBearer:
		h.Set("Authorization", "Bearer "+a.secret)
	case AuthAPIKey:
		h.Set(a.header, a.secret)
	case AuthNone:
	}
}

// String describes the config without revealing the secret.
func (a AuthConfig) String() string {
	switch a.kind {
	case AuthBearer:
		return "Bearer " + Redact(a.secret)
	case AuthAPIKey:
		return a.header + ": " + Redact(a.secret)
	default:
		return "none"
	}
}

// Redact masks secret for display, keeping at most its first four
// characters.
func Redact(secret string) string {
	const visible = 4
	if len(secret) <= visible*2 {
		return "****"
	}

	return secret[:visible] + "****"
}
