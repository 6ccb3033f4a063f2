package auth

import (
	"net/http"
	"strings"
)

// ExtractToken pulls a JWT from the request, preferring the Authorization
// header and falling back to the "token" query parameter (websocket clients
// cannot always set headers).
func ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

// ExtractBearerTokenFromHeader strips the "Bearer " prefix from an
// Authorization header value, returning an empty string when absent.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	const bearerPrefix = "bearer "
	if strings.HasPrefix(strings.ToLower(header), bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return ""
}
