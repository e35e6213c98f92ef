package session

import (
	"net/http"
	"strings"
	"time"
)

const CookieName = "jwt"

// SetCookie attaches the session token as an http-only secure cookie whose
// lifetime matches the token's.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})
}

// TokenFromRequest extracts the session token. The cookie wins over the
// Authorization header when both are present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}

	return ""
}
