package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/HammerMeetNail/quizdash/internal/handlers"
)

const basicAuthRealm = `Basic realm="quizdash", charset="UTF-8"`

// BasicAuth protects the dashboard with one operator account whose password
// is stored as a bcrypt hash. With no hash configured every request is let
// through, which config only permits outside production.
type BasicAuth struct {
	username string
	hash     []byte

	// verified holds sha256(username:password) of credentials that already
	// passed bcrypt, so repeat requests skip the bcrypt cost.
	verified sync.Map
}

func NewBasicAuth(username, passwordHash string) *BasicAuth {
	return &BasicAuth{username: username, hash: []byte(passwordHash)}
}

// Enabled reports whether credentials are required.
func (a *BasicAuth) Enabled() bool {
	return len(a.hash) > 0
}

func (a *BasicAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !a.check(user, pass) {
			w.Header().Set("WWW-Authenticate", basicAuthRealm)
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ctx := handlers.SetOperatorInContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *BasicAuth) check(user, pass string) bool {
	if subtle.ConstantTimeCompare([]byte(user), []byte(a.username)) != 1 {
		return false
	}

	digest := sha256.Sum256([]byte(user + ":" + pass))
	if _, ok := a.verified.Load(digest); ok {
		return true
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(pass)) != nil {
		return false
	}
	a.verified.Store(digest, struct{}{})
	return true
}
