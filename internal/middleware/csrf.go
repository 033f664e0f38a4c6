package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/handlers"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "csrf_token"
	csrfTokenLen   = 32
	csrfMaxAge     = 12 * 60 * 60 // 12 hours
)

// CSRFMiddleware implements the double-submit cookie pattern. The token is
// accepted from the X-CSRF-Token header (API clients) or the csrf_token form
// field (the dashboard's refresh form).
type CSRFMiddleware struct {
	secure bool
}

func NewCSRFMiddleware(secure bool) *CSRFMiddleware {
	return &CSRFMiddleware{secure: secure}
}

func (m *CSRFMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Safe methods don't need CSRF protection
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			token := m.ensureToken(w, r)
			next.ServeHTTP(w, r.WithContext(handlers.SetCSRFTokenInContext(r.Context(), token)))
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || cookie.Value == "" {
			writeForbidden(w, "CSRF token missing")
			return
		}

		submitted := r.Header.Get(csrfHeaderName)
		if submitted == "" {
			submitted = r.PostFormValue(csrfFormField)
		}
		if submitted == "" {
			writeForbidden(w, "CSRF token header missing")
			return
		}

		// Constant-time comparison
		if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
			writeForbidden(w, "CSRF token mismatch")
			return
		}

		next.ServeHTTP(w, r.WithContext(handlers.SetCSRFTokenInContext(r.Context(), cookie.Value)))
	})
}

// ensureToken returns the request's token, issuing a new cookie when absent.
func (m *CSRFMiddleware) ensureToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && cookie.Value != "" {
		w.Header().Set(csrfHeaderName, cookie.Value)
		return cookie.Value
	}

	token, err := generateCSRFToken()
	if err != nil {
		return ""
	}

	m.setCookie(w, token)
	w.Header().Set(csrfHeaderName, token)
	return token
}

func (m *CSRFMiddleware) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   csrfMaxAge,
		HttpOnly: false, // API clients read it back
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(csrfMaxAge * time.Second),
	})
}

func generateCSRFToken() (string, error) {
	bytes := make([]byte, csrfTokenLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// GetToken serves the current token as JSON for scripted API clients.
func (m *CSRFMiddleware) GetToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && cookie.Value != "" {
		writeJSONBody(w, http.StatusOK, `{"token":"`+cookie.Value+`"}`)
		return
	}

	token, err := generateCSRFToken()
	if err != nil {
		writeJSONBody(w, http.StatusInternalServerError, `{"error":"Failed to generate CSRF token"}`)
		return
	}
	m.setCookie(w, token)
	writeJSONBody(w, http.StatusOK, `{"token":"`+token+`"}`)
}

func writeForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

func writeJSONBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
