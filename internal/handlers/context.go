package handlers

import (
	"context"
)

type contextKey string

const (
	operatorContextKey  contextKey = "operator"
	csrfTokenContextKey contextKey = "csrf_token"
)

// SetOperatorInContext records the authenticated operator's username.
func SetOperatorInContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, operatorContextKey, username)
}

func GetOperatorFromContext(ctx context.Context) string {
	username, _ := ctx.Value(operatorContextKey).(string)
	return username
}

// SetCSRFTokenInContext makes the request's CSRF token available to page
// templates that render forms.
func SetCSRFTokenInContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenContextKey, token)
}

func GetCSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenContextKey).(string)
	return token
}
