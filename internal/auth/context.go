package auth

import "context"

type principalContextKey struct{}
type sessionContextKey struct{}

// ContextWithPrincipal attaches the authenticated principal to the context.
// The principal is request-scoped state: it is bound once after token
// resolution and never reassigned, so concurrent requests for different
// tenants cannot observe each other's binding.
func ContextWithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, &principal)
}

// PrincipalFromContext extracts the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	v, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || v == nil {
		return Principal{}, false
	}
	return *v, true
}

// ContextWithSessionID stores the resolved session id, so the logout
// handler can revoke exactly the credential that authenticated the request.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

// SessionIDFromContext returns the session id attached by the auth
// middleware, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(sessionContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
