package cartapi

import (
	"net/http"

	"MiniCart/internal/session"
	"MiniCart/pkg/kit"
)

// RequireSession resolves the bearer token to a session id on the request context.
func RequireSession(tokens *session.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := kit.BearerToken(r)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			claims, err := tokens.Parse(tok)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := session.WithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rateKey limits per session when there is one, per client IP otherwise.
func rateKey(r *http.Request) string {
	if sid := session.IDFromContext(r.Context()); sid != "" {
		return "sid:" + sid
	}
	return "ip:" + kit.ClientIP(r)
}
