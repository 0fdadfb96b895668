package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"
	"strings"
)

// Authenticate resolves the bearer token to a server-side session and stores
// it in the request context. A valid JWT whose session was deleted (logout,
// expiry) is rejected.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(fmt.Errorf("missing authorization header")))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.SessionService.GetSession(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles guards a subtree; it must run after Authenticate.
func (m *Middlewares) RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := GetSessionFromContext(r.Context())
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s not allowed", session.Role)))
		})
	}
}

func GetSessionFromContext(ctx context.Context) (*models.Session, error) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrMissingSessionData(fmt.Errorf("session data not found in context"))
	}
	return session, nil
}
