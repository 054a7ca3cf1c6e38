package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pluto-fin/pluto/internal/domain"
)

const (
	// SessionCookieName is the cookie holding the signed session token.
	SessionCookieName = "session"
	// UserKey is the gin context key the authenticated user is stored under.
	UserKey = "session_user"
)

// SessionResolver resolves a session cookie value to its user.
//
//go:generate mockgen -source auth.go -destination auth_mock.go -package middleware
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.User, error)
}

// AuthMiddleware resolves the session cookie and stores the acting user in
// the gin context. Browsers without a live session are sent to the login
// page.
func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		token, err := gctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			gctx.Redirect(http.StatusSeeOther, "/login")
			gctx.Abort()

			return
		}

		user, err := sessions.Resolve(gctx.Request.Context(), token)
		if err != nil {
			gctx.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
			gctx.Redirect(http.StatusSeeOther, "/login")
			gctx.Abort()

			return
		}

		gctx.Set(UserKey, user)
		gctx.Next()
	}
}

// UserFromCtx returns the authenticated user stored by AuthMiddleware.
func UserFromCtx(gctx *gin.Context) domain.User {
	return gctx.MustGet(UserKey).(domain.User)
}
