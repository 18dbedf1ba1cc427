package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/penlight-studio/folio/pkg/common"
)

// Auth returns a middleware that marks the context as admin when the request
// carries the shared admin token. It does NOT enforce authentication; it only
// enriches the context so read endpoints can include unpublished records for
// the admin UI.
func Auth(token string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if token != "" && tokenMatches(c, token) {
			ctx = common.ContextWithAdmin(ctx)
		}
		c.Next(ctx)
	}
}

// RequireAuth returns a middleware that enforces the shared admin token on
// mutating routes. Requests without it are rejected with 401.
func RequireAuth(token string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if token == "" || !tokenMatches(c, token) {
			c.JSON(401, map[string]any{
				"code":  401,
				"error": "authentication required",
				"msg":   "missing or invalid admin token",
			})
			c.Abort()
			return
		}
		ctx = common.ContextWithAdmin(ctx)
		c.Next(ctx)
	}
}

func tokenMatches(c *app.RequestContext, token string) bool {
	supplied := string(c.GetHeader("X-Admin-Token"))
	if supplied == "" {
		auth := string(c.GetHeader("Authorization"))
		supplied = strings.TrimPrefix(auth, "Bearer ")
	}
	if supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) == 1
}
