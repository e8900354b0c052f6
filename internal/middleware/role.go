package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"kaamtrack/pkg/errors"
	"kaamtrack/pkg/response"
)

// RequireRole 限制路由仅允许指定角色访问，需要挂在 AuthMiddleware 之后
func RequireRole(role string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		current, ok := GetRole(ctx, c)
		if !ok || current != role {
			c.Abort()
			response.Error(ctx, c, errors.RoleForbidden)
			return
		}

		c.Next(ctx)
	}
}
