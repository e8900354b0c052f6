package middleware

import (
	"context"
	"fmt"

	"kaamtrack/pkg/token"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"
)

const (
	IdentityKey = token.IdentityKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 使用 token 包中共享的生成器
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	// 基于共享生成器创建 middleware，但需要添加 HTTP 相关的配置
	authMiddleware = &jwt.HertzJWTMiddleware{
		Realm:       "KaamTrack API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		MaxRefresh:  sharedGenerator.MaxRefresh,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			uid, ok := claims[IdentityKey].(string)
			if !ok {
				if uidFloat, ok := claims[IdentityKey].(float64); ok {
					uid = fmt.Sprintf("%.0f", uidFloat)
				} else {
					return nil
				}
			}

			// 角色和工人标识随身份一起放进请求上下文，后续 handler 直接读取
			if role, ok := claims[token.RoleKey].(string); ok {
				c.Set(token.RoleKey, role)
			}
			if workerID, ok := claims[token.WorkerKey].(float64); ok {
				c.Set(token.WorkerKey, int64(workerID))
			}

			return uid
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(code, map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "UNAUTHORIZED",
					"message": message,
				},
			})
		},

		TokenLookup:   "header: Authorization, query: token, cookie: jwt",
		TokenHeadName: "Bearer",
	}

	return nil
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// GetUserID 从请求上下文中获取用户ID（public_id，字符串格式）
func GetUserID(ctx context.Context, c *app.RequestContext) (string, bool) {
	userID, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok {
		return "", false
	}

	return id, true
}

// GetRole 获取当前登录账号的角色（owner / worker）
func GetRole(ctx context.Context, c *app.RequestContext) (string, bool) {
	role, exists := c.Get(token.RoleKey)
	if !exists {
		return "", false
	}

	r, ok := role.(string)
	return r, ok
}

// GetWorkerID 获取工人账号关联的工人 public_id，老板账号返回 false
func GetWorkerID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	workerID, exists := c.Get(token.WorkerKey)
	if !exists {
		return 0, false
	}

	id, ok := workerID.(int64)
	return id, ok
}
