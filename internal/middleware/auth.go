package middleware

import (
	"strings"

	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 校验 Bearer token，也接受 ?token= 查询参数
func AuthMiddleware(secret func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret())
		if err != nil {
			logger.Log.Debug("JWT解析错误",
				zap.Error(err),
				zap.Bool("expired", util.IsTokenExpired(err)),
				zap.String("request_id", c.GetString(util.RequestIDKey)),
			)
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(util.UserContextKey, claims)
		c.Next()
	}
}
