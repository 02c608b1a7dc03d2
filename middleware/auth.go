package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const revokedTokenPrefix = "revokedToken:"

// JWTAuthMiddleware validates the bearer token minted by the external
// identity service and places the caller's ID in the context as "actorID".
// A Redis auth-cache entry keyed by token hash marks revoked tokens.
func JWTAuthMiddleware(authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  500,
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		actorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		if authCache != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			revoked, err := authCache.Exists(ctx, revokedTokenPrefix+utils.HashToken(tokenString)).Result()
			cancel()
			if err == nil && revoked > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token revoked",
					"code":  0,
				})
				return
			}
		}

		c.Set("actorID", actorID)
		c.Next()
	}
}
