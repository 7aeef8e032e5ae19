package middleware

import (
	"go-acquire/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextRoomID   = "roomID"
	ContextPlayerID = "playerID"
)

// AuthMiddleware 校验座位令牌；路由中有 :roomID 时令牌必须属于该房间
func AuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "msg": "未授权"})
			return
		}
		claims, err := issuer.ParseSeatToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "msg": "令牌无效"})
			return
		}
		if roomID := c.Param("roomID"); roomID != "" && roomID != claims.RoomID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status_code": http.StatusForbidden, "msg": "令牌不属于该房间"})
			return
		}
		c.Set(ContextRoomID, claims.RoomID)
		c.Set(ContextPlayerID, claims.PlayerID)
		c.Next()
	}
}
