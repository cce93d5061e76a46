// middlewares/ws_auth.go
package middlewares

import (
	"net/http"
	"strings"

	"qrmenu/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware อ่าน JWT จาก query หรือ header สำหรับตอน upgrade WS.
// Token เป็น optional: ไม่ส่งมา = guest session (ลูกค้าสแกน QR ไม่มี token),
// ส่งมาแต่ไม่ valid = ปฏิเสธ
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) ลองอ่านจาก query ก่อน
		if t := c.Query("token"); t != "" {
			tokenStr = t
		} else {
			// 2) ถ้าไม่มี ลองอ่านจาก Header
			h := c.GetHeader("Authorization")
			if h != "" && strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
