package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"expensetracker/models"
	"expensetracker/repository"

	"github.com/gin-gonic/gin"
)

// UserFinder 按 ID 查询用户
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// AdminOnly 仅允许启用状态的管理员访问，需在 JWTAuth 之后使用
func AdminOnly(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			abortUnauthorized(c, "请先登录")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortUnauthorized(c, "用户不存在")
				return
			}
			log.Printf("查询用户 %d 失败: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "服务器内部错误"})
			return
		}

		if !user.IsAdmin() || user.Status == models.UserStatusLocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "无权访问"})
			return
		}

		c.Next()
	}
}
