package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/models"
	jwtpkg "github.com/naturals/core/internal/pkg/jwt"
	"github.com/naturals/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ContextKeyUser carries the resolved account (password omitted) on the
// request context.
const ContextKeyUser = "auth_user"

// Auth returns a middleware that enforces JWT authentication. Each failure
// mode gets its own message: missing header, expired token, failed
// verification, and a subject that no longer exists.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db)
		if !ok {
			return
		}
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// AdminAuth enforces JWT authentication plus the administrative role.
// When the route carries an :email param the middleware short-circuits into
// an admin-status lookup for that address and never invokes the handler.
func AdminAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, db)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			response.Forbidden(c, "Admin access required")
			return
		}
		c.Set(ContextKeyUser, user)

		if email := c.Param("email"); email != "" && strings.HasPrefix(c.FullPath(), "/api/verify/") {
			var target models.UserModel
			err := db.Omit("password").Where("email = ?", strings.ToLower(email)).First(&target).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.NotFound(c, "User not found")
				return
			}
			if err != nil {
				response.InternalError(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"Admin": target.IsAdmin()})
			return
		}

		c.Next()
	}
}

// CurrentUser extracts the authenticated account from context.
func CurrentUser(c *gin.Context) *models.UserModel {
	v, _ := c.Get(ContextKeyUser)
	u, _ := v.(*models.UserModel)
	return u
}

func resolveUser(c *gin.Context, db *gorm.DB) (*models.UserModel, bool) {
	auth := c.GetHeader("Authorization")
	if strings.TrimSpace(auth) == "" {
		response.Unauthorized(c, "Not authorized, no token")
		return nil, false
	}

	claims, err := jwtpkg.Parse(normalizeToken(auth))
	if err != nil {
		if errors.Is(err, jwtpkg.ErrExpired) {
			response.Unauthorized(c, "Token expired")
			return nil, false
		}
		response.Unauthorized(c, "Not authorized, token failed")
		return nil, false
	}

	var user models.UserModel
	if err := db.Omit("password").First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "User not found")
			return nil, false
		}
		response.InternalError(c)
		return nil, false
	}
	return &user, true
}

// normalizeToken trims spaces and strips the optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
