package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/middleware"
	"github.com/naturals/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc   *Service
	log   *zap.Logger
	isDev bool
}

func NewHandler(svc *Service, log *zap.Logger, isDev bool) *Handler {
	return &Handler{svc: svc, log: log, isDev: isDev}
}

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, loginRL, authMW, adminMW gin.HandlerFunc) {
	rg.POST("/login", loginRL, h.login)
	rg.GET("/profile", authMW, h.profile)
	rg.GET("/verify/admin-users/:email", adminMW, h.adminStatus)
}

// login POST /login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Email, dto.Password, dto.DeviceInfo.toEntry())
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			response.Unauthorized(c, "Incorrect username or password.")
		case errors.Is(err, errWrongPassword):
			response.Unauthorized(c, "Incorrect password.")
		case errors.Is(err, errDeviceDenied):
			response.Unauthorized(c, "You cannot login from this device. Use a previously registered device.")
		default:
			h.log.Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(TokenTTL.Seconds()), "/", "", !h.isDev, true)

	response.OK(c, gin.H{
		"message": "Login successful",
		"email":   user.Email,
		"token":   token,
	})
}

// profile GET /profile  [auth]
func (h *Handler) profile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// The middleware resolved the account moments ago; re-read so a freshly
	// disabled or deleted account is reported accurately.
	u, err := h.svc.GetProfile(user.ID)
	if err != nil {
		h.log.Error("load profile failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if u == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.OK(c, profileResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		ExternalID:  u.ExternalID,
		Disabled:    u.Disabled,
	})
}

// adminStatus GET /verify/admin-users/:email  [admin]
// The admin middleware short-circuits with {"Admin": bool}; reaching the
// handler means the param was somehow empty.
func (h *Handler) adminStatus(c *gin.Context) {
	response.BadRequest(c, "email is required")
}
