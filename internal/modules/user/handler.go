package user

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts admin user-management routes onto the given router
// group, all behind the admin gate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminMW gin.HandlerFunc) {
	users := rg.Group("/users", adminMW)

	users.GET("", h.list)
	users.POST("/create", h.create)
	users.PUT("/admin-update/info/:id", h.updateInfo)
	users.PATCH("/enable/:id", h.enable)
	users.PATCH("/disable/:id", h.disable)
	users.DELETE("/admin/delete/:id", h.delete)
	users.GET("/profile", h.profileByEmail)
	users.GET("/admin/profile/:id", h.profileByID)
	users.PUT("/admin/update-profile/:id", h.updateProfile)
	users.DELETE("/admin/remove-device/:email/:deviceId", h.removeDevice)
	users.POST("/admin/logout", h.logout)
}

// list GET /users
func (h *Handler) list(c *gin.Context) {
	users, err := h.svc.List()
	if err != nil {
		h.log.Error("list users failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// create POST /users/create
func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		if errors.Is(err, errEmailInUse) {
			response.BadRequest(c, "Email already in use.")
			return
		}
		h.log.Error("create user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, u)
}

// updateInfo PUT /users/admin-update/info/:id
func (h *Handler) updateInfo(c *gin.Context) {
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.svc.UpdateInfo(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		h.respondError(c, err, "update user failed")
		return
	}
	response.OK(c, u)
}

// enable PATCH /users/enable/:id
func (h *Handler) enable(c *gin.Context) {
	if err := h.svc.SetDisabled(c.Request.Context(), c.Param("id"), false); err != nil {
		h.respondError(c, err, "enable user failed")
		return
	}
	response.Message(c, "User account enabled.")
}

// disable PATCH /users/disable/:id
func (h *Handler) disable(c *gin.Context) {
	if err := h.svc.SetDisabled(c.Request.Context(), c.Param("id"), true); err != nil {
		h.respondError(c, err, "disable user failed")
		return
	}
	response.Message(c, "User account disabled.")
}

// delete DELETE /users/admin/delete/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "delete user failed")
		return
	}
	response.Message(c, "User deleted successfully.")
}

// profileByEmail GET /users/profile?email=
func (h *Handler) profileByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		response.BadRequest(c, "email is required")
		return
	}
	u, err := h.svc.GetByEmail(email)
	if err != nil {
		h.log.Error("get user by email failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if u == nil {
		response.NotFound(c, "User not found")
		return
	}
	response.OK(c, []interface{}{u})
}

// profileByID GET /users/admin/profile/:id
func (h *Handler) profileByID(c *gin.Context) {
	u, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.log.Error("get user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if u == nil {
		response.NotFound(c, "User not found")
		return
	}
	response.OK(c, u)
}

// updateProfile PUT /users/admin/update-profile/:id
func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(c.Param("id"), &dto)
	if err != nil {
		h.respondError(c, err, "update profile failed")
		return
	}
	response.OK(c, gin.H{"message": "Profile updated successfully", "user": u})
}

// removeDevice DELETE /users/admin/remove-device/:email/:deviceId
func (h *Handler) removeDevice(c *gin.Context) {
	if err := h.svc.RemoveDevice(c.Param("email"), c.Param("deviceId")); err != nil {
		h.respondError(c, err, "remove device failed")
		return
	}
	response.Message(c, "Device removed successfully")
}

// logout POST /users/admin/logout
func (h *Handler) logout(c *gin.Context) {
	var dto LogoutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "User ID is required")
		return
	}
	if err := h.svc.RevokeSessions(c.Request.Context(), dto.UID); err != nil {
		h.log.Error("revoke sessions failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Message(c, "User logged out successfully")
}

func (h *Handler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, errEmailInUse):
		response.BadRequest(c, "Email already in use.")
	default:
		h.log.Error(logMsg, zap.Error(err))
		response.InternalError(c)
	}
}
