package contact

import (
	"errors"

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

// RegisterRoutes mounts contact routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")

	contacts.POST("", h.create)
	contacts.GET("", h.list)
	contacts.GET("/:id", h.getByID)
	contacts.PUT("/:id", h.update)
	contacts.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	contact, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errMissingSocialFields) {
			response.BadRequest(c, err.Error())
			return
		}
		h.log.Error("create contact failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, gin.H{"message": "Contact created successfully", "newContact": contact})
}

func (h *Handler) list(c *gin.Context) {
	contacts, err := h.svc.List()
	if err != nil {
		h.log.Error("list contacts failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, contacts)
}

func (h *Handler) getByID(c *gin.Context) {
	contact, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.log.Error("get contact failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if contact == nil {
		response.NotFound(c, "Contact not found")
		return
	}
	response.OK(c, contact)
}

func (h *Handler) update(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	contact, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, errMissingSocialFields) {
			response.BadRequest(c, err.Error())
			return
		}
		h.log.Error("update contact failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if contact == nil {
		response.NotFound(c, "Contact not found")
		return
	}
	response.OK(c, gin.H{"message": "Contact updated successfully", "updatedContact": contact})
}

func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		h.log.Error("delete contact failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !deleted {
		response.NotFound(c, "Contact not found")
		return
	}
	response.Message(c, "Contact deleted successfully")
}
