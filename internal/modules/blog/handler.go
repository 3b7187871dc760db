package blog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/pkg/pagination"
	"github.com/naturals/core/internal/pkg/response"
	"go.uber.org/zap"
)

const jsonContentType = "application/json; charset=utf-8"

// Handler handles blog HTTP requests.
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes mounts blog routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	blogs := rg.Group("/blogs")

	blogs.GET("", h.list)
	blogs.GET("/:id", h.getBySlug)
	blogs.POST("", h.create)
	blogs.PUT("/:id", h.update)
	blogs.DELETE("/:id", h.delete)
}

// list GET /blogs
func (h *Handler) list(c *gin.Context) {
	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q := pagination.FromContext(c)

	payload, cached, err := h.svc.List(c.Request.Context(), q, lq)
	if err != nil {
		h.log.Error("list blogs failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if cached {
		c.Header("X-Cache", "hit")
	}
	c.Data(http.StatusOK, jsonContentType, payload)
}

// getBySlug GET /blogs/:id. The param is the slug, with ID fallback.
func (h *Handler) getBySlug(c *gin.Context) {
	renderHTML := c.Query("format") == "html"

	payload, cached, err := h.svc.GetBySlug(c.Request.Context(), c.Param("id"), renderHTML)
	if err != nil {
		h.log.Error("get blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if payload == nil {
		response.NotFound(c, "Blog not found")
		return
	}
	if cached {
		c.Header("X-Cache", "hit")
	}
	c.Data(http.StatusOK, jsonContentType, payload)
}

// create POST /blogs
func (h *Handler) create(c *gin.Context) {
	var dto CreateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Title, content, image URL and category are required")
		return
	}

	b, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCategory):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errSlugConflict):
			response.Conflict(c, err.Error())
		default:
			h.log.Error("create blog failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, gin.H{"message": "Blog created successfully", "blog": b})
}

// update PUT /blogs/:id
func (h *Handler) update(c *gin.Context) {
	var dto UpdateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	b, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCategory):
			response.BadRequest(c, err.Error())
		case errors.Is(err, errSlugConflict):
			response.Conflict(c, err.Error())
		default:
			h.log.Error("update blog failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	if b == nil {
		response.NotFound(c, "Blog not found")
		return
	}

	response.OK(c, gin.H{"message": "Blog updated successfully", "blog": b})
}

// delete DELETE /blogs/:id
func (h *Handler) delete(c *gin.Context) {
	deleted, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("delete blog failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if !deleted {
		response.NotFound(c, "Blog not found")
		return
	}
	response.Message(c, "Blog deleted successfully")
}
