package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naturals/core/internal/middleware"
	"github.com/naturals/core/internal/modules/auth"
	"github.com/naturals/core/internal/modules/blog"
	"github.com/naturals/core/internal/modules/contact"
	"github.com/naturals/core/internal/modules/user"
	"github.com/naturals/core/internal/pkg/cache"
	"github.com/naturals/core/internal/pkg/identity"
	"github.com/naturals/core/internal/pkg/response"
)

func (a *App) registerRoutes(provider identity.Provider) {
	r := a.router
	db := a.db

	authMW := middleware.Auth(db)
	adminMW := middleware.AdminAuth(db)
	loginRL := middleware.LoginRateLimit(a.rc)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not Found")
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Naturals API!"})
	})

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	cacheSvc := cache.New(a.rc, a.logger, time.Duration(a.cfg.CacheTTL)*time.Second)

	authSvc := auth.NewService(db)
	auth.NewHandler(authSvc, a.logger, a.cfg.IsDev()).RegisterRoutes(api, loginRL, authMW, adminMW)

	blogSvc := blog.NewService(db, cacheSvc)
	blog.NewHandler(blogSvc, a.logger).RegisterRoutes(api)

	contactSvc := contact.NewService(db)
	contact.NewHandler(contactSvc, a.logger).RegisterRoutes(api)

	userSvc := user.NewService(db, provider, a.logger)
	user.NewHandler(userSvc, a.logger).RegisterRoutes(api, adminMW)
}
