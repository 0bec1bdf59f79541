// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/config"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/handler"
	"github.com/mrkadirov2005/MILETONE1-Issue-tracker/internal/middleware"
)

// Register mounts every route group on the Echo instance. rdb may be nil;
// rate limiting and response caching are skipped when Redis is unavailable.
func Register(e *echo.Echo, a *handler.AuthHandler, i *handler.IssueHandler, l *handler.LabelHandler, cm *handler.CommentHandler, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	var rateLimit, cache echo.MiddlewareFunc
	if rdb != nil {
		rateLimit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	auth := e.Group("/auth")
	if rateLimit != nil {
		auth.Use(rateLimit)
	}
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout)
	if cache != nil {
		auth.GET("/users", a.ListUsers, cache)
	} else {
		auth.GET("/users", a.ListUsers)
	}

	// Token introspection stays public; it carries its own Bearer parsing.
	e.GET("/token/verify", a.VerifyToken)

	jwt := middleware.JWTAuth(jwtSecret)

	issue := e.Group("/issue", jwt)
	issue.POST("/add", i.Create)
	issue.GET("/all", i.List)
	issue.GET("/by_id", i.GetByID)
	issue.PUT("/update", i.Update)
	issue.DELETE("/delete", i.Delete)

	label := e.Group("/label", jwt)
	label.POST("/add", l.Create)
	if cache != nil {
		label.GET("/all", l.List, cache)
	} else {
		label.GET("/all", l.List)
	}
	label.PUT("/update", l.Update)
	label.DELETE("/delete", l.Delete)
	label.POST("/assign", l.Assign)
	label.POST("/unassign", l.Unassign)

	comment := e.Group("/comment", jwt)
	comment.POST("/add", cm.Create)
	comment.PUT("/update", cm.Update)
	comment.DELETE("/delete", cm.Delete)
	comment.GET("/issue", cm.ListByIssue)
	comment.GET("/user", cm.ListByUser)
}
