package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/penlight-studio/folio/biz/handler"
	"github.com/penlight-studio/folio/biz/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Upload  *handler.UploadHandler
	Media   *handler.MediaHandler
	Project *handler.ProjectHandler
	Post    *handler.PostHandler
	Content *handler.ContentHandler
}

// Register configures all HTTP routes. Mutating routes require the shared
// admin token and serialize through the write lock when Redis is enabled.
func Register(r *server.Hertz, h *Handlers, adminToken string) {
	guard := []app.HandlerFunc{middleware.RequireAuth(adminToken)}
	guard = append(guard, middleware.WriteLockMw()...)

	api := r.Group("/api")
	admin := r.Group("/api", guard...)

	admin.POST("/upload", h.Upload.UploadFile)
	admin.POST("/upload/multiple", h.Upload.UploadMultiple)
	admin.DELETE("/upload/:fileName", h.Upload.DeleteFile)
	api.GET("/images/:fileName", h.Media.GetFile)

	api.GET("/projects", h.Project.List)
	api.GET("/projects/:id", h.Project.Get)
	admin.POST("/projects", h.Project.Create)
	admin.PUT("/projects/:id", h.Project.Update)
	admin.DELETE("/projects/:id", h.Project.Delete)

	api.GET("/posts", h.Post.List)
	api.GET("/posts/:slug", h.Post.Get)
	admin.POST("/posts", h.Post.Create)
	admin.PUT("/posts/:id", h.Post.Update)
	admin.DELETE("/posts/:id", h.Post.Delete)

	api.GET("/content", h.Content.List)
	api.GET("/content/:key", h.Content.Get)
	admin.POST("/content", h.Content.Set)
	admin.DELETE("/content/:key", h.Content.Delete)

	r.GET("/ping", handler.Ping)
}
