package main

import (
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/biz/handler"
	"github.com/penlight-studio/folio/biz/middleware"
	"github.com/penlight-studio/folio/biz/router"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/config"
	"github.com/penlight-studio/folio/pkg/database"
	"github.com/penlight-studio/folio/pkg/lock"
	"github.com/penlight-studio/folio/pkg/redis"
	"github.com/penlight-studio/folio/pkg/storage"
	"github.com/penlight-studio/folio/pkg/validator"
)

const writeLockKey = "folio:write_lock"

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Project{}, &model.Post{}, &model.SiteContent{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to init storage backend: %v", err)
	}
	log.Printf("Storage backend: %s", store.ActiveBackend())

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		middleware.InitWriteLock(lock.New(client, writeLockKey, 30*time.Second, 10*time.Second))
		log.Printf("Admin write lock enabled via redis at %s", cfg.Redis.Address)
	}

	uploads := &validator.UploadConfig{
		MaxFileSize:      cfg.Upload.MaxSize,
		MaxBatchFiles:    cfg.Upload.MaxFiles,
		AllowedMimeTypes: validator.DefaultAllowedMimeTypes,
	}
	svc := service.NewService(db, store, uploads)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(int(cfg.Upload.MaxSize)+1<<20),
	)
	h.Use(middleware.Recovery())
	h.Use(middleware.CORS(&cfg.CORS))
	h.Use(middleware.Logging())
	h.Use(middleware.Auth(cfg.Admin.Token))

	router.Register(h, &router.Handlers{
		Upload:  handler.NewUploadHandler(svc),
		Media:   handler.NewMediaHandler(svc),
		Project: handler.NewProjectHandler(svc),
		Post:    handler.NewPostHandler(svc),
		Content: handler.NewContentHandler(svc),
	}, cfg.Admin.Token)

	// Serve the uploads directory directly when no remote backend is active.
	if store.ActiveBackend() == storage.BackendLocal {
		h.StaticFS("/uploads", &app.FS{
			Root:        cfg.Storage.UploadsDir,
			PathRewrite: app.NewPathSlashesStripper(1),
		})
	}

	log.Printf("Listening on %s", cfg.Server.Address)
	h.Spin()
}
