package handler

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/common"
)

// PostHandler exposes blog post CRUD.
type PostHandler struct {
	service *service.Service
}

func NewPostHandler(service *service.Service) *PostHandler {
	return &PostHandler{service: service}
}

func (h *PostHandler) Create(ctx context.Context, c *app.RequestContext) {
	var post model.Post
	if err := c.BindJSON(&post); err != nil {
		writeBadRequest(c, err)
		return
	}
	view, err := h.service.CreatePost(ctx, &post)
	if err != nil {
		if errors.Is(err, service.ErrSlugExists) {
			writeBadRequest(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *PostHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, err := paramID(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	var post model.Post
	if err := c.BindJSON(&post); err != nil {
		writeBadRequest(c, err)
		return
	}
	post.ID = id
	view, err := h.service.UpdatePost(ctx, &post)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *PostHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, err := paramID(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := h.service.DeletePost(ctx, id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK})
}

func (h *PostHandler) Get(ctx context.Context, c *app.RequestContext) {
	slug := c.Param("slug")
	if slug == "" {
		writeBadRequest(c, errors.New("slug is required"))
		return
	}
	view, err := h.service.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *PostHandler) List(ctx context.Context, c *app.RequestContext) {
	publishedOnly := !common.IsAdmin(ctx)
	views, err := h.service.ListPosts(ctx, publishedOnly)
	if err != nil {
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: map[string]any{"posts": views}})
}
