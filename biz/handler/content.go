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

// ContentHandler exposes the site copy key-value store.
type ContentHandler struct {
	service *service.Service
}

func NewContentHandler(service *service.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) Set(ctx context.Context, c *app.RequestContext) {
	var content model.SiteContent
	if err := c.BindJSON(&content); err != nil {
		writeBadRequest(c, err)
		return
	}
	view, err := h.service.SetContent(ctx, &content)
	if err != nil {
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *ContentHandler) Get(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")
	if key == "" {
		writeBadRequest(c, errors.New("key is required"))
		return
	}
	view, err := h.service.GetContent(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *ContentHandler) List(ctx context.Context, c *app.RequestContext) {
	views, err := h.service.ListContent(ctx)
	if err != nil {
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: map[string]any{"content": views}})
}

func (h *ContentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	key := c.Param("key")
	if key == "" {
		writeBadRequest(c, errors.New("key is required"))
		return
	}
	if err := h.service.DeleteContent(ctx, key); err != nil {
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK})
}
