package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/penlight-studio/folio/biz/dal/model"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/common"
)

// ProjectHandler exposes portfolio project CRUD.
type ProjectHandler struct {
	service *service.Service
}

func NewProjectHandler(service *service.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) Create(ctx context.Context, c *app.RequestContext) {
	var project model.Project
	if err := c.BindJSON(&project); err != nil {
		writeBadRequest(c, err)
		return
	}
	view, err := h.service.CreateProject(ctx, &project)
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

func (h *ProjectHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, err := paramID(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	var project model.Project
	if err := c.BindJSON(&project); err != nil {
		writeBadRequest(c, err)
		return
	}
	project.ID = id
	view, err := h.service.UpdateProject(ctx, &project)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *ProjectHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, err := paramID(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	if err := h.service.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK})
}

func (h *ProjectHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, err := paramID(c)
	if err != nil {
		writeBadRequest(c, err)
		return
	}
	view, err := h.service.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			writeNotFound(c, err)
			return
		}
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: view})
}

func (h *ProjectHandler) List(ctx context.Context, c *app.RequestContext) {
	publishedOnly := !common.IsAdmin(ctx)
	views, err := h.service.ListProjects(ctx, publishedOnly)
	if err != nil {
		writeInternalError(c, err)
		return
	}
	c.JSON(consts.StatusOK, common.CommonResponse{Code: consts.StatusOK, Data: map[string]any{"projects": views}})
}

func paramID(c *app.RequestContext) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
