package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/penlight-studio/folio/pkg/common"
)

// Ping is the health probe.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"message": "pong"})
}

func writeError(c *app.RequestContext, status int, err error) {
	c.JSON(status, common.CommonResponse{
		Code:  status,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

func writeBadRequest(c *app.RequestContext, err error) {
	writeError(c, consts.StatusBadRequest, err)
}

func writeNotFound(c *app.RequestContext, err error) {
	writeError(c, consts.StatusNotFound, err)
}

func writeInternalError(c *app.RequestContext, err error) {
	writeError(c, consts.StatusInternalServerError, err)
}
