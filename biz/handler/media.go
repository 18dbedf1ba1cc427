package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/storage"
)

// MediaHandler serves stored files through the streaming proxy. It buffers
// the whole file before responding; the upload size cap bounds memory, and a
// partially failed backend read never leaks a corrupt response.
type MediaHandler struct {
	service *service.Service
}

func NewMediaHandler(service *service.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// GetFile streams a stored file back to the client, honoring byte-range
// requests on video content so players can seek.
func (h *MediaHandler) GetFile(ctx context.Context, c *app.RequestContext) {
	name := storage.Normalize(c.Param("fileName"))
	if strings.Contains(name, "..") {
		writeBadRequest(c, errors.New("invalid file name"))
		return
	}

	data, err := h.service.Store().Download(ctx, name)
	if err != nil {
		c.String(consts.StatusNotFound, err.Error())
		return
	}

	contentType := storage.ContentTypeFor(name)
	// Public portfolio media; the proxy is always cross-origin friendly.
	c.Response.Header.Set("Access-Control-Allow-Origin", "*")

	if storage.IsVideo(name) {
		c.Response.Header.Set("Accept-Ranges", "bytes")
		if rangeHeader := string(c.GetHeader("Range")); rangeHeader != "" {
			start, end, ok := parseRange(rangeHeader, len(data))
			if ok {
				c.Response.Header.Set("Content-Range",
					fmt.Sprintf("bytes %d-%d/%d", start, end, len(data)))
				c.Data(consts.StatusPartialContent, contentType, data[start:end+1])
				return
			}
		}
	}

	c.Data(consts.StatusOK, contentType, data)
}

// parseRange parses a single "bytes=start-end" range against a body of the
// given size. The end is optional and defaults to the final byte. Returns
// ok=false for anything unparsable, which callers answer with the full body.
func parseRange(header string, size int) (start, end int, ok bool) {
	spec, found := strings.CutPrefix(header, "bytes=")
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || start < 0 || start >= size {
		return 0, 0, false
	}

	end = size - 1
	if tail := strings.TrimSpace(parts[1]); tail != "" {
		end, err = strconv.Atoi(tail)
		if err != nil {
			return 0, 0, false
		}
	}
	if end >= size {
		end = size - 1
	}
	if start > end {
		return 0, 0, false
	}
	return start, end, true
}
