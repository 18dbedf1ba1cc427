package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/penlight-studio/folio/biz/service"
	"github.com/penlight-studio/folio/pkg/storage"
)

// UploadHandler exposes the file upload and delete endpoints.
type UploadHandler struct {
	service *service.Service
}

func NewUploadHandler(service *service.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadFile handles a single multipart upload (field "file") and responds
// with the stored file's canonical name and access URL.
func (h *UploadHandler) UploadFile(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeBadRequest(c, errors.New("no file provided"))
		return
	}

	input, err := readUpload(fileHeader)
	if err != nil {
		writeInternalError(c, err)
		return
	}

	result, err := h.service.UploadFile(ctx, input)
	if err != nil {
		if errors.Is(err, storage.ErrNoBackend) {
			writeInternalError(c, err)
			return
		}
		writeBadRequest(c, err)
		return
	}

	c.JSON(consts.StatusOK, result)
}

// UploadMultiple handles a batch multipart upload (field "files").
func (h *UploadHandler) UploadMultiple(ctx context.Context, c *app.RequestContext) {
	form, err := c.MultipartForm()
	if err != nil {
		writeBadRequest(c, errors.New("no files provided"))
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		writeBadRequest(c, errors.New("no files provided"))
		return
	}

	inputs := make([]*service.FileUploadInput, 0, len(headers))
	for _, fileHeader := range headers {
		input, err := readUpload(fileHeader)
		if err != nil {
			writeInternalError(c, err)
			return
		}
		inputs = append(inputs, input)
	}

	results, err := h.service.UploadFiles(ctx, inputs)
	if err != nil {
		if errors.Is(err, storage.ErrNoBackend) {
			writeInternalError(c, err)
			return
		}
		writeBadRequest(c, err)
		return
	}

	c.JSON(consts.StatusOK, map[string]any{"files": results})
}

// DeleteFile removes a stored file. Repeating the request reports success
// again; a file already gone is treated as deleted.
func (h *UploadHandler) DeleteFile(ctx context.Context, c *app.RequestContext) {
	fileName := c.Param("fileName")
	if fileName == "" {
		writeBadRequest(c, errors.New("fileName is required"))
		return
	}

	if err := h.service.DeleteFile(ctx, fileName); err != nil {
		writeInternalError(c, err)
		return
	}

	c.JSON(consts.StatusOK, map[string]any{"success": true})
}

func readUpload(fileHeader *multipart.FileHeader) (*service.FileUploadInput, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &service.FileUploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
