package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// FileUploadInput captures metadata and payload for a single upload.
type FileUploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadResult is the response payload for a stored file.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// UploadFile validates the payload, generates a canonical filename, writes
// through the storage facade and returns the access URL. Callers persist the
// canonical filename, never the URL.
func (s *Service) UploadFile(ctx context.Context, input *FileUploadInput) (*UploadResult, error) {
	if input == nil || len(input.Data) == 0 {
		return nil, errors.New("file data is empty")
	}
	if err := s.uploads.Validate(int64(len(input.Data)), input.ContentType, input.Data); err != nil {
		return nil, err
	}

	fileName := GenerateFilename(input.FileName)
	if err := s.store.Upload(ctx, fileName, input.Data); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	return &UploadResult{
		URL:      s.store.URLFor(ctx, fileName),
		FileName: fileName,
	}, nil
}

// UploadFiles stores a batch of uploads. The batch fails atomically on
// validation, but a storage failure mid-batch leaves earlier files in place;
// the handler reports the error and the client retries the remainder.
func (s *Service) UploadFiles(ctx context.Context, inputs []*FileUploadInput) ([]*UploadResult, error) {
	if err := s.uploads.ValidateBatchSize(len(inputs)); err != nil {
		return nil, err
	}
	results := make([]*UploadResult, 0, len(inputs))
	for _, input := range inputs {
		result, err := s.UploadFile(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", input.FileName, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteFile removes a stored file. Deleting a file that is already gone
// succeeds, so repeated deletes are safe.
func (s *Service) DeleteFile(ctx context.Context, ref string) error {
	return s.store.Delete(ctx, ref)
}

// deleteFiles removes every referenced file, logging and skipping individual
// failures so one bad file never blocks cleanup of the rest.
func (s *Service) deleteFiles(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.store.Delete(ctx, ref); err != nil {
			hlog.CtxWarnf(ctx, "delete file %q: %v", ref, err)
		}
	}
}
