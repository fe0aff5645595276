package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"job-assignment-service/internal/entity"
)

type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

type JobGetter interface {
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)
}

// UploadService stores progress photos for existing jobs.
type UploadService struct {
	jobs  JobGetter
	blobs BlobStore
	log   *zap.SugaredLogger
}

func NewUploadService(jobs JobGetter, blobs BlobStore) *UploadService {
	return &UploadService{jobs: jobs, blobs: blobs, log: zap.S().Named("upload")}
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadProgress returns the URL of the stored file. Unknown jobs yield ErrJobNotFound.
func (s *UploadService) UploadProgress(ctx context.Context, jobID uuid.UUID, up Upload) (string, error) {
	if _, err := s.jobs.GetJob(ctx, jobID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("jobs/%s/%s_%s", jobID, uuid.NewString(), safeName(up.Filename))
	url, err := s.blobs.Put(ctx, key, up.Body, up.Size, up.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload progress photo: %w", err)
	}

	s.log.Infow("progress photo uploaded", "job_id", jobID, "key", key, "size", up.Size)
	return url, nil
}

func safeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return strings.ReplaceAll(name, " ", "_")
}
