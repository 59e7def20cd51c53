package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var ErrInvalidInput = errors.New("invalid media input")

const presignTTL = 15 * time.Minute

// Service hands out presigned URLs for resume files. Objects live under
// resumes/<uuid>.<ext> so a key never leaks the uploader's identity.
type Service struct {
	client *minio.Client
	bucket string

	mu      sync.Mutex
	ensured bool
}

func NewService(client *minio.Client, bucket string) *Service {
	return &Service{client: client, bucket: bucket}
}

type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// PresignUpload mints an object key and a PUT URL for it. The extension is
// whitelisted; the content itself is never inspected here.
func (s *Service) PresignUpload(ctx context.Context, filename string) (UploadTicket, error) {
	ext := strings.ToLower(strings.TrimPrefix(extOf(filename), "."))
	switch ext {
	case "pdf", "doc", "docx", "txt", "rtf":
	default:
		return UploadTicket{}, fmt.Errorf("%w: unsupported resume type %q", ErrInvalidInput, ext)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return UploadTicket{}, err
	}

	key := fmt.Sprintf("resumes/%s.%s", uuid.NewString(), ext)
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, presignTTL)
	if err != nil {
		return UploadTicket{}, fmt.Errorf("presign resume upload: %w", err)
	}
	return UploadTicket{Key: key, UploadURL: u.String()}, nil
}

// PresignDownload returns a GET URL for an existing resume key.
func (s *Service) PresignDownload(ctx context.Context, key string) (string, error) {
	if !strings.HasPrefix(key, "resumes/") {
		return "", fmt.Errorf("%w: resume key", ErrInvalidInput)
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign resume download: %w", err)
	}
	return u.String(), nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %q: %w", s.bucket, err)
		}
	}
	s.ensured = true
	return nil
}

func extOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx:]
}
