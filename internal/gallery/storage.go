package gallery

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// S3API is the subset of the S3 client used by ImageStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore uploads gallery photos to an S3 bucket and hands back the
// public URL stored on the image row.
type ImageStore struct {
	bucket   string
	baseURL  string
	s3Client S3API
	logger   *logging.Logger
}

// NewImageStore creates an ImageStore. If bucket is empty, uploads are rejected.
func NewImageStore(s3Client S3API, bucket, baseURL string, logger *logging.Logger) *ImageStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImageStore{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/"), s3Client: s3Client, logger: logger}
}

// Enabled returns true if uploads are configured (bucket is set).
func (s *ImageStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.s3Client != nil
}

// Upload stores the image body under gallery/<unix-nano>.<ext> and returns
// the public URL. The extension is taken from the original filename.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("gallery: image storage not configured")
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("gallery/%d%s", time.Now().UTC().UnixNano(), ext)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("gallery: s3 put %s: %w", key, err)
	}

	url := s.baseURL + "/" + key
	s.logger.Info("uploaded gallery image", "s3_key", key, "url", url)
	return url, nil
}
