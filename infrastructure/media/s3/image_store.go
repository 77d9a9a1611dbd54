// Package s3 adapts AWS S3 to the ImageStore port for profile image
// hosting.
package s3

import (
	"context"
	"fmt"
	"time"

	"pathshala-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// presignExpiry is how long an upload URL stays valid
const presignExpiry = time.Hour

// ImageStore implements ports.ImageStore over an S3 bucket with
// path-style public URLs
type ImageStore struct {
	presigner *awss3.PresignClient
	bucket    string
	region    string
	logger    *zap.Logger
}

// NewImageStore creates an S3-backed image store
func NewImageStore(client *awss3.Client, bucket, region string, logger *zap.Logger) ports.ImageStore {
	return &ImageStore{
		presigner: awss3.NewPresignClient(client),
		bucket:    bucket,
		region:    region,
		logger:    logger,
	}
}

// PresignUpload returns a time-limited PUT URL for the given object key
// and the durable public URL the object will be served from
func (s *ImageStore) PresignUpload(ctx context.Context, key, contentType string) (ports.UploadTarget, error) {
	req, err := s.presigner.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(presignExpiry))
	if err != nil {
		return ports.UploadTarget{}, fmt.Errorf("presign upload: %w", err)
	}

	return ports.UploadTarget{
		UploadURL: req.URL,
		PublicURL: s.PublicURL(key),
		Key:       key,
	}, nil
}

// PublicURL builds the path-style URL for an object
func (s *ImageStore) PublicURL(key string) string {
	return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
}
