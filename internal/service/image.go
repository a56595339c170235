package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/config"
)

// ImageService stores food photos in S3 and hands out their URLs.
type ImageService struct {
	s3Config *config.S3Config
}

// Ensure ImageService implements IImageService
var _ IImageService = (*ImageService)(nil)

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadFoodImage stores an uploaded photo under foods/<food-id>/ and
// returns its public URL. The object key embeds a fresh UUID so re-uploads
// never overwrite the previous image mid-cache.
func (s *ImageService) UploadFoodImage(ctx context.Context, foodID uuid.UUID, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	key := fmt.Sprintf("foods/%s/%s%s", foodID, uuid.New(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("uploaded food image for %s to %s", foodID, key)
	return url, nil
}

// PresignedImageURL returns a short-lived signed URL for a stored object,
// for buckets that are not public.
func (s *ImageService) PresignedImageURL(ctx context.Context, objectKey string) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, objectKey, 15*time.Minute)
}
