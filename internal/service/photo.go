package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/fittrack/backend/config"
)

// PhotoService stores avatar and progress photos in S3.
type PhotoService struct {
	s3Config *config.S3Config
}

func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{
		s3Config: s3Config,
	}
}

// UploadAvatar uploads image data under the user's avatar prefix and returns
// the public URL and object key.
func (s *PhotoService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, string, error) {
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), extensionFor(contentType))
	url, err := s.upload(ctx, key, data, contentType)
	return url, key, err
}

// UploadProgressPhoto uploads a dated progress photo for the user.
func (s *PhotoService) UploadProgressPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, string, error) {
	key := fmt.Sprintf("progress/%s/%s/%s%s",
		userID, time.Now().Format("2006-01-02"), uuid.New().String(), extensionFor(contentType))
	url, err := s.upload(ctx, key, data, contentType)
	return url, key, err
}

// PresignedURL returns a presigned GET URL for a stored photo, for buckets
// without public read access.
func (s *PhotoService) PresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.s3Config.GeneratePresignedURL(ctx, key, expiration)
}

func (s *PhotoService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[PhotoService] Successfully uploaded photo to S3: %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
