package assets

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/shaysadin/wedding-seating-api/internal/config"
	"github.com/shaysadin/wedding-seating-api/internal/logger"
)

// Store wraps an S3-compatible object store for event assets (invitation
// images, floor plan sketches, imported guest lists).
type Store struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
	log           *log.Logger
}

// NewStore creates a store from configuration and ensures the bucket exists
func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKeyID, cfg.Storage.SecretAccessKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	s := &Store{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		presignExpiry: cfg.Storage.PresignExpiry,
		log:           logger.Service("assets"),
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	s.log.Info("object store initialized", "endpoint", cfg.Storage.Endpoint, "bucket", s.bucket)
	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	s.log.Info("bucket created", "bucket", s.bucket)
	return nil
}

// Upload stores an object under eventID/filename and returns its object key
func (s *Store) Upload(ctx context.Context, eventID, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%s/%s", eventID, filename)

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("upload failed", "key", key, "error", err)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Info("asset uploaded", "key", key, "size", info.Size)
	return key, nil
}

// PresignedURL returns a time-limited download URL for an object key
func (s *Store) PresignedURL(ctx context.Context, key string) (*url.URL, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.presignExpiry, url.Values{})
	if err != nil {
		return nil, fmt.Errorf("failed to presign %s: %w", key, err)
	}
	return u, nil
}

// Remove deletes an object by key
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	s.log.Info("asset removed", "key", key)
	return nil
}
