package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LeaseDocumentService stores signed lease agreements. Objects are keyed by
// property and tenancy so the contract endpoints can fetch the agreement
// backing any tenancy.
type LeaseDocumentService interface {
	Upload(ctx context.Context, propertyID, tenantID uuid.UUID, reader io.Reader, size int64) error
	GetDownloadURL(ctx context.Context, propertyID, tenantID uuid.UUID, expiry time.Duration) (string, error)
	Delete(ctx context.Context, propertyID, tenantID uuid.UUID) error
}

type leaseDocumentService struct {
	client *minio.Client
	bucket string
}

func NewLeaseDocumentService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (LeaseDocumentService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	svc := &leaseDocumentService{client: client, bucket: bucket}
	if err := svc.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("ensure bucket %s: %w", bucket, err)
	}
	return svc, nil
}

func (s *leaseDocumentService) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func objectKey(propertyID, tenantID uuid.UUID) string {
	return fmt.Sprintf("leases/%s/%s.pdf", propertyID, tenantID)
}

func (s *leaseDocumentService) Upload(ctx context.Context, propertyID, tenantID uuid.UUID, reader io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(propertyID, tenantID), reader, size, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	return err
}

func (s *leaseDocumentService) GetDownloadURL(ctx context.Context, propertyID, tenantID uuid.UUID, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey(propertyID, tenantID), expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (s *leaseDocumentService) Delete(ctx context.Context, propertyID, tenantID uuid.UUID) error {
	return s.client.RemoveObject(ctx, s.bucket, objectKey(propertyID, tenantID), minio.RemoveObjectOptions{})
}
