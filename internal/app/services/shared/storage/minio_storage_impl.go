package storage

import (
	"bytes"
	"context"
	"io"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, objectName string, content []byte, contentType string) error {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return nil
}

func (m *minioStorage) GetObject(ctx context.Context, objectName string) (io.ReadCloser, error) {
	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, m.BucketName)
	}

	// GetObject is lazy; Stat forces the first round trip so a missing
	// object surfaces here instead of on the first read.
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, exceptions.ErrMinioGetObject(err, m.BucketName)
	}
	return object, nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, objectName string) error {
	err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioRemoveObject(err, m.BucketName)
	}
	return nil
}
