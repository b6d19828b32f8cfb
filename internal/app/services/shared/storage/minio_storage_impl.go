package storage

import (
	"bytes"
	"mawaid-service/internal/app/config"
	"mawaid-service/internal/app/contracts"
	"mawaid-service/internal/pkg/exceptions"

	"context"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, internalConfig *config.InternalConfig) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  internalConfig.Minio.BucketName,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}
	return objectName, nil
}
