package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	appconfig "NoteKeeper/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store загружает фото заметок в S3-совместимое хранилище (MinIO и т.п.)
// и отдаёт публичный URL объекта.
type S3Store struct {
	client   *s3.Client
	endpoint string
	bucket   string
}

// NewS3Store создаёт клиент по статическим ключам и кастомному endpoint.
func NewS3Store(ctx context.Context, cfg *appconfig.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		endpoint: strings.TrimRight(cfg.S3Endpoint, "/"),
		bucket:   cfg.S3Bucket,
	}, nil
}

// storageKey раскладывает объекты по дате загрузки.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("notes/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Upload кладёт байты одним PutObject. Без повторных попыток: ошибка
// уходит вызывающему как есть.
func (s *S3Store) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	key := storageKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("putting object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key), nil
}
