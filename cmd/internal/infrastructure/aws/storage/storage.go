package storage

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const basePath = "exports/"

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Client struct {
	bucket string
	client PutObjectAPI
}

func NewStorageClient(ctx context.Context, region, bucket string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewStorageClientWithAPI(s3.NewFromConfig(cfg), bucket), nil
}

func NewStorageClientWithAPI(api PutObjectAPI, bucket string) *S3Client {
	return &S3Client{bucket: bucket, client: api}
}

// UploadFile stores data under the exports prefix and returns the object key.
func (s *S3Client) UploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is empty")
	}

	key := basePath + filename
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: &mimeType,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return key, nil
}
