package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestUploadFile(t *testing.T) {
	api := &fakePutter{}
	client := NewStorageClientWithAPI(api, "orbit-exports")

	key, err := client.UploadFile(context.Background(), []byte(`{"ok":true}`), "42/orbit-data-export-2024-05-01.json")
	require.NoError(t, err)
	assert.Equal(t, "exports/42/orbit-data-export-2024-05-01.json", key)
	assert.Equal(t, "orbit-exports", aws.ToString(api.input.Bucket))
	assert.Equal(t, "application/json", aws.ToString(api.input.ContentType))
	assert.Equal(t, `{"ok":true}`, string(api.body))
}

func TestUploadFileErrors(t *testing.T) {
	client := NewStorageClientWithAPI(&fakePutter{}, "bucket")
	_, err := client.UploadFile(context.Background(), []byte("x"), "")
	assert.Error(t, err)

	client = NewStorageClientWithAPI(&fakePutter{err: errors.New("denied")}, "bucket")
	_, err = client.UploadFile(context.Background(), []byte("x"), "a.json")
	assert.Error(t, err)
}
