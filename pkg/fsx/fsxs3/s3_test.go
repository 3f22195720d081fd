package fsxs3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Abraxas-365/peoplehub/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Bucket+"/"+*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3FileSystem_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	fs := NewS3FileSystem(client, "hr-bucket", "/uploads/")

	p := fs.Join("receipts", "e1.png")
	require.NoError(t, fs.WriteFile(ctx, p, []byte("img")))
	assert.Contains(t, client.objects, "hr-bucket/uploads/receipts/e1.png")

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)

	ok, err := fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, fs.DeleteFile(ctx, p))
	ok, err = fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.ReadFile(ctx, p)
	assert.ErrorIs(t, err, fsx.ErrNotExist)
}
