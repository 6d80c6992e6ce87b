package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tzs3 "github.com/tilezen/hilbert/pkg/s3"
)

type memS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func (m *memS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error) {
	b, ok := m.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (m *memS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[*in.Bucket+"/"+*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func TestS3RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := &memS3{objects: make(map[string][]byte)}
	created := 0
	store := func() (*tzs3.Store, error) {
		created++
		return tzs3.NewStore(mem), nil
	}

	w, err := CreateOutput(ctx, "s3://bucket/out.txt", store)
	require.NoError(t, err)
	_, err = io.WriteString(w, "2/1/1\n")
	require.NoError(t, err)
	assert.Empty(t, mem.objects)
	require.NoError(t, w.Close())
	assert.Equal(t, "2/1/1\n", string(mem.objects["bucket/out.txt"]))

	r, err := OpenInput(ctx, "s3://bucket/out.txt", store)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "2/1/1\n", string(b))
	assert.Equal(t, 2, created)
}

func TestLocalFiles(t *testing.T) {
	ctx := context.Background()
	noStore := func() (*tzs3.Store, error) {
		t.Fatal("store should not be needed")
		return nil, nil
	}
	path := filepath.Join(t.TempDir(), "tiles.txt")

	w, err := CreateOutput(ctx, path, noStore)
	require.NoError(t, err)
	_, err = io.WriteString(w, "0/0/0\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenInput(ctx, path, noStore)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "0/0/0\n", string(b))

	_, err = OpenInput(ctx, filepath.Join(t.TempDir(), "missing"), noStore)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStoreError(t *testing.T) {
	boom := errors.New("no credentials")
	_, err := OpenInput(context.Background(), "s3://b/k", func() (*tzs3.Store, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}
