package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	tzs3 "github.com/tilezen/hilbert/pkg/s3"
)

// StoreFunc returns the S3 store, creating it on first use.
type StoreFunc func() (*tzs3.Store, error)

// OpenInput opens a location for reading: "-" or "" is stdin, s3://bucket/key
// is read through the store, anything else is a local file.
func OpenInput(ctx context.Context, location string, store StoreFunc) (io.ReadCloser, error) {
	if location == "" || location == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if bucket, key, ok := tzs3.ParseURL(location); ok {
		s, err := store()
		if err != nil {
			return nil, err
		}
		return s.Open(ctx, bucket, key)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// CreateOutput opens a location for writing, with the same rules as
// OpenInput. S3 output is buffered in memory and uploaded on Close.
func CreateOutput(ctx context.Context, location string, store StoreFunc) (io.WriteCloser, error) {
	if location == "" || location == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if bucket, key, ok := tzs3.ParseURL(location); ok {
		s, err := store()
		if err != nil {
			return nil, err
		}
		return &s3Writer{ctx: ctx, store: s, bucket: bucket, key: key}, nil
	}
	f, err := os.Create(location)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type s3Writer struct {
	bytes.Buffer
	ctx         context.Context
	store       *tzs3.Store
	bucket, key string
}

func (w *s3Writer) Close() error {
	return w.store.Put(w.ctx, w.bucket, w.key, bytes.NewReader(w.Bytes()))
}
