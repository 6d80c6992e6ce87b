package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Store reads and writes tile lists in S3.
type Store struct {
	svc s3iface.S3API
}

// NewStore wraps an S3 client.
func NewStore(svc s3iface.S3API) *Store {
	return &Store{svc: svc}
}

// NewSessionStore builds a client for region with the given retry budget.
func NewSessionStore(region string, maxRetries int) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:     &region,
		MaxRetries: aws.Int(maxRetries),
	})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}
	return NewStore(s3.New(sess)), nil
}

// Open returns the body of bucket/key. The caller must close it.
func (s *Store) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3://%s/%s: %w", bucket, key, err)
	}
	return obj.Body, nil
}

// Put uploads body to bucket/key.
func (s *Store) Put(ctx context.Context, bucket, key string, body io.ReadSeeker) error {
	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("putting s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// List calls fn with every key under prefix.
func (s *Store) List(ctx context.Context, bucket, prefix string, fn func(key string)) error {
	err := s.svc.ListObjectsPagesWithContext(ctx, &s3.ListObjectsInput{
		Bucket: &bucket,
		Prefix: &prefix,
	}, func(output *s3.ListObjectsOutput, lastPage bool) bool {
		for _, obj := range output.Contents {
			fn(*obj.Key)
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("listing s3://%s/%s: %w", bucket, prefix, err)
	}
	return nil
}
