package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// deleteObjects accepts at most 1000 keys per request.
const deleteBatchSize = 1000

// S3Store implements BlobStore against any S3-compatible endpoint.
type S3Store struct {
	client *s3.S3
	bucket string
}

// S3Options configures the S3 connection. Endpoint is optional and is
// used with path-style addressing for MinIO/Supabase-style backends.
type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string
}

// NewS3Store builds an S3-backed blob store. Credentials come from the
// default AWS chain (env, shared config, instance role).
func NewS3Store(opts S3Options) (*S3Store, error) {
	cfg := &aws.Config{Region: aws.String(opts.Region)}
	if opts.Endpoint != "" {
		cfg.Endpoint = aws.String(opts.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: opts.Bucket}, nil
}

// Put writes a blob at path.
func (s *S3Store) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, err)
	}
	return nil
}

// SignedURL returns a pre-authorized GET link for the blob at path.
func (s *S3Store) SignedURL(_ context.Context, path string, ttl time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	url, err := req.Presign(ttl)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", path, err)
	}
	return url, nil
}

// Delete removes the given blobs in batches. Missing keys are not an
// error; S3 delete is idempotent.
func (s *S3Store) Delete(ctx context.Context, paths []string) error {
	for start := 0; start < len(paths); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(paths) {
			end = len(paths)
		}

		objects := make([]*s3.ObjectIdentifier, 0, end-start)
		for _, p := range paths[start:end] {
			objects = append(objects, &s3.ObjectIdentifier{Key: aws.String(p)})
		}

		_, err := s.client.DeleteObjectsWithContext(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &s3.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects: %w", err)
		}
	}
	return nil
}
