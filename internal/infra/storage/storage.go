package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore persists an object and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// --------------------------------------------------
// S3
// --------------------------------------------------

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store signs with the given static keys. Config loading rejects an
// S3 bucket without them.
func NewS3Store(opts S3Options) *S3Store {
	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &S3Store{client: client, bucket: opts.Bucket, publicURL: publicURL}
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

// --------------------------------------------------
// Local disk
// --------------------------------------------------

type DiskStore struct {
	dir     string
	urlBase string
}

func NewDiskStore(dir, urlBase string) *DiskStore {
	return &DiskStore{dir: dir, urlBase: strings.TrimRight(urlBase, "/")}
}

func (s *DiskStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}
	return s.urlBase + "/" + key, nil
}
