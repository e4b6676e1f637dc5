package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
)

// S3ArtifactStore implements ArtifactStore on AWS S3. Artifact paths map to
// object keys under an optional prefix: s3://<bucket>/<prefix>/<path>.
type S3ArtifactStore struct {
	client S3API // interface for testability
	bucket string
	prefix string
}

// S3Config holds S3 artifact store configuration
type S3Config struct {
	Bucket string // S3 bucket name
	Prefix string // optional key prefix
	Region string // AWS region (optional, uses default if empty)
}

// NewS3ArtifactStore creates a new S3-backed artifact store.
func NewS3ArtifactStore(cfg S3Config) (*S3ArtifactStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}

	return &S3ArtifactStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// NewS3ArtifactStoreWithClient creates an S3 artifact store with a custom
// client. This is primarily used for testing with mock S3 clients.
func NewS3ArtifactStoreWithClient(client S3API, bucket, prefix string) *S3ArtifactStore {
	return &S3ArtifactStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// SaveJSON persists structured data as formatted JSON at the mapped key.
func (s *S3ArtifactStore) SaveJSON(ctx context.Context, p string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return s.put(ctx, p, append(data, '\n'), "application/json")
}

// SaveText persists raw text at the mapped key.
func (s *S3ArtifactStore) SaveText(ctx context.Context, p string, content string) error {
	return s.put(ctx, p, []byte(content), "text/plain; charset=utf-8")
}

// LoadJSON reads back a persisted JSON artifact.
func (s *S3ArtifactStore) LoadJSON(ctx context.Context, p string) (interface{}, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.buildKey(p)),
	})
	if err != nil {
		return nil, fmt.Errorf("download from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read S3 object body: %w", err)
	}

	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal artifact %s: %w", p, err)
	}
	return decoded, nil
}

func (s *S3ArtifactStore) put(ctx context.Context, p string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.buildKey(p)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload to S3: %w", err)
	}
	return nil
}

// buildKey maps a local-style artifact path to an S3 key.
func (s *S3ArtifactStore) buildKey(p string) string {
	key := filepath.ToSlash(p)
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}
	return key
}

var _ output.ArtifactStore = (*S3ArtifactStore)(nil)
